package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
)

// xmlEscape covers the five predefined XML entities.
var xmlEscape = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// paragraphs flattens the snapshot into the line-oriented body shared by
// the word-processor formats.
func paragraphs(snap Snapshot) []string {
	lines := []string{
		fmt.Sprintf("Quotation %s - revision %d", snap.Code, snap.RevisionNumber),
		fmt.Sprintf("Client: %s", snap.ClientName),
		fmt.Sprintf("Order: %s", snap.OrderNumber),
	}
	if snap.Description != "" {
		lines = append(lines, snap.Description)
	}
	for _, l := range snap.Layers {
		lines = append(lines, fmt.Sprintf(
			"Layer %d: %s, diameter %.2f > %.2f mm, length %.0f mm, %d turns, development %.3f mm, area %.4f m2, cost %.2f",
			l.Position, l.MaterialName, l.DiameterIn, l.DiameterFinal,
			l.LengthTotal, l.Turns, l.Development, l.UsedArea, l.MarkedCost))
	}
	lines = append(lines,
		fmt.Sprintf("Materials: %.2f", snap.MaterialsCost),
		fmt.Sprintf("Labor minutes: %.2f", snap.LaborTotalMin),
		fmt.Sprintf("Accessories: %.2f", snap.AccessoriesCost),
		fmt.Sprintf("Subtotal: %.2f", snap.Subtotal),
		fmt.Sprintf("Markup 25%%: %.2f", snap.Markup25),
		fmt.Sprintf("Final quote: %.2f", snap.FinalQuote),
		fmt.Sprintf("Client price: %.2f", snap.ClientPrice),
	)
	return lines
}

const odtMimetype = "application/vnd.oasis.opendocument.text"

const odtManifest = `<?xml version="1.0" encoding="UTF-8"?>
<manifest:manifest xmlns:manifest="urn:oasis:names:tc:opendocument:xmlns:manifest:1.0" manifest:version="1.2">
<manifest:file-entry manifest:full-path="/" manifest:media-type="application/vnd.oasis.opendocument.text"/>
<manifest:file-entry manifest:full-path="content.xml" manifest:media-type="text/xml"/>
</manifest:manifest>
`

// renderODT packs an OpenDocument text file. The mimetype entry has to be
// first and stored uncompressed so readers can sniff it.
func renderODT(snap Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	mimetype, err := w.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		return nil, fmt.Errorf("export: odt mimetype: %w", err)
	}
	if _, err := mimetype.Write([]byte(odtMimetype)); err != nil {
		return nil, fmt.Errorf("export: odt mimetype: %w", err)
	}

	var content strings.Builder
	content.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0" office:version="1.2">
<office:body><office:text>
`)
	for _, line := range paragraphs(snap) {
		content.WriteString("<text:p>")
		content.WriteString(xmlEscape.Replace(line))
		content.WriteString("</text:p>\n")
	}
	content.WriteString("</office:text></office:body></office:document-content>\n")

	for name, body := range map[string]string{
		"META-INF/manifest.xml": odtManifest,
		"content.xml":           content.String(),
	} {
		f, err := w.Create(name)
		if err != nil {
			return nil, fmt.Errorf("export: odt %s: %w", name, err)
		}
		if _, err := f.Write([]byte(body)); err != nil {
			return nil, fmt.Errorf("export: odt %s: %w", name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("export: odt close: %w", err)
	}
	return buf.Bytes(), nil
}

const docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>
`

const docxRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>
`

// renderDOCX packs an Office Open XML document with one run per line.
func renderDOCX(snap Snapshot) ([]byte, error) {
	var body strings.Builder
	body.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
`)
	for _, line := range paragraphs(snap) {
		body.WriteString("<w:p><w:r><w:t xml:space=\"preserve\">")
		body.WriteString(xmlEscape.Replace(line))
		body.WriteString("</w:t></w:r></w:p>\n")
	}
	body.WriteString("</w:body></w:document>\n")

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range map[string]string{
		"[Content_Types].xml": docxContentTypes,
		"_rels/.rels":         docxRels,
		"word/document.xml":   body.String(),
	} {
		f, err := w.Create(name)
		if err != nil {
			return nil, fmt.Errorf("export: docx %s: %w", name, err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			return nil, fmt.Errorf("export: docx %s: %w", name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("export: docx close: %w", err)
	}
	return buf.Bytes(), nil
}
