package export

import (
	"context"

	"github.com/Rio-Chico-Devs/RCS-App-sub000/internal/shared"
)

// Format names a document output format.
type Format string

const (
	FormatHTML Format = "html"
	FormatODT  Format = "odt"
	FormatDOCX Format = "docx"
	FormatPDF  Format = "pdf"
)

// Valid reports whether f is a supported format.
func (f Format) Valid() bool {
	switch f {
	case FormatHTML, FormatODT, FormatDOCX, FormatPDF:
		return true
	}
	return false
}

// Renderer turns quote snapshots into documents.
type Renderer struct{}

// NewRenderer builds Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces the document bytes for snap in the requested format.
func (r *Renderer) Render(ctx context.Context, snap Snapshot, format Format) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch format {
	case FormatHTML:
		return renderHTML(snap)
	case FormatODT:
		return renderODT(snap)
	case FormatDOCX:
		return renderDOCX(snap)
	case FormatPDF:
		return renderPDF(snap)
	}
	return nil, shared.Validationf("export: unknown format %q", format)
}
