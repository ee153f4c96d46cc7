package export

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Rio-Chico-Devs/RCS-App-sub000/internal/quote"
	"github.com/Rio-Chico-Devs/RCS-App-sub000/internal/shared"
)

func TestFromQuoteProjectsWithoutMutating(t *testing.T) {
	var q quote.Quote
	b := quote.NewBuilder(quote.NewCalculator(quote.DefaultCircle), &q)
	require.NoError(t, b.AddLayer(quote.Layer{
		Kind: quote.GeometryCylindrical, DiameterIn: 100, LengthTotal: 1000,
		Turns: 2, MaterialID: 1, MaterialName: "HS300", Thickness: 0.3, UnitPrice: 20,
	}))
	b.SetLabor(quote.LaborMinutes{Cutting: 20})
	q.ClientName = "Cartiere Nord"
	before := q.Clone()

	snap := FromQuote(q)
	require.Equal(t, "Cartiere Nord", snap.ClientName)
	require.Len(t, snap.Layers, 1)
	require.Equal(t, 1, snap.Layers[0].Position)
	require.InDelta(t, 101.2, snap.Layers[0].DiameterFinal, 0.001)
	require.InDelta(t, q.FinalQuote, snap.FinalQuote, 0.001)
	require.Equal(t, before, q)
}

func TestRenderHTML(t *testing.T) {
	out, err := NewRenderer().Render(context.Background(), sampleSnapshot(), FormatHTML)
	require.NoError(t, err)
	html := string(out)
	require.Contains(t, html, "Cartiere Nord")
	require.Contains(t, html, "HS300")
	require.Contains(t, html, "42.51")
	require.Contains(t, html, "<!DOCTYPE html>")
}

func TestRenderHTMLEscapesMarkup(t *testing.T) {
	snap := sampleSnapshot()
	snap.ClientName = `Rossi <&> "Figli"`
	out, err := NewRenderer().Render(context.Background(), snap, FormatHTML)
	require.NoError(t, err)
	require.NotContains(t, string(out), `Rossi <&>`)
	require.Contains(t, string(out), "Rossi &lt;&amp;&gt;")
}

func TestRenderODT(t *testing.T) {
	out, err := NewRenderer().Render(context.Background(), sampleSnapshot(), FormatODT)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	require.NoError(t, err)
	require.Equal(t, "mimetype", zr.File[0].Name)
	require.Equal(t, zip.Store, zr.File[0].Method)

	entries := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		entries[f.Name] = string(data)
	}
	require.Equal(t, odtMimetype, entries["mimetype"])
	require.Contains(t, entries, "META-INF/manifest.xml")
	require.Contains(t, entries["content.xml"], "Cartiere Nord")
	require.Contains(t, entries["content.xml"], "HS300")
}

func TestRenderDOCX(t *testing.T) {
	snap := sampleSnapshot()
	snap.Description = "rubber & <steel>"
	out, err := NewRenderer().Render(context.Background(), snap, FormatDOCX)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	require.NoError(t, err)
	entries := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		entries[f.Name] = string(data)
	}
	require.Contains(t, entries, "[Content_Types].xml")
	require.Contains(t, entries, "_rels/.rels")
	doc := entries["word/document.xml"]
	require.Contains(t, doc, "Cartiere Nord")
	require.Contains(t, doc, "rubber &amp; &lt;steel&gt;")
	require.NotContains(t, doc, "<steel>")
}

func TestRenderPDF(t *testing.T) {
	out, err := NewRenderer().Render(context.Background(), sampleSnapshot(), FormatPDF)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(out), "%PDF-"))
	require.Greater(t, len(out), 500)
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := NewRenderer().Render(context.Background(), sampleSnapshot(), Format("rtf"))
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestRenderHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRenderer().Render(ctx, sampleSnapshot(), FormatHTML)
	require.ErrorIs(t, err, context.Canceled)
}
