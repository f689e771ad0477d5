package report

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"

	"wellness-report/models"
)

// Layout constants in millimeters on an A4 portrait page.
const (
	bottomMargin  = 20.0 // remaining space below this forces a new page
	rowHeight     = 6.0
	headingHeight = 9.0
	lineHeight    = 5.5
)

// Block is one unit of vertical document content. A document is a block
// sequence consumed by the paginating renderer; blocks never deal with
// page boundaries beyond asking for space.
type Block interface {
	render(doc *document)
}

// Heading is a section title.
type Heading struct {
	Text string
}

// Message is a short informational line, used for "no data" degradation.
type Message struct {
	Text string
}

// KPISummary is the aggregate block shown at the top of reports.
type KPISummary struct {
	Snapshot models.KPISnapshot
	Items    int // number of listed records or alerts
}

// Image embeds a pre-rendered PNG (a chart). Invalid bytes degrade by
// omitting the image; the rest of the document still renders.
type Image struct {
	PNG   []byte
	Width float64 // mm; 0 means content width
}

// Table is a column-headed listing. The header row is redrawn at the top
// of every page the table spills onto.
type Table struct {
	Header []string
	Rows   [][]string
	Widths []float64 // relative column weights; nil means equal widths
}

type document struct {
	pdf          *gofpdf.Fpdf
	tr           func(string) string
	left         float64
	pageW, pageH float64
	contentW     float64
}

func newDocument(title string) *document {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	// The block renderer owns pagination; auto page breaks would fight it.
	pdf.SetAutoPageBreak(false, 0)

	doc := &document{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	doc.pageW, doc.pageH = pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	doc.left = left
	doc.contentW = doc.pageW - left - right

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(doc.contentW, headingHeight, doc.tr(title), "", 1, "C", false, 0, "")
	pdf.Ln(3)
	return doc
}

// ensureSpace starts a new page when fewer than h millimeters remain
// above the bottom margin. Reports whether a page break happened.
func (d *document) ensureSpace(h float64) bool {
	if d.pdf.GetY()+h <= d.pageH-bottomMargin {
		return false
	}
	d.pdf.AddPage()
	return true
}

// fit trims a cell value until it fits the column width.
func (d *document) fit(s string, width float64) string {
	s = d.tr(s)
	for len(s) > 1 && d.pdf.GetStringWidth(s) > width-2 {
		runes := []rune(s)
		s = string(runes[:len(runes)-1])
	}
	return s
}

func (h Heading) render(doc *document) {
	doc.ensureSpace(headingHeight + lineHeight)
	doc.pdf.SetFont("Helvetica", "B", 13)
	doc.pdf.CellFormat(doc.contentW, headingHeight, doc.tr(h.Text), "", 1, "L", false, 0, "")
	doc.pdf.Ln(1)
}

func (m Message) render(doc *document) {
	doc.ensureSpace(lineHeight)
	doc.pdf.SetFont("Helvetica", "I", 11)
	doc.pdf.CellFormat(doc.contentW, lineHeight, doc.tr(m.Text), "", 1, "L", false, 0, "")
	doc.pdf.Ln(1)
}

func (k KPISummary) render(doc *document) {
	lines := []string{
		fmt.Sprintf("Estrés promedio: %.1f", k.Snapshot.MeanStress),
		fmt.Sprintf("Descanso adecuado: %.1f%%", k.Snapshot.PctAdequateRest),
		fmt.Sprintf("Alertas detectadas: %d", k.Snapshot.AlertCount),
		fmt.Sprintf("Elementos listados: %d", k.Items),
	}
	doc.ensureSpace(float64(len(lines))*lineHeight + 2)
	doc.pdf.SetFont("Helvetica", "", 11)
	for _, line := range lines {
		doc.pdf.CellFormat(doc.contentW, lineHeight, doc.tr(line), "", 1, "L", false, 0, "")
	}
	doc.pdf.Ln(2)
}

func (img Image) render(doc *document) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(img.PNG))
	if err != nil || cfg.Width == 0 {
		// A broken chart is omitted; the rest of the document renders.
		return
	}
	w := img.Width
	if w <= 0 || w > doc.contentW {
		w = doc.contentW
	}
	h := w * float64(cfg.Height) / float64(cfg.Width)
	doc.ensureSpace(h + 3)

	name := uuid.NewString()
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	doc.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.PNG))
	doc.pdf.ImageOptions(name, doc.left, doc.pdf.GetY(), w, h, false, opts, 0, "")
	doc.pdf.SetY(doc.pdf.GetY() + h + 3)
}

func (t Table) render(doc *document) {
	if len(t.Header) == 0 {
		return
	}
	widths := t.columnWidths(doc.contentW)

	doc.ensureSpace(rowHeight * 2)
	t.drawHeader(doc, widths)

	doc.pdf.SetFont("Helvetica", "", 9)
	for _, row := range t.Rows {
		if doc.ensureSpace(rowHeight) {
			t.drawHeader(doc, widths)
			doc.pdf.SetFont("Helvetica", "", 9)
		}
		for col := range t.Header {
			value := ""
			if col < len(row) {
				value = row[col]
			}
			doc.pdf.CellFormat(widths[col], rowHeight, doc.fit(value, widths[col]), "1", 0, "L", false, 0, "")
		}
		doc.pdf.Ln(-1)
	}
	doc.pdf.Ln(2)
}

func (t Table) drawHeader(doc *document, widths []float64) {
	doc.pdf.SetFont("Helvetica", "B", 9)
	doc.pdf.SetFillColor(230, 230, 230)
	for col, label := range t.Header {
		doc.pdf.CellFormat(widths[col], rowHeight, doc.fit(label, widths[col]), "1", 0, "L", true, 0, "")
	}
	doc.pdf.Ln(-1)
}

func (t Table) columnWidths(contentW float64) []float64 {
	weights := t.Widths
	if len(weights) != len(t.Header) {
		weights = make([]float64, len(t.Header))
		for i := range weights {
			weights[i] = 1
		}
	}
	total := 0.0
	for _, w := range weights {
		total += w
	}
	widths := make([]float64, len(weights))
	for i, w := range weights {
		widths[i] = contentW * w / total
	}
	return widths
}

// Render lays the block sequence out into a paginated PDF document.
func Render(title string, blocks []Block) ([]byte, error) {
	doc := renderDocument(title, blocks)
	var buf bytes.Buffer
	if err := doc.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderDocument(title string, blocks []Block) *document {
	doc := newDocument(title)
	for _, b := range blocks {
		b.render(doc)
	}
	return doc
}
