package imposition

import (
	"github.com/jung-kurt/gofpdf"
)

// cutMarkStroke is the line width for cut marks in mm (the 0.3pt of the
// old tool, rounded).
const cutMarkStroke = 0.1

// CutMarks configures the trim ticks drawn at card corners.
type CutMarks struct {
	Enabled bool
	Length  float64 // mm, measured outward from each corner
}

// renderPage draws one logical page onto a fresh PDF page. Each image is
// stretched to exactly fill its slot rectangle: sources are expected to be
// pre-sized to the card aspect ratio, and a mismatched image prints
// stretched rather than letterboxed, keeping output compatible with decks
// produced by earlier versions of this tool.
func renderPage(pdf *gofpdf.Fpdf, page Page, marks CutMarks) {
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ReadDpi: false}
	for _, p := range page.Placements {
		pdf.ImageOptions(p.ImagePath, p.Slot.X, p.Slot.Y, p.Slot.Width, p.Slot.Height, false, opts, 0, "")
	}

	if marks.Enabled {
		drawCutMarks(pdf, page, marks.Length)
	}
}

// drawCutMarks draws short ticks at the four corners of every occupied
// slot, pointing away from the card so the image area stays clean.
func drawCutMarks(pdf *gofpdf.Fpdf, page Page, length float64) {
	pdf.SetLineWidth(cutMarkStroke)
	pdf.SetDrawColor(0, 0, 0)

	for _, p := range page.Placements {
		left := p.Slot.X
		right := p.Slot.X + p.Slot.Width
		top := p.Slot.Y
		bottom := p.Slot.Y + p.Slot.Height

		pdf.Line(left-length, top, left, top)
		pdf.Line(right, top, right+length, top)
		pdf.Line(left-length, bottom, left, bottom)
		pdf.Line(right, bottom, right+length, bottom)

		pdf.Line(left, top-length, left, top)
		pdf.Line(right, top-length, right, top)
		pdf.Line(left, bottom, left, bottom+length)
		pdf.Line(right, bottom, right, bottom+length)
	}
}
