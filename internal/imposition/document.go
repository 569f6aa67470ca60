package imposition

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/kpauljoseph/deckpress/pkg/models"
	"github.com/kpauljoseph/deckpress/pkg/utils"
)

// StateError reports use of a document after WriteFile finalized it.
type StateError struct {
	Op string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("document already finalized: %s", e.Op)
}

type DocumentOptions struct {
	Page  models.PageDimensions // zero value means A4
	Marks CutMarks
}

// Document accumulates sheets in arrival order and writes the final PDF.
// The physical duplex printer relies on page N+1 being the back of page
// N, so AppendSheet is the only way to add pages: fronts and backs cannot
// be interleaved wrongly.
type Document struct {
	pdf       *gofpdf.Fpdf
	marks     CutMarks
	pageCount int
	finalized bool
}

func NewDocument(opts DocumentOptions) *Document {
	page := opts.Page
	if page.Width == 0 || page.Height == 0 {
		page = models.A4
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: page.Width, Ht: page.Height},
	})
	pdf.SetAutoPageBreak(false, 0)

	// Pinned timestamps keep two runs over the same deck byte-identical.
	pdf.SetCreationDate(time.Unix(0, 0).UTC())
	pdf.SetModificationDate(time.Unix(0, 0).UTC())

	return &Document{
		pdf:   pdf,
		marks: opts.Marks,
	}
}

// AppendSheet renders one batch's front page immediately followed by its
// back page.
func (d *Document) AppendSheet(front, back Page) error {
	if d.finalized {
		return &StateError{Op: "append sheet"}
	}

	renderPage(d.pdf, front, d.marks)
	renderPage(d.pdf, back, d.marks)
	d.pageCount += 2

	return d.drawErr()
}

func (d *Document) PageCount() int {
	return d.pageCount
}

// WriteFile finalizes the document exactly once and moves it into place
// atomically, so a failed run never leaves a partial PDF on disk.
//
// A PDF cannot represent zero pages, so a zero-sheet document is written
// as a single blank page; PageCount reflects that page once written.
func (d *Document) WriteFile(path string) error {
	if d.finalized {
		return &StateError{Op: "write"}
	}
	d.finalized = true

	if d.pageCount == 0 {
		d.pdf.AddPage()
		d.pageCount = 1
	}

	if err := d.drawErr(); err != nil {
		return err
	}

	return utils.WriteFileAtomic(path, func(w io.Writer) error {
		return d.pdf.Output(w)
	})
}

// drawErr surfaces gofpdf's deferred error, typically an image that could
// not be read or decoded while drawing.
func (d *Document) drawErr() error {
	if err := d.pdf.Error(); err != nil {
		return fmt.Errorf("drawing page: %w", err)
	}
	return nil
}
