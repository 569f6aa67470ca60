package raster

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"
	"github.com/jung-kurt/gofpdf"

	"github.com/kpauljoseph/deckpress/pkg/logger"
	"github.com/kpauljoseph/deckpress/pkg/utils"
)

const (
	DefaultDPI     = 300
	DefaultQuality = 85
)

type Options struct {
	DPI     int // render resolution
	Quality int // JPEG quality 1-100
}

func (o Options) withDefaults() Options {
	if o.DPI <= 0 {
		o.DPI = DefaultDPI
	}
	if o.Quality <= 0 {
		o.Quality = DefaultQuality
	}
	return o
}

// Compress re-renders every page of inPath at opts.DPI, encodes the
// bitmap as JPEG and rebuilds a PDF with identical page sizes. Vector and
// layered content becomes a single raster per page, which usually shrinks
// scanned or image-heavy documents substantially. The page count and
// physical page dimensions are preserved exactly.
func Compress(ctx context.Context, inPath, outPath string, opts Options, log *logger.Logger) error {
	opts = opts.withDefaults()

	doc, err := fitz.New(inPath)
	if err != nil {
		return fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		// Default size only; every page gets its own explicit format below.
		Size: gofpdf.SizeType{Wd: 595.28, Ht: 841.89},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreationDate(time.Unix(0, 0).UTC())
	pdf.SetModificationDate(time.Unix(0, 0).UTC())

	imgOpts := gofpdf.ImageOptions{ImageType: "JPEG"}

	// Page numbers are zero indexed in the fitz package.
	for pageNum := 0; pageNum < doc.NumPage(); pageNum++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		bounds, err := doc.Bound(pageNum)
		if err != nil {
			return fmt.Errorf("failed to get bounds for page %d: %w", pageNum, err)
		}
		// fitz bounds are at 72 dpi, so pixels equal points here.
		width := float64(bounds.Dx())
		height := float64(bounds.Dy())

		img, err := doc.ImageDPI(pageNum, float64(opts.DPI))
		if err != nil {
			return fmt.Errorf("failed to render page %d: %w", pageNum, err)
		}

		var buf bytes.Buffer
		if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(opts.Quality)); err != nil {
			return fmt.Errorf("failed to encode page %d: %w", pageNum, err)
		}

		log.Debug("Page %d: %.0fx%.0fpt, %d bytes of JPEG", pageNum, width, height, buf.Len())

		name := fmt.Sprintf("page-%d", pageNum)
		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: width, Ht: height})
		pdf.RegisterImageOptionsReader(name, imgOpts, &buf)
		pdf.ImageOptions(name, 0, 0, width, height, false, imgOpts, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("rebuilding PDF: %w", err)
	}

	return utils.WriteFileAtomic(outPath, func(w io.Writer) error {
		return pdf.Output(w)
	})
}
