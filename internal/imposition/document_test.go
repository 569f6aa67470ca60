package imposition_test

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/kpauljoseph/deckpress/internal/imposition"
	"github.com/kpauljoseph/deckpress/pkg/models"
	"github.com/kpauljoseph/deckpress/pkg/utils"
)

func writeCardImage(path string, c color.RGBA) {
	img := image.NewRGBA(image.Rect(0, 0, 63, 88))
	for y := 0; y < 88; y++ {
		for x := 0; x < 63; x++ {
			img.Set(x, y, c)
		}
	}

	f, err := os.Create(path)
	Expect(err).NotTo(HaveOccurred())
	defer f.Close()

	Expect(png.Encode(f, img)).To(Succeed())
}

var _ = Describe("Document", func() {
	var (
		tempDir string
		slots   []imposition.Slot
		deck    []models.CardPair
	)

	buildDocument := func() *imposition.Document {
		grid := pokerGrid()
		doc := imposition.NewDocument(imposition.DocumentOptions{
			Marks: imposition.CutMarks{Enabled: true, Length: 3},
		})
		for _, batch := range imposition.Paginate(deck, grid.Capacity()) {
			Expect(doc.AppendSheet(batch.FrontPage(slots), batch.BackPage(slots))).To(Succeed())
		}
		return doc
	}

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "deckpress-doc-test-*")
		Expect(err).NotTo(HaveOccurred())

		slots, err = imposition.ComputeSlots(models.A4, pokerGrid())
		Expect(err).NotTo(HaveOccurred())

		// 11 cards on a 9-card grid: one full sheet plus a short one.
		deck = nil
		for i := 1; i <= 11; i++ {
			frontPath := filepath.Join(tempDir, fmt.Sprintf("front_%03d.png", i))
			backPath := filepath.Join(tempDir, fmt.Sprintf("back_%03d.png", i))
			writeCardImage(frontPath, color.RGBA{200, 30, 30, 255})
			writeCardImage(backPath, color.RGBA{30, 30, 200, 255})
			deck = append(deck, models.CardPair{
				Stem:      fmt.Sprintf("%03d", i),
				FrontPath: frontPath,
				BackPath:  backPath,
			})
		}
	})

	AfterEach(func() {
		os.RemoveAll(tempDir)
	})

	It("should write 2*ceil(n/capacity) A4 pages in front/back order", func() {
		doc := buildDocument()
		Expect(doc.PageCount()).To(Equal(4))

		outPath := filepath.Join(tempDir, "deck.pdf")
		Expect(doc.WriteFile(outPath)).To(Succeed())

		count, err := api.PageCountFile(outPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(4))

		dims, err := api.PageDimsFile(outPath)
		Expect(err).NotTo(HaveOccurred())
		for _, dim := range dims {
			Expect(dim.Width).To(BeNumerically("~", utils.MMToPoints(210), 1))
			Expect(dim.Height).To(BeNumerically("~", utils.MMToPoints(297), 1))
		}
	})

	It("should write an empty deck as a single blank page", func() {
		doc := imposition.NewDocument(imposition.DocumentOptions{})
		Expect(doc.PageCount()).To(Equal(0))

		outPath := filepath.Join(tempDir, "empty.pdf")
		Expect(doc.WriteFile(outPath)).To(Succeed())
		Expect(doc.PageCount()).To(Equal(1))

		Expect(api.ValidateFile(outPath, nil)).To(Succeed())
		count, err := api.PageCountFile(outPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(1))
	})

	It("should reject any mutation after finalization", func() {
		doc := buildDocument()
		outPath := filepath.Join(tempDir, "deck.pdf")
		Expect(doc.WriteFile(outPath)).To(Succeed())

		var stateErr *imposition.StateError

		err := doc.AppendSheet(imposition.Page{}, imposition.Page{})
		Expect(errors.As(err, &stateErr)).To(BeTrue())

		err = doc.WriteFile(filepath.Join(tempDir, "again.pdf"))
		Expect(errors.As(err, &stateErr)).To(BeTrue())
	})

	It("should produce byte-identical output for identical input", func() {
		first := filepath.Join(tempDir, "first.pdf")
		second := filepath.Join(tempDir, "second.pdf")

		Expect(buildDocument().WriteFile(first)).To(Succeed())
		Expect(buildDocument().WriteFile(second)).To(Succeed())

		firstHash, err := utils.FileHash(first)
		Expect(err).NotTo(HaveOccurred())
		secondHash, err := utils.FileHash(second)
		Expect(err).NotTo(HaveOccurred())
		Expect(secondHash).To(Equal(firstHash))
	})

	It("should surface unreadable images as errors before writing", func() {
		bogus := filepath.Join(tempDir, "missing.png")
		page := imposition.Page{
			Placements: []imposition.Placement{{ImagePath: bogus, Slot: slots[0]}},
		}

		doc := imposition.NewDocument(imposition.DocumentOptions{})
		err := doc.AppendSheet(page, imposition.Page{})
		Expect(err).To(HaveOccurred())
	})

	It("should not leave a file behind when writing fails", func() {
		doc := buildDocument()
		outPath := filepath.Join(tempDir, "no-such-dir", "deck.pdf")

		Expect(doc.WriteFile(outPath)).NotTo(Succeed())
		_, err := os.Stat(outPath)
		Expect(os.IsNotExist(err)).To(BeTrue())
	})
})
