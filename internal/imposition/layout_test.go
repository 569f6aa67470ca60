package imposition_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/deckpress/internal/imposition"
	"github.com/kpauljoseph/deckpress/pkg/models"
)

// pokerGrid is the default layout: 3x3 poker-size cards on A4.
func pokerGrid() imposition.GridConfig {
	return imposition.GridConfig{
		Rows:         3,
		Cols:         3,
		CardWidth:    63,
		CardHeight:   88,
		MarginLeft:   8,
		MarginRight:  8,
		MarginTop:    8,
		MarginBottom: 8,
		GapX:         2,
		GapY:         2,
	}
}

var _ = Describe("Layout", func() {
	Context("ComputeSlots", func() {
		It("should produce rows*cols slots in row-major order", func() {
			grid := pokerGrid()
			slots, err := imposition.ComputeSlots(models.A4, grid)

			Expect(err).NotTo(HaveOccurred())
			Expect(slots).To(HaveLen(grid.Capacity()))

			for i, slot := range slots {
				row := i / grid.Cols
				col := i % grid.Cols
				Expect(slot.X).To(BeNumerically("~", grid.MarginLeft+float64(col)*(grid.CardWidth+grid.GapX), 1e-9))
				Expect(slot.Y).To(BeNumerically("~", grid.MarginTop+float64(row)*(grid.CardHeight+grid.GapY), 1e-9))
				Expect(slot.Width).To(Equal(grid.CardWidth))
				Expect(slot.Height).To(Equal(grid.CardHeight))
			}
		})

		It("should keep every slot inside the page", func() {
			slots, err := imposition.ComputeSlots(models.A4, pokerGrid())
			Expect(err).NotTo(HaveOccurred())

			for _, slot := range slots {
				Expect(slot.X).To(BeNumerically(">=", 0))
				Expect(slot.Y).To(BeNumerically(">=", 0))
				Expect(slot.X + slot.Width).To(BeNumerically("<=", models.A4.Width+1e-6))
				Expect(slot.Y + slot.Height).To(BeNumerically("<=", models.A4.Height+1e-6))
			}
		})

		It("should not overlap any two slots", func() {
			slots, err := imposition.ComputeSlots(models.A4, pokerGrid())
			Expect(err).NotTo(HaveOccurred())

			for i := range slots {
				for j := i + 1; j < len(slots); j++ {
					a, b := slots[i], slots[j]
					separated := a.X+a.Width <= b.X+1e-9 ||
						b.X+b.Width <= a.X+1e-9 ||
						a.Y+a.Height <= b.Y+1e-9 ||
						b.Y+b.Height <= a.Y+1e-9
					Expect(separated).To(BeTrue(), "slots %d and %d overlap", i, j)
				}
			}
		})

		It("should return identical geometry on repeated calls", func() {
			first, err := imposition.ComputeSlots(models.A4, pokerGrid())
			Expect(err).NotTo(HaveOccurred())
			second, err := imposition.ComputeSlots(models.A4, pokerGrid())
			Expect(err).NotTo(HaveOccurred())
			Expect(second).To(Equal(first))
		})
	})

	Context("fit validation", func() {
		DescribeTable("Validate",
			func(mutate func(*imposition.GridConfig), shouldFit bool) {
				grid := pokerGrid()
				mutate(&grid)

				err := grid.Validate(models.A4)
				if shouldFit {
					Expect(err).NotTo(HaveOccurred())
					return
				}

				Expect(err).To(HaveOccurred())
				var layoutErr *imposition.LayoutError
				Expect(errors.As(err, &layoutErr)).To(BeTrue())
			},
			Entry("default poker layout fits", func(g *imposition.GridConfig) {}, true),
			// 3*63 + 2*2 + 2*10 = 213mm > 210mm.
			Entry("10mm margins push 3 columns off the page", func(g *imposition.GridConfig) {
				g.MarginLeft = 10
				g.MarginRight = 10
			}, false),
			// 3*63 + 2*2 + 2*8 = 209mm <= 210mm.
			Entry("8mm margins fit exactly", func(g *imposition.GridConfig) {
				g.MarginLeft = 8
				g.MarginRight = 8
			}, true),
			Entry("too many rows overflow the height", func(g *imposition.GridConfig) {
				g.Rows = 4
			}, false),
			Entry("zero rows are rejected", func(g *imposition.GridConfig) {
				g.Rows = 0
			}, false),
			Entry("zero columns are rejected", func(g *imposition.GridConfig) {
				g.Cols = 0
			}, false),
			Entry("zero card width is rejected", func(g *imposition.GridConfig) {
				g.CardWidth = 0
			}, false),
			Entry("negative gap is rejected", func(g *imposition.GridConfig) {
				g.GapX = -1
			}, false),
			Entry("single huge card fills the page", func(g *imposition.GridConfig) {
				g.Rows = 1
				g.Cols = 1
				g.CardWidth = 194
				g.CardHeight = 281
			}, true),
		)

		It("should fail ComputeSlots with a LayoutError before any slot is produced", func() {
			grid := pokerGrid()
			grid.MarginLeft = 10
			grid.MarginRight = 10

			slots, err := imposition.ComputeSlots(models.A4, grid)
			Expect(slots).To(BeNil())

			var layoutErr *imposition.LayoutError
			Expect(errors.As(err, &layoutErr)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("reduce margins"))
		})
	})

	Context("Capacity", func() {
		DescribeTable("rows*cols",
			func(rows, cols, want int) {
				grid := imposition.GridConfig{Rows: rows, Cols: cols}
				Expect(grid.Capacity()).To(Equal(want))
			},
			Entry("3x3", 3, 3, 9),
			Entry("2x4", 2, 4, 8),
			Entry("1x1", 1, 1, 1),
		)
	})
})
