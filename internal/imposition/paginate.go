package imposition

import "github.com/kpauljoseph/deckpress/pkg/models"

// PageBatch is a consecutive run of card pairs that share one physical
// sheet: its fronts fill one logical page, its backs the next.
type PageBatch struct {
	Pairs []models.CardPair
}

// Paginate splits the deck into batches of at most capacity cards,
// preserving order: concatenating the batches reproduces the input
// exactly. A zero-card deck yields no batches, which downstream turns
// into an empty document rather than an error. Capacity below one also
// yields no batches; GridConfig validation rejects such grids before
// pagination is ever reached.
func Paginate(deck []models.CardPair, capacity int) []PageBatch {
	if capacity < 1 || len(deck) == 0 {
		return nil
	}

	batches := make([]PageBatch, 0, (len(deck)+capacity-1)/capacity)
	for start := 0; start < len(deck); start += capacity {
		end := start + capacity
		if end > len(deck) {
			end = len(deck)
		}
		batches = append(batches, PageBatch{Pairs: deck[start:end]})
	}

	return batches
}

// Placement pins one card image to a slot rectangle.
type Placement struct {
	ImagePath string
	Slot      Slot
}

// Page is one logical A4 side: all fronts or all backs of a batch. A
// short final batch produces pages with fewer placements than the grid
// has slots; the unused trailing slots simply do not appear.
type Page struct {
	Placements []Placement
}

// FrontPage puts the front of pair i on slot i. BackPage puts the back of
// pair i on the same slot i, which is the invariant that keeps the duplex
// sheet aligned when it is flipped. len(slots) must be at least
// len(b.Pairs); Paginate guarantees this when capacity == len(slots).
func (b PageBatch) FrontPage(slots []Slot) Page {
	placements := make([]Placement, len(b.Pairs))
	for i, pair := range b.Pairs {
		placements[i] = Placement{ImagePath: pair.FrontPath, Slot: slots[i]}
	}
	return Page{Placements: placements}
}

func (b PageBatch) BackPage(slots []Slot) Page {
	placements := make([]Placement, len(b.Pairs))
	for i, pair := range b.Pairs {
		placements[i] = Placement{ImagePath: pair.BackPath, Slot: slots[i]}
	}
	return Page{Placements: placements}
}
