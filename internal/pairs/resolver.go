package pairs

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kpauljoseph/deckpress/pkg/logger"
	"github.com/kpauljoseph/deckpress/pkg/models"
)

// MatchMode selects how front and back images are paired.
type MatchMode string

const (
	// MatchByName joins images whose filename stems are equal.
	MatchByName MatchMode = "by-name"
	// MatchByOrder zips both directories in sorted order; counts must match.
	MatchByOrder MatchMode = "by-order"
)

func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(s) {
	case MatchByName, MatchByOrder:
		return MatchMode(s), nil
	}
	return "", fmt.Errorf("unknown match mode %q (want %q or %q)", s, MatchByName, MatchByOrder)
}

// PairingError reports every stem that lacks its counterpart. The whole
// run aborts on any mismatch: a silently skipped card would shift every
// later card one slot and desynchronize the physical deck.
type PairingError struct {
	MissingBacks  []string // front stems with no back image
	MissingFronts []string // back stems with no front image
}

func (e *PairingError) Error() string {
	var parts []string
	if len(e.MissingBacks) > 0 {
		parts = append(parts, fmt.Sprintf("no back image for: %s", strings.Join(e.MissingBacks, ", ")))
	}
	if len(e.MissingFronts) > 0 {
		parts = append(parts, fmt.Sprintf("no front image for: %s", strings.Join(e.MissingFronts, ", ")))
	}
	return "unmatched card images: " + strings.Join(parts, "; ")
}

// ImageError reports an image that exists but cannot be used as a card
// face: unreadable, undecodable, or with an orientation that contradicts
// its pair.
type ImageError struct {
	Path string
	Err  error
}

func (e *ImageError) Error() string {
	return fmt.Sprintf("bad card image %s: %v", e.Path, e.Err)
}

func (e *ImageError) Unwrap() error { return e.Err }

type imageFile struct {
	path     string
	stem     string
	portrait bool
}

type Resolver struct {
	log *logger.Logger
}

func New(log *logger.Logger) *Resolver {
	return &Resolver{log: log}
}

// Resolve scans both directories and produces the deck in print order.
// Print order is the fronts directory's sort order: stems left-padded with
// zeros to 32 characters (so 2 sorts before 10), lowercased filename as
// tie-break. Only the image headers are decoded here; pixel data is read
// by the renderer.
func (r *Resolver) Resolve(frontsDir, backsDir string, mode MatchMode) ([]models.CardPair, error) {
	fronts, err := r.listImages(frontsDir)
	if err != nil {
		return nil, err
	}
	if len(fronts) == 0 {
		return nil, fmt.Errorf("no front images found in %s", frontsDir)
	}

	backs, err := r.listImages(backsDir)
	if err != nil {
		return nil, err
	}
	if len(backs) == 0 {
		return nil, fmt.Errorf("no back images found in %s", backsDir)
	}

	r.log.Debug("Found %d front and %d back images", len(fronts), len(backs))

	if mode == MatchByOrder {
		return r.matchByOrder(fronts, backs)
	}
	return r.matchByName(fronts, backs, frontsDir, backsDir)
}

func (r *Resolver) matchByName(fronts, backs []imageFile, frontsDir, backsDir string) ([]models.CardPair, error) {
	// The stem is the join key, so each side may carry it only once.
	fronts = r.dedupeByStem(fronts, frontsDir)
	backs = r.dedupeByStem(backs, backsDir)

	backByStem := make(map[string]imageFile, len(backs))
	for _, b := range backs {
		backByStem[b.stem] = b
	}

	frontStems := make(map[string]struct{}, len(fronts))
	var perr PairingError
	deck := make([]models.CardPair, 0, len(fronts))

	for _, f := range fronts {
		frontStems[f.stem] = struct{}{}

		b, ok := backByStem[f.stem]
		if !ok {
			perr.MissingBacks = append(perr.MissingBacks, f.stem)
			continue
		}
		if f.portrait != b.portrait {
			return nil, &ImageError{
				Path: b.path,
				Err:  fmt.Errorf("orientation differs from front %s", f.path),
			}
		}

		deck = append(deck, models.CardPair{
			Stem:      f.stem,
			FrontPath: f.path,
			BackPath:  b.path,
		})
	}

	for _, b := range backs {
		if _, ok := frontStems[b.stem]; !ok {
			perr.MissingFronts = append(perr.MissingFronts, b.stem)
		}
	}

	if len(perr.MissingBacks) > 0 || len(perr.MissingFronts) > 0 {
		return nil, &perr
	}

	return deck, nil
}

func (r *Resolver) matchByOrder(fronts, backs []imageFile) ([]models.CardPair, error) {
	if len(fronts) != len(backs) {
		return nil, fmt.Errorf("front/back counts differ: %d vs %d", len(fronts), len(backs))
	}

	deck := make([]models.CardPair, 0, len(fronts))
	for i, f := range fronts {
		b := backs[i]
		if f.portrait != b.portrait {
			return nil, &ImageError{
				Path: b.path,
				Err:  fmt.Errorf("orientation differs from front %s", f.path),
			}
		}
		deck = append(deck, models.CardPair{
			Stem:      f.stem,
			FrontPath: f.path,
			BackPath:  b.path,
		})
	}

	return deck, nil
}

// dedupeByStem keeps the last file per stem (duplicates are adjacent
// after sorting, so this is the later extension) and warns about the
// ones it drops.
func (r *Resolver) dedupeByStem(files []imageFile, dir string) []imageFile {
	index := make(map[string]int, len(files))
	deduped := make([]imageFile, 0, len(files))
	for _, f := range files {
		if i, ok := index[f.stem]; ok {
			r.log.Warn("Duplicate stem %q in %s: using %s, ignoring %s",
				f.stem, dir, filepath.Base(f.path), filepath.Base(deduped[i].path))
			deduped[i] = f
			continue
		}
		index[f.stem] = len(deduped)
		deduped = append(deduped, f)
	}
	return deduped
}

func (r *Resolver) listImages(dir string) ([]imageFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading image directory: %w", err)
	}

	var files []imageFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		portrait, err := probeImage(path)
		if err != nil {
			return nil, err
		}

		files = append(files, imageFile{
			path:     path,
			stem:     strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())),
			portrait: portrait,
		})
	}

	sort.Slice(files, func(i, j int) bool {
		ki, kj := padStem(files[i].stem), padStem(files[j].stem)
		if ki != kj {
			return ki < kj
		}
		return strings.ToLower(filepath.Base(files[i].path)) < strings.ToLower(filepath.Base(files[j].path))
	})

	return files, nil
}

// padStem left-pads the stem with zeros so numeric stems sort
// numerically: 1, 2, 10 instead of 1, 10, 2.
func padStem(stem string) string {
	if len(stem) >= 32 {
		return stem
	}
	return strings.Repeat("0", 32-len(stem)) + stem
}

// probeImage decodes only the header: enough to prove the file is a real
// image and to learn its orientation, without paying for the pixels.
func probeImage(path string) (portrait bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return false, &ImageError{Path: path, Err: err}
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return false, &ImageError{Path: path, Err: err}
	}

	return cfg.Height >= cfg.Width, nil
}
