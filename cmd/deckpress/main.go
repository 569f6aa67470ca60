package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/kpauljoseph/deckpress/internal/config"
	"github.com/kpauljoseph/deckpress/internal/imposition"
	"github.com/kpauljoseph/deckpress/internal/pairs"
	"github.com/kpauljoseph/deckpress/pkg/logger"
	"github.com/kpauljoseph/deckpress/pkg/models"
	"github.com/kpauljoseph/deckpress/pkg/updater"
	"github.com/kpauljoseph/deckpress/pkg/version"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	frontsDir := flag.String("fronts", "", "directory containing front images (JPG/PNG)")
	backsDir := flag.String("backs", "", "directory containing back images (JPG/PNG)")
	outPath := flag.String("out", "", "output PDF path")
	matchMode := flag.String("match", "by-name", "pairing strategy: by-name (same stem) or by-order (sorted order)")
	rows := flag.Int("rows", 0, "rows per page (overrides config)")
	cols := flag.Int("cols", 0, "columns per page (overrides config)")
	cardWidth := flag.Float64("card-width", 0, "card width in mm (overrides config)")
	cardHeight := flag.Float64("card-height", 0, "card height in mm (overrides config)")
	margin := flag.Float64("margin", -1, "page margin in mm, all four sides (overrides config)")
	gap := flag.Float64("gap", -1, "gap between cards in mm (overrides config)")
	cutMarks := flag.Bool("cut-marks", false, "draw cut marks at card corners")
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	debug := flag.Bool("debug", false, "enable debug mode with trace logging")
	showVersion := flag.Bool("version", false, "print version and exit")
	checkUpdate := flag.Bool("check-update", false, "check GitHub for a newer release")
	flag.Parse()

	log := logger.New(logger.WithPrefix("[deckpress] "))
	log.SetVerbose(*verbose)

	if *debug {
		log.SetLevel(logger.LevelTrace)
	}

	if *showVersion {
		fmt.Println(version.GetVersionInfo())
		return
	}

	if *checkUpdate {
		checker := updater.NewChecker(log)
		info, err := checker.CheckForUpdates()
		switch {
		case err != nil:
			log.Warn("Update check failed: %v", err)
		case info != nil && info.IsAvailable:
			log.Info("deckpress %s is available: %s", info.LatestVersion, info.DownloadURL)
		default:
			log.Info("deckpress is up to date")
		}
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal("Error loading config: %v", err)
		}
		cfg = loaded
	}

	if *frontsDir != "" {
		cfg.FrontsDir = *frontsDir
	}
	if *backsDir != "" {
		cfg.BacksDir = *backsDir
	}
	if *outPath != "" {
		cfg.Output = *outPath
	}
	if *rows > 0 {
		cfg.Grid.Rows = *rows
	}
	if *cols > 0 {
		cfg.Grid.Cols = *cols
	}
	if *cardWidth > 0 {
		cfg.CardSize.Width = *cardWidth
	}
	if *cardHeight > 0 {
		cfg.CardSize.Height = *cardHeight
	}
	if *margin >= 0 {
		cfg.Margins.Left = *margin
		cfg.Margins.Right = *margin
		cfg.Margins.Top = *margin
		cfg.Margins.Bottom = *margin
	}
	if *gap >= 0 {
		cfg.Gaps.Horizontal = *gap
		cfg.Gaps.Vertical = *gap
	}
	if *cutMarks {
		cfg.CutMarks = true
	}

	if cfg.FrontsDir == "" || cfg.BacksDir == "" {
		log.Fatal("Both -fronts and -backs are required (flags or config file)")
	}
	if _, err := os.Stat(cfg.FrontsDir); os.IsNotExist(err) {
		log.Fatal("Fronts directory does not exist: %s", cfg.FrontsDir)
	}
	if _, err := os.Stat(cfg.BacksDir); os.IsNotExist(err) {
		log.Fatal("Backs directory does not exist: %s", cfg.BacksDir)
	}

	mode, err := pairs.ParseMatchMode(*matchMode)
	if err != nil {
		log.Fatal("%v", err)
	}

	grid := imposition.GridConfig{
		Rows:         cfg.Grid.Rows,
		Cols:         cfg.Grid.Cols,
		CardWidth:    cfg.CardSize.Width,
		CardHeight:   cfg.CardSize.Height,
		MarginLeft:   cfg.Margins.Left,
		MarginRight:  cfg.Margins.Right,
		MarginTop:    cfg.Margins.Top,
		MarginBottom: cfg.Margins.Bottom,
		GapX:         cfg.Gaps.Horizontal,
		GapY:         cfg.Gaps.Vertical,
	}

	// An impossible grid must fail here, before any image is touched.
	slots, err := imposition.ComputeSlots(models.A4, grid)
	if err != nil {
		log.Fatal("%v", err)
	}

	log.Debug("Grid: %dx%d, %d cards per page", grid.Cols, grid.Rows, grid.Capacity())

	resolver := pairs.New(log)

	log.Info("Scanning %s and %s", cfg.FrontsDir, cfg.BacksDir)
	deck, err := resolver.Resolve(cfg.FrontsDir, cfg.BacksDir, mode)
	if err != nil {
		log.Fatal("%v", err)
	}

	log.Info("Paired %d cards", len(deck))

	doc := imposition.NewDocument(imposition.DocumentOptions{
		Marks: imposition.CutMarks{
			Enabled: cfg.CutMarks,
			Length:  cfg.CutMarkLength,
		},
	})

	for _, batch := range imposition.Paginate(deck, grid.Capacity()) {
		if err := doc.AppendSheet(batch.FrontPage(slots), batch.BackPage(slots)); err != nil {
			log.Fatal("Error rendering sheet: %v", err)
		}
	}

	if err := doc.WriteFile(cfg.Output); err != nil {
		log.Fatal("Error writing %s: %v", cfg.Output, err)
	}

	log.Info("Done. Wrote: %s", cfg.Output)
	log.Info("- Cards: %d", len(deck))
	log.Info("- Pages: %d (front/back alternating)", doc.PageCount())
}
