package main

import (
	"context"
	"flag"

	"github.com/kpauljoseph/deckpress/internal/raster"
	"github.com/kpauljoseph/deckpress/pkg/logger"
)

func main() {
	inPath := flag.String("in", "", "input PDF")
	outPath := flag.String("out", "", "output PDF")
	dpi := flag.Int("dpi", raster.DefaultDPI, "render DPI")
	quality := flag.Int("quality", raster.DefaultQuality, "JPEG quality 1-100")
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	flag.Parse()

	log := logger.New(logger.WithPrefix("[compresspdf] "))
	log.SetVerbose(*verbose)

	if *inPath == "" || *outPath == "" {
		log.Fatal("Both -in and -out are required")
	}

	opts := raster.Options{DPI: *dpi, Quality: *quality}
	if err := raster.Compress(context.Background(), *inPath, *outPath, opts, log); err != nil {
		log.Fatal("Error compressing %s: %v", *inPath, err)
	}

	log.Info("Saved: %s", *outPath)
}
