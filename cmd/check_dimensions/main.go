package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/kpauljoseph/deckpress/pkg/utils"
)

// Tolerance in points when comparing a page against A4.
const a4Tolerance = 1.0

func main() {
	pdfPath := flag.String("file", "", "Path to PDF file")
	flag.Parse()

	if *pdfPath == "" {
		fmt.Println("Please provide a PDF file path using -file flag")
		os.Exit(1)
	}

	fmt.Printf("Analyzing PDF: %s\n", *pdfPath)

	dims, err := api.PageDimsFile(*pdfPath)
	if err != nil {
		fmt.Printf("Error getting page dimensions: %v\n", err)
		os.Exit(1)
	}

	a4Width := utils.MMToPoints(210)
	a4Height := utils.MMToPoints(297)

	nonA4 := 0
	for i, dim := range dims {
		fmt.Printf("\nPage %d:\n", i+1)
		fmt.Printf("Dimensions (Width x Height): %.3f x %.3f points (%.1f x %.1f mm)\n",
			dim.Width, dim.Height,
			utils.PointsToMM(dim.Width), utils.PointsToMM(dim.Height))

		if math.Abs(dim.Width-a4Width) > a4Tolerance || math.Abs(dim.Height-a4Height) > a4Tolerance {
			fmt.Println("WARNING: page is not A4 portrait")
			nonA4++
		}
	}

	fmt.Printf("\n%d pages, %d not A4\n", len(dims), nonA4)
	if nonA4 > 0 {
		os.Exit(1)
	}
}
