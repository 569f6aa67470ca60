package models

// PageDimensions is a physical page size in millimetres.
type PageDimensions struct {
	Width  float64
	Height float64
}

// A4 portrait, the only sheet size the imposer targets.
var A4 = PageDimensions{Width: 210, Height: 297}

// CardPair joins a front and a back image under one stem (the filename
// without its extension). Pairs are immutable once resolved and are
// consumed exactly once when their sheet is rendered.
type CardPair struct {
	Stem      string
	FrontPath string
	BackPath  string
}
