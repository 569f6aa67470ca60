// internal/config/config.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	FrontsDir string `yaml:"fronts_dir"`
	BacksDir  string `yaml:"backs_dir"`
	Output    string `yaml:"output"`

	Grid struct {
		Rows int `yaml:"rows"`
		Cols int `yaml:"cols"`
	} `yaml:"grid"`

	CardSize struct {
		Width  float64 `yaml:"width"`
		Height float64 `yaml:"height"`
	} `yaml:"card_size"`

	Margins struct {
		Left   float64 `yaml:"left"`
		Right  float64 `yaml:"right"`
		Top    float64 `yaml:"top"`
		Bottom float64 `yaml:"bottom"`
	} `yaml:"margins"`

	Gaps struct {
		Horizontal float64 `yaml:"horizontal"`
		Vertical   float64 `yaml:"vertical"`
	} `yaml:"gaps"`

	CutMarks      bool    `yaml:"cut_marks"`
	CutMarkLength float64 `yaml:"cut_mark_length"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default is the poker-size 3x3 A4 layout.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.Output == "" {
		c.Output = "cards_a4_duplex.pdf"
	}
	if c.Grid.Rows == 0 {
		c.Grid.Rows = 3
	}
	if c.Grid.Cols == 0 {
		c.Grid.Cols = 3
	}
	if c.CardSize.Width == 0 {
		c.CardSize.Width = 63
	}
	if c.CardSize.Height == 0 {
		c.CardSize.Height = 88
	}
	// 8mm margins and 2mm gaps are the widest that still fit 3x3 poker
	// cards on A4 (3*63 + 2*2 + 2*8 = 209mm <= 210mm).
	if c.Margins.Left == 0 {
		c.Margins.Left = 8
	}
	if c.Margins.Right == 0 {
		c.Margins.Right = 8
	}
	if c.Margins.Top == 0 {
		c.Margins.Top = 8
	}
	if c.Margins.Bottom == 0 {
		c.Margins.Bottom = 8
	}
	if c.Gaps.Horizontal == 0 {
		c.Gaps.Horizontal = 2
	}
	if c.Gaps.Vertical == 0 {
		c.Gaps.Vertical = 2
	}
	if c.CutMarkLength == 0 {
		c.CutMarkLength = 3
	}
}
