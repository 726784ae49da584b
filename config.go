package gogrid

import (
	"fmt"
	"io"
	"os"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Config holds the grid defaults. Zero or invalid values are replaced by the
// package defaults in Normalize, mirroring the silent fallback applied to
// request values.
type Config struct {
	// DefaultPage is the page used when the request does not carry a valid one.
	DefaultPage int `yaml:"default_page"`
	// DefaultPerPage is the page size used when the request does not carry a valid one.
	DefaultPerPage int `yaml:"default_per_page"`
	// MaxPerPage is the largest accepted page size. NoMaxPerPage disables the bound.
	MaxPerPage int `yaml:"max_per_page"`
	// PerPageChoices are the page sizes presented to the user.
	PerPageChoices []int `yaml:"per_page_choices"`

	PageParam    string `yaml:"page_param"`
	PerPageParam string `yaml:"per_page_param"`
	SortParam    string `yaml:"sort_param"`
	AjaxParam    string `yaml:"ajax_param"`

	// View is the view name rendered by Grid.HTML.
	View string `yaml:"view"`
	// Fragment is appended to generated links as "#fragment".
	Fragment string `yaml:"fragment"`
	// LinkWindow is the number of page links shown on each side of the current page.
	LinkWindow int `yaml:"link_window"`
}

// DefaultConfig returns the configuration used when none is provided.
func DefaultConfig() Config {
	return Config{
		DefaultPage:    DefaultPage,
		DefaultPerPage: DefaultPerPage,
		MaxPerPage:     NoMaxPerPage,
		PerPageChoices: DefaultPerPageChoices(),
		PageParam:      "page",
		PerPageParam:   "per_page",
		SortParam:      "sort",
		AjaxParam:      "ajax",
		View:           ViewGrid,
		LinkWindow:     3,
	}
}

// Normalize returns a copy of the configuration with every invalid value
// replaced by its default.
func (c Config) Normalize() Config {
	def := DefaultConfig()

	c.DefaultPage = ResolvePage(c.DefaultPage, def.DefaultPage)
	c.DefaultPerPage = ResolvePerPage(c.DefaultPerPage, def.DefaultPerPage)
	if c.MaxPerPage < NoMaxPerPage {
		c.MaxPerPage = NoMaxPerPage
	}
	if c.MaxPerPage != NoMaxPerPage && c.DefaultPerPage > c.MaxPerPage {
		c.DefaultPerPage = c.MaxPerPage
	}

	c.PerPageChoices = lo.Uniq(lo.Filter(c.PerPageChoices, func(choice int, _ int) bool {
		return IsValidPageNumber(choice) && (c.MaxPerPage == NoMaxPerPage || choice <= c.MaxPerPage)
	}))
	if len(c.PerPageChoices) == 0 {
		c.PerPageChoices = def.PerPageChoices
	}

	c.PageParam = lo.CoalesceOrEmpty(c.PageParam, def.PageParam)
	c.PerPageParam = lo.CoalesceOrEmpty(c.PerPageParam, def.PerPageParam)
	c.SortParam = lo.CoalesceOrEmpty(c.SortParam, def.SortParam)
	c.AjaxParam = lo.CoalesceOrEmpty(c.AjaxParam, def.AjaxParam)
	c.View = lo.CoalesceOrEmpty(c.View, def.View)
	if c.LinkWindow <= 0 {
		c.LinkWindow = def.LinkWindow
	}

	return c
}

// LoadConfig decodes a YAML configuration on top of DefaultConfig and
// normalizes it. Keys absent from the document keep their defaults.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	// Lists are replaced, not merged, by the decoder.
	cfg.PerPageChoices = nil

	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("cannot decode grid config: %w", err)
	}

	return cfg.Normalize(), nil
}

// LoadConfigFile reads the YAML configuration from path, see LoadConfig.
func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("cannot open grid config: %w", err)
	}
	defer f.Close()

	return LoadConfig(f)
}
