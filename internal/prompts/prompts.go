// Package prompts holds the fixed persona and template strings for each mode,
// plus the UI strings of the form, loaded from an embedded catalogue per locale.
package prompts

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Placeholder marks where the raw user text goes in a template
const Placeholder = "{{text}}"

// DefaultLocale is used when no locale is configured
const DefaultLocale = "en"

//go:embed locales/*.yaml
var locales embed.FS

// UI holds the fixed strings the form renders
type UI struct {
	Title        string `yaml:"title"`
	Connecting   string `yaml:"connecting"`
	ProbeFailed  string `yaml:"probe_failed"`
	Unavailable  string `yaml:"unavailable"`
	ModeLabel    string `yaml:"mode_label"`
	CurrentMode  string `yaml:"current_mode"`
	InputLabel   string `yaml:"input_label"`
	Placeholder  string `yaml:"placeholder"`
	Submit       string `yaml:"submit"`
	Busy         string `yaml:"busy"`
	Heading      string `yaml:"heading"`
	EmptyWarning string `yaml:"empty_warning"`
	ErrorPrefix  string `yaml:"error_prefix"`
	Copied       string `yaml:"copied"`
}

type modeFile struct {
	Label       string `yaml:"label"`
	Description string `yaml:"description"`
	System      string `yaml:"system"`
	Template    string `yaml:"template"`
}

type catalogFile struct {
	UI    UI                  `yaml:"ui"`
	Modes map[string]modeFile `yaml:"modes"`
}

type entry struct {
	label       string
	description string
	system      string
	// template split around the placeholder
	prefix string
	suffix string
}

// Catalog is the immutable set of strings for one locale
type Catalog struct {
	locale  string
	ui      UI
	entries [numModes]entry
}

// Locales lists the embedded catalogue names
func Locales() []string {
	files, err := fs.Glob(locales, "locales/*.yaml")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, strings.TrimSuffix(strings.TrimPrefix(f, "locales/"), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// Load parses and validates the catalogue for locale
func Load(locale string) (*Catalog, error) {
	if locale == "" {
		locale = DefaultLocale
	}

	data, err := locales.ReadFile("locales/" + locale + ".yaml")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("prompts: unknown locale %q (want one of %s)", locale, strings.Join(Locales(), ", "))
		}
		return nil, fmt.Errorf("prompts: read %s: %w", locale, err)
	}

	return parse(locale, data)
}

// MustLoad is Load for the embedded catalogues, which are known to be valid
// at build time. A failure here is a programming error.
func MustLoad(locale string) *Catalog {
	c, err := Load(locale)
	if err != nil {
		panic(err)
	}
	return c
}

func parse(locale string, data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("prompts: parse %s: %w", locale, err)
	}

	if err := f.UI.validate(); err != nil {
		return nil, fmt.Errorf("prompts: %s: %w", locale, err)
	}

	c := &Catalog{locale: locale, ui: f.UI}
	for _, m := range All() {
		mf, ok := f.Modes[m.String()]
		if !ok {
			return nil, fmt.Errorf("prompts: %s: missing mode %q", locale, m)
		}
		e, err := mf.entry()
		if err != nil {
			return nil, fmt.Errorf("prompts: %s: mode %q: %w", locale, m, err)
		}
		c.entries[m] = e
	}

	for key := range f.Modes {
		if _, err := Parse(key); err != nil {
			return nil, fmt.Errorf("prompts: %s: %w", locale, err)
		}
	}

	return c, nil
}

func (mf modeFile) entry() (entry, error) {
	switch {
	case mf.Label == "":
		return entry{}, errors.New("empty label")
	case mf.Description == "":
		return entry{}, errors.New("empty description")
	case mf.System == "":
		return entry{}, errors.New("empty system instruction")
	}

	if n := strings.Count(mf.Template, Placeholder); n != 1 {
		return entry{}, fmt.Errorf("template must contain %s exactly once, found %d", Placeholder, n)
	}
	prefix, suffix, _ := strings.Cut(mf.Template, Placeholder)

	return entry{
		label:       mf.Label,
		description: mf.Description,
		system:      mf.System,
		prefix:      prefix,
		suffix:      suffix,
	}, nil
}

func (u UI) validate() error {
	fields := []struct {
		name, value string
	}{
		{"title", u.Title},
		{"connecting", u.Connecting},
		{"probe_failed", u.ProbeFailed},
		{"unavailable", u.Unavailable},
		{"mode_label", u.ModeLabel},
		{"current_mode", u.CurrentMode},
		{"input_label", u.InputLabel},
		{"placeholder", u.Placeholder},
		{"submit", u.Submit},
		{"busy", u.Busy},
		{"heading", u.Heading},
		{"empty_warning", u.EmptyWarning},
		{"error_prefix", u.ErrorPrefix},
		{"copied", u.Copied},
	}
	for _, f := range fields {
		if f.value == "" {
			return fmt.Errorf("missing ui string %q", f.name)
		}
	}
	return nil
}

// Locale returns the catalogue's locale name
func (c *Catalog) Locale() string { return c.locale }

// UI returns the fixed form strings
func (c *Catalog) UI() UI { return c.ui }

// System returns the persona sent as the first conversation turn
func (c *Catalog) System(m Mode) string { return c.lookup(m).system }

// Label returns the short name shown in the mode selector
func (c *Catalog) Label(m Mode) string { return c.lookup(m).label }

// Description returns the hint shown for the selected mode
func (c *Catalog) Description(m Mode) string { return c.lookup(m).description }

// Prompt wraps text in the mode's template. text is inserted verbatim.
func (c *Catalog) Prompt(m Mode, text string) string {
	e := c.lookup(m)
	return e.prefix + text + e.suffix
}

// Template returns the mode's raw template, placeholder included
func (c *Catalog) Template(m Mode) string {
	e := c.lookup(m)
	return e.prefix + Placeholder + e.suffix
}

// CurrentMode formats the "current mode" hint line for m
func (c *Catalog) CurrentMode(m Mode) string {
	return fmt.Sprintf(c.ui.CurrentMode, c.Label(m), c.Description(m))
}

func (c *Catalog) lookup(m Mode) *entry {
	if !m.Valid() {
		panic(fmt.Sprintf("prompts: undefined %s", m))
	}
	return &c.entries[m]
}
