package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/flanksource/decks/api"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

//go:embed decks/*.yaml
var definitions embed.FS

var ErrUnknownDeck = errors.New("unknown deck")

// DefaultSeed keeps generated sample figures identical between builds.
const DefaultSeed int64 = 20240826

type Options struct {
	// Date is rendered into {{ .Date }} placeholders, today when zero
	Date time.Time
	// Seed drives the sample figures of generated decks, DefaultSeed when zero
	Seed int64
}

func (o Options) date() time.Time {
	if o.Date.IsZero() {
		return time.Now()
	}
	return o.Date
}

func (o Options) seed() int64 {
	if o.Seed == 0 {
		return DefaultSeed
	}
	return o.Seed
}

// KoreanDate formats t the way the cover slides print dates.
func KoreanDate(t time.Time) string {
	return t.Format("2006년 01월 02일")
}

// Entry describes one deck of the catalog.
type Entry struct {
	Name      string `json:"name" yaml:"name"`
	Title     string `json:"title" yaml:"title"`
	Output    string `json:"output" yaml:"output"`
	Slides    int    `json:"slides" yaml:"slides"`
	Generated bool   `json:"generated,omitempty" yaml:"generated,omitempty"`
}

type generator func(Options) *api.Deck

var generators = map[string]generator{
	"ultimate":           Ultimate,
	"ultimate-technical": UltimateTechnical,
}

func embedded() (map[string]string, error) {
	files, err := fs.Glob(definitions, "decks/*.yaml")
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(files))
	for _, f := range files {
		out[strings.TrimSuffix(path.Base(f), ".yaml")] = f
	}
	return out, nil
}

// Names returns every deck name in the catalog, sorted.
func Names() []string {
	files, _ := embedded()
	names := append(lo.Keys(files), lo.Keys(generators)...)
	sort.Strings(names)
	return names
}

// List loads every deck of the catalog and summarises it.
func List(opts Options) ([]Entry, error) {
	var entries []Entry
	for _, name := range Names() {
		deck, err := Load(name, opts)
		if err != nil {
			return nil, err
		}
		_, generated := generators[name]
		entries = append(entries, Entry{
			Name:      deck.Name,
			Title:     deck.Title,
			Output:    deck.Output,
			Slides:    len(deck.Slides),
			Generated: generated,
		})
	}
	return entries, nil
}

// Load returns a validated deck from the catalog.
func Load(name string, opts Options) (*api.Deck, error) {
	if gen, ok := generators[name]; ok {
		deck := gen(opts)
		if err := deck.Validate(); err != nil {
			return nil, err
		}
		return deck, nil
	}

	files, err := embedded()
	if err != nil {
		return nil, err
	}
	file, ok := files[name]
	if !ok {
		return nil, fmt.Errorf("%w '%s', available: %s", ErrUnknownDeck, name, strings.Join(Names(), ", "))
	}
	data, err := definitions.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}
	return Parse(data, opts)
}

// LoadFile loads a deck definition from a YAML file on disk.
func LoadFile(file string, opts Options) (*api.Deck, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck %s: %w", file, err)
	}
	deck, err := Parse(data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return deck, nil
}

// Parse expands the {{ .Date }} placeholder of a YAML definition, decodes it
// and validates the result. Any other braces are kept as written.
func Parse(data []byte, opts Options) (*api.Deck, error) {
	date := KoreanDate(opts.date())
	rendered := strings.NewReplacer("{{ .Date }}", date, "{{.Date}}", date).Replace(string(data))

	var deck api.Deck
	dec := yaml.NewDecoder(strings.NewReader(rendered))
	dec.KnownFields(true)
	if err := dec.Decode(&deck); err != nil {
		return nil, fmt.Errorf("failed to decode deck: %w", err)
	}
	if deck.Output == "" && deck.Name != "" {
		deck.Output = deck.Name + ".pptx"
	}
	if err := deck.Validate(); err != nil {
		return nil, err
	}
	return &deck, nil
}
