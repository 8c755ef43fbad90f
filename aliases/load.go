package aliases

import (
	"bytes"
	_ "embed"
	"io"
	"os"
	"slices"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed aliases.yaml
var defaultYAML []byte

type file struct {
	Layout    *Layout   `yaml:"layout"`
	Keys      []KeySpec `yaml:"keys"`
	Settings  []Entry   `yaml:"settings"`
	Items     []Entry   `yaml:"items"`
	Locations []Entry   `yaml:"locations"`
}

// Load reads alias tables in the aliases.yaml format. A missing layout
// section means DefaultLayout.
func Load(r io.Reader) (*Tables, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	f := &file{}
	if err := dec.Decode(f); err != nil {
		return nil, errors.Wrap(err, "decoding alias tables")
	}
	layout := DefaultLayout()
	if f.Layout != nil {
		layout = *f.Layout
	}
	return New(layout, f.Keys, f.Settings, f.Items, f.Locations)
}

// WriteYAML writes the tables in the format Load reads, so the built in
// tables can be used as the starting point of a custom file.
func (t *Tables) WriteYAML(w io.Writer) error {
	layout := t.layout
	f := &file{
		Layout:    &layout,
		Keys:      t.specs,
		Settings:  slices.Collect(t.tables[Settings].All()),
		Items:     slices.Collect(t.tables[Items].All()),
		Locations: slices.Collect(t.tables[Locations].All()),
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return errors.Wrap(err, "encoding alias tables")
	}
	return errors.WithStack(enc.Close())
}

func LoadFile(path string) (*Tables, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer fh.Close()
	tables, err := Load(fh)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %q", path)
	}
	return tables, nil
}

var defaultTables = sync.OnceValue(func() *Tables {
	tables, err := Load(bytes.NewReader(defaultYAML))
	if err != nil {
		panic(err)
	}
	return tables
})

// Default returns the built in tables. They are parsed once and shared.
func Default() *Tables {
	return defaultTables()
}
