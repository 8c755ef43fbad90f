// Package document holds a parsed spoiler log and the lookups the query
// engine runs against it.
package document

import (
	"bytes"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	spoilers "github.com/Namelesss1/OOTR-Easy-Spoilers"
	"github.com/Namelesss1/OOTR-Easy-Spoilers/aliases"
	"github.com/goccy/go-json"
)

// Document is a read-only spoiler log. The world count is read once at
// construction.
type Document struct {
	root       map[string]any
	tables     *aliases.Tables
	worldCount int
}

// Parse decodes a JSON spoiler log. Numbers are kept as json.Number so they
// render the way they were written.
func Parse(data []byte, tables *aliases.Tables) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, spoilers.Wrap(spoilers.InvalidDocument, err, "not valid JSON")
	}
	var trailing any
	if err := dec.Decode(&trailing); err != io.EOF {
		return nil, spoilers.Errorf(spoilers.InvalidDocument, "unexpected data after the JSON document")
	}
	m, ok := root.(map[string]any)
	if !ok {
		return nil, spoilers.Errorf(spoilers.InvalidDocument, "the top level of a spoiler log must be an object, not %s", describe(root))
	}
	return New(m, tables)
}

func ParseString(text string, tables *aliases.Tables) (*Document, error) {
	return Parse([]byte(text), tables)
}

func Load(path string, tables *aliases.Tables) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, spoilers.WithStack(err)
	}
	return Parse(data, tables)
}

// New wraps an already decoded tree.
func New(root map[string]any, tables *aliases.Tables) (*Document, error) {
	d := &Document{
		root:   root,
		tables: tables,
	}
	count, err := d.readWorldCount()
	if err != nil {
		return nil, err
	}
	d.worldCount = count
	return d, nil
}

func (d *Document) readWorldCount() (int, error) {
	layout := d.tables.Layout()
	raw, found := d.root[layout.SettingsField]
	if !found {
		return 1, nil
	}
	settings, ok := raw.(map[string]any)
	if !ok {
		return 0, spoilers.Errorf(spoilers.InvalidDocument, "%s must be an object, not %s", layout.SettingsField, describe(raw))
	}
	raw, found = settings[layout.WorldCountField]
	if !found {
		return 1, nil
	}
	count, ok := toInt(raw)
	if !ok || count < 1 {
		return 0, spoilers.Errorf(spoilers.InvalidDocument, "%s.%s must be a positive integer, not %v", layout.SettingsField, layout.WorldCountField, raw)
	}
	return count, nil
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		if f, err := n.Float64(); err == nil {
			return toInt(f)
		}
	case float64:
		if n == math.Trunc(n) && n <= math.MaxInt32 && n >= math.MinInt32 {
			return int(n), true
		}
	case int:
		return n, true
	case int64:
		return int(n), true
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i, true
		}
	}
	return 0, false
}

func (d *Document) WorldCount() int {
	return d.worldCount
}

func (d *Document) Multiworld() bool {
	return d.worldCount > 1
}

// Fields returns the top-level keys of the log, sorted.
func (d *Document) Fields() []string {
	result := make([]string, 0, len(d.root))
	for k := range d.root {
		result = append(result, k)
	}
	slices.Sort(result)
	return result
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "an object"
	case []any:
		return "a list"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case json.Number, float64, int, int64:
		return "a number"
	}
	return "an unknown value"
}
