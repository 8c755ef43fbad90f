// Package aliases holds the alias tables that map the words people type to
// the keys used inside a spoiler log.
//
// There are four independent namespaces. A token is only ever resolved
// against one of them, and resolution is a case-insensitive exact match
// against every alias of every entry, with the first declared entry winning
// when an alias appears more than once.
package aliases

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Namespace string

const (
	Keys      Namespace = "keys"
	Settings  Namespace = "settings"
	Items     Namespace = "items"
	Locations Namespace = "locations"
)

// Namespaces lists every namespace in display order.
func Namespaces() []Namespace {
	return []Namespace{Keys, Settings, Items, Locations}
}

var namespaceNames = map[string]Namespace{
	"key":       Keys,
	"keys":      Keys,
	"setting":   Settings,
	"settings":  Settings,
	"item":      Items,
	"items":     Items,
	"location":  Locations,
	"locations": Locations,
	"place":     Locations,
	"places":    Locations,
	"map":       Locations,
	"maps":      Locations,
}

func ParseNamespace(s string) (Namespace, error) {
	if ns, found := namespaceNames[strings.ToLower(strings.TrimSpace(s))]; found {
		return ns, nil
	}
	return "", errors.Errorf("unknown namespace %q", s)
}

func (n Namespace) valid() bool {
	return slices.Contains(Namespaces(), n)
}

// Shape describes how the value of a top-level key is laid out in the log.
type Shape int

const (
	// Scalar values are returned as they are.
	Scalar Shape = iota + 1
	// Flat values are mappings that a sub token can narrow down.
	Flat
	// World values are flat mappings in single world logs, and mappings from
	// world label to flat mapping in multiworld logs.
	World
)

var shapeNames = map[Shape]string{
	Scalar: "scalar",
	Flat:   "flat",
	World:  "world",
}

func (s Shape) String() string {
	if name, found := shapeNames[s]; found {
		return name
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

func ParseShape(s string) (Shape, error) {
	for shape, name := range shapeNames {
		if strings.EqualFold(name, s) {
			return shape, nil
		}
	}
	return 0, errors.Errorf("unknown shape %q", s)
}

func (s *Shape) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	shape, err := ParseShape(name)
	if err != nil {
		return errors.Wrapf(err, "line %d", node.Line)
	}
	*s = shape
	return nil
}

func (s Shape) MarshalYAML() (any, error) {
	return s.String(), nil
}

// Entry is one concept and the words accepted for it. Aliases[0] is always
// Key, the spelling stored in the log.
type Entry struct {
	Key     string   `yaml:"key"`
	Aliases []string `yaml:"aliases"`
}

// Matches reports whether s equals any alias, ignoring case.
func (e Entry) Matches(s string) bool {
	for _, alias := range e.Aliases {
		if strings.EqualFold(alias, s) {
			return true
		}
	}
	return false
}

func (e Entry) validate(ns Namespace) error {
	if e.Key == "" {
		return errors.Errorf("%s: entry with aliases %q has no key", ns, e.Aliases)
	}
	if len(e.Aliases) == 0 {
		return errors.Errorf("%s: entry %q has no aliases", ns, e.Key)
	}
	if e.Aliases[0] != e.Key {
		return errors.Errorf("%s: entry %q must list its key as the first alias, not %q", ns, e.Key, e.Aliases[0])
	}
	for _, alias := range e.Aliases {
		if strings.TrimSpace(alias) == "" {
			return errors.Errorf("%s: entry %q has an empty alias", ns, e.Key)
		}
	}
	return nil
}

// KeySpec is an entry of the Keys namespace together with how its value is
// stored in the log.
type KeySpec struct {
	Entry `yaml:",inline"`
	// Field is the exact spelling in the log, when it differs from Key.
	Field string `yaml:"field,omitempty"`
	Shape Shape  `yaml:"shape"`
	// Lookup is the namespace sub tokens resolve against. Empty means the
	// sub token is matched against the keys present in the log.
	Lookup Namespace `yaml:"lookup,omitempty"`
}

// DocumentField returns the key spelling used in the log.
func (k KeySpec) DocumentField() string {
	if k.Field != "" {
		return k.Field
	}
	return k.Key
}

func (k KeySpec) validate() error {
	if err := k.Entry.validate(Keys); err != nil {
		return err
	}
	switch k.Shape {
	case Scalar:
		if k.Lookup != "" {
			return errors.Errorf("%s: scalar key %q can't have a lookup", Keys, k.Key)
		}
	case Flat, World:
	default:
		return errors.Errorf("%s: key %q has no shape", Keys, k.Key)
	}
	if k.Lookup != "" && (k.Lookup == Keys || !k.Lookup.valid()) {
		return errors.Errorf("%s: key %q has invalid lookup %q", Keys, k.Key, k.Lookup)
	}
	return nil
}

// Layout names the parts of the log that aren't plain alias lookups.
type Layout struct {
	SettingsField   string `yaml:"settings_field"`
	WorldCountField string `yaml:"world_count_field"`
	// WorldLabel is a format with a single %d for the 1-based world index.
	WorldLabel string `yaml:"world_label"`
}

func DefaultLayout() Layout {
	return Layout{
		SettingsField:   "settings",
		WorldCountField: "world_count",
		WorldLabel:      "World %d",
	}
}

// Label returns the key of the given world in a multiworld log.
func (l Layout) Label(world int) string {
	return fmt.Sprintf(l.WorldLabel, world)
}

func (l Layout) validate() error {
	if l.SettingsField == "" || l.WorldCountField == "" {
		return errors.New("layout: settings_field and world_count_field are required")
	}
	if strings.Count(l.WorldLabel, "%") != 1 || !strings.Contains(l.WorldLabel, "%d") {
		return errors.Errorf("layout: world_label %q must contain exactly one %%d", l.WorldLabel)
	}
	return nil
}

// Table is the ordered entries of one namespace.
type Table struct {
	namespace Namespace
	entries   []Entry
	index     map[string]int
}

func newTable(ns Namespace, entries []Entry) (*Table, error) {
	t := &Table{
		namespace: ns,
		entries:   slices.Clone(entries),
		index:     map[string]int{},
	}
	keys := map[string]bool{}
	for idx, entry := range t.entries {
		if err := entry.validate(ns); err != nil {
			return nil, err
		}
		if keys[entry.Key] {
			return nil, errors.Errorf("%s: duplicate key %q", ns, entry.Key)
		}
		keys[entry.Key] = true
		for _, alias := range entry.Aliases {
			folded := fold(alias)
			if _, found := t.index[folded]; !found {
				t.index[folded] = idx
			}
		}
	}
	return t, nil
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (t *Table) Namespace() Namespace {
	return t.namespace
}

func (t *Table) Len() int {
	return len(t.entries)
}

// Resolve returns the first entry with an alias equal to token, ignoring case.
func (t *Table) Resolve(token string) (Entry, bool) {
	idx, found := t.index[fold(token)]
	if !found {
		return Entry{}, false
	}
	return t.entries[idx], true
}

// All iterates the entries in declaration order.
func (t *Table) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, entry := range t.entries {
			if !yield(entry) {
				return
			}
		}
	}
}

// Tables is the full, immutable alias configuration. It is safe to share
// between goroutines.
type Tables struct {
	layout Layout
	specs  []KeySpec
	byKey  map[string]KeySpec
	tables map[Namespace]*Table
}

// New validates the given entries and builds the lookup indexes.
func New(layout Layout, keys []KeySpec, settings, items, locations []Entry) (*Tables, error) {
	if err := layout.validate(); err != nil {
		return nil, err
	}
	result := &Tables{
		layout: layout,
		specs:  slices.Clone(keys),
		byKey:  map[string]KeySpec{},
		tables: map[Namespace]*Table{},
	}
	keyEntries := make([]Entry, 0, len(keys))
	for _, spec := range keys {
		if err := spec.validate(); err != nil {
			return nil, err
		}
		result.byKey[spec.Key] = spec
		keyEntries = append(keyEntries, spec.Entry)
	}
	for ns, entries := range map[Namespace][]Entry{
		Keys:      keyEntries,
		Settings:  settings,
		Items:     items,
		Locations: locations,
	} {
		table, err := newTable(ns, entries)
		if err != nil {
			return nil, err
		}
		result.tables[ns] = table
	}
	return result, nil
}

func (t *Tables) Layout() Layout {
	return t.layout
}

// Table returns the table of ns, or nil for an unknown namespace.
func (t *Tables) Table(ns Namespace) *Table {
	return t.tables[ns]
}

// Resolve finds the entry of ns that has token as an alias.
func (t *Tables) Resolve(ns Namespace, token string) (Entry, bool) {
	table := t.tables[ns]
	if table == nil {
		return Entry{}, false
	}
	return table.Resolve(token)
}

// Key is Resolve returning only the canonical key.
func (t *Tables) Key(ns Namespace, token string) (string, bool) {
	entry, found := t.Resolve(ns, token)
	return entry.Key, found
}

// Spec returns the shape information of a canonical top-level key.
func (t *Tables) Spec(key string) (KeySpec, bool) {
	spec, found := t.byKey[key]
	return spec, found
}

// Specs returns the top-level keys in declaration order.
func (t *Tables) Specs() []KeySpec {
	return slices.Clone(t.specs)
}
