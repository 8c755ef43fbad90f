package document

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	spoilers "github.com/Namelesss1/OOTR-Easy-Spoilers"
	"github.com/Namelesss1/OOTR-Easy-Spoilers/aliases"
	"github.com/Namelesss1/OOTR-Easy-Spoilers/lang"
)

const maxSuggestions = 3

// All selects a whole mapping instead of narrowing it with a sub token.
const All = ""

// IsAll reports whether sub selects the whole mapping. Users can also
// spell it out as "all".
func IsAll(sub string) bool {
	return sub == All || strings.EqualFold(sub, "all")
}

// Scalar returns the value stored under field as is.
func (d *Document) Scalar(field string) (any, error) {
	v, found := d.root[field]
	if !found {
		return nil, spoilers.Errorf(spoilers.KeyMissing, "the log has no %q", field)
	}
	return v, nil
}

// FlatMapping returns the mapping stored under field, narrowed by sub
// through the lookup namespace.
func (d *Document) FlatMapping(field, sub string, lookup aliases.Namespace) (map[string]any, error) {
	v, err := d.Scalar(field)
	if err != nil {
		return nil, err
	}
	m, err := asMapping(field, v)
	if err != nil {
		return nil, err
	}
	return d.narrow(field, m, sub, lookup)
}

// WorldMapping returns the value stored under field for the given world,
// narrowed by sub through the lookup namespace.
//
// In single world logs the world token is ignored and the value under field
// is used directly. In multiworld logs the world token is required and
// selects the value stored under the world's label. When sub is All the
// selected value is returned even if it isn't a mapping.
func (d *Document) WorldMapping(field, world, sub string, lookup aliases.Namespace) (any, error) {
	label := ""
	if d.Multiworld() {
		n, err := ParseWorld(world, d.worldCount)
		if err != nil {
			return nil, err
		}
		label = d.tables.Layout().Label(n)
	}
	v, err := d.Scalar(field)
	if err != nil {
		return nil, err
	}
	if label != "" {
		worlds, err := asMapping(field, v)
		if err != nil {
			return nil, err
		}
		found := false
		if v, found = worlds[label]; !found {
			return nil, spoilers.Errorf(spoilers.KeyMissing, "%s has no %q entry", field, label)
		}
		field = field + "/" + label
	}
	if IsAll(sub) {
		return v, nil
	}
	m, err := asMapping(field, v)
	if err != nil {
		return nil, err
	}
	return d.narrow(field, m, sub, lookup)
}

// ParseWorld validates a 1-based world token against the world count.
func ParseWorld(token string, count int) (int, error) {
	if strings.TrimSpace(token) == "" {
		return 0, spoilers.Errorf(spoilers.WorldIndexRequired, "this log has %s, give a world number from 1 to %d", lang.Count(count, "world"), count)
	}
	n, err := strconv.Atoi(strings.TrimSpace(token))
	if err != nil || n < 1 || n > count {
		return 0, spoilers.Errorf(spoilers.WorldIndexOutOfRange, "%q is not a world number, this log has %s (1 to %d)", token, lang.Count(count, "world"), count)
	}
	return n, nil
}

func (d *Document) narrow(field string, m map[string]any, sub string, lookup aliases.Namespace) (map[string]any, error) {
	if IsAll(sub) {
		return m, nil
	}
	if lookup == "" {
		if v, found := m[sub]; found {
			return map[string]any{sub: v}, nil
		}
		for _, k := range slices.Sorted(maps.Keys(m)) {
			if strings.EqualFold(k, sub) {
				return map[string]any{k: m[k]}, nil
			}
		}
		return nil, spoilers.Errorf(spoilers.UnknownAlias, "%s has nothing called %q", field, sub)
	}
	entry, found := d.tables.Resolve(lookup, sub)
	if !found {
		return nil, spoilers.Errorf(spoilers.UnknownAlias, "%q is not a known %s%s", sub, lang.Singular(string(lookup)), lang.DidYouMean(d.tables.Suggest(lookup, sub, maxSuggestions)...))
	}
	result := map[string]any{}
	if lookup == aliases.Settings {
		if v, found := m[entry.Key]; found {
			result[entry.Key] = v
		}
		return result, nil
	}
	for k, v := range m {
		if entry.Matches(k) {
			result[k] = v
		}
	}
	return result, nil
}

func asMapping(field string, v any) (map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, spoilers.Errorf(spoilers.InvalidDocument, "%s is %s, not an object", field, describe(v))
	}
	return m, nil
}
