package document

import (
	"errors"
	"strings"
	"testing"

	spoilers "github.com/Namelesss1/OOTR-Easy-Spoilers"
	"github.com/Namelesss1/OOTR-Easy-Spoilers/aliases"
	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
)

const singleWorld = `{
  ":version": "6.2.0 Release",
  ":seed": "ABCDEF1234",
  ":settings_string": "AJTWXCHYKAA8KLAHJAASAECCWCHGLTDDAKAAJAEAC2AJSDGBLADLED7JKQUXEANKCAJAAENAABFAB",
  ":enable_distribution_file": false,
  "file_hash": ["Deku Stick", "Bow", "Map", "Compass", "Boss Key"],
  "settings": {"world_count": 1, "bridge": "medallions", "open_forest": "closed_deku"},
  "randomized_settings": {"starting_age": "child"},
  "item_pool": {"Bombs (5)": 2, "Bombs (10)": 1, "Buy Bombs (20)": 1, "Bow": 1, "Hookshot": 2},
  ":barren_regions": ["Lost Woods", "Gerudo Valley"]
}`

const threeWorlds = `{
  ":seed": "MW",
  "settings": {"world_count": 3, "bridge": "open"},
  "randomized_settings": {
    "World 1": {"bridge": "stones", "starting_age": "adult"},
    "World 2": {"bridge": "dungeons"},
    "World 3": {}
  },
  "item_pool": {
    "World 1": {"Bombs (5)": 1},
    "World 2": {"Bombs (10)": 3, "Bow": 1},
    "World 3": {"Bow": 1}
  }
}`

func mustParse(t *testing.T, text string) *Document {
	t.Helper()
	doc, err := ParseString(text, aliases.Default())
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func wantKind(t *testing.T, err error, kind spoilers.Kind) {
	t.Helper()
	if got := spoilers.KindOf(err); got != kind {
		t.Errorf("got %v (kind %v), want kind %v", err, got, kind)
	}
	if !errors.Is(err, &spoilers.Error{Kind: kind}) {
		t.Errorf("errors.Is(%v, %v) = false", err, kind)
	}
}

func TestParseInvalid(t *testing.T) {
	for name, input := range map[string]string{
		"not json":           "{bridge: open",
		"list root":          `["settings"]`,
		"string root":        `"settings"`,
		"trailing data":      `{"settings": {}} {}`,
		"settings not obj":   `{"settings": "open"}`,
		"zero worlds":        `{"settings": {"world_count": 0}}`,
		"fractional worlds":  `{"settings": {"world_count": 1.5}}`,
		"non numeric worlds": `{"settings": {"world_count": "many"}}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseString(input, aliases.Default())
			wantKind(t, err, spoilers.InvalidDocument)
		})
	}
}

func TestWorldCount(t *testing.T) {
	for input, want := range map[string]int{
		`{}`:                                 1,
		`{"settings": {}}`:                   1,
		`{"settings": {"world_count": 1}}`:   1,
		`{"settings": {"world_count": 3}}`:   3,
		`{"settings": {"world_count": "2"}}`: 2,
		`{"settings": {"world_count": 2.0}}`: 2,
	} {
		doc := mustParse(t, input)
		if got := doc.WorldCount(); got != want {
			t.Errorf("%s: got %d worlds, want %d", input, got, want)
		}
		if doc.Multiworld() != (want > 1) {
			t.Errorf("%s: Multiworld() = %v", input, doc.Multiworld())
		}
	}
}

func TestScalar(t *testing.T) {
	doc := mustParse(t, singleWorld)
	got, err := doc.Scalar(":seed")
	if err != nil {
		t.Fatal(err)
	}
	if got != "ABCDEF1234" {
		t.Errorf("got %v, want ABCDEF1234", got)
	}
	got, err = doc.Scalar(":enable_distribution_file")
	if err != nil {
		t.Fatal(err)
	}
	if got != false {
		t.Errorf("got %v, want false", got)
	}
	_, err = doc.Scalar(":playthrough")
	wantKind(t, err, spoilers.KeyMissing)
}

func TestFlatMapping(t *testing.T) {
	doc := mustParse(t, singleWorld)
	for _, tt := range []struct {
		sub  string
		want map[string]any
	}{
		{All, map[string]any{"world_count": json.Number("1"), "bridge": "medallions", "open_forest": "closed_deku"}},
		{"ALL", map[string]any{"world_count": json.Number("1"), "bridge": "medallions", "open_forest": "closed_deku"}},
		{"bridge", map[string]any{"bridge": "medallions"}},
		{"Open Forest", map[string]any{"open_forest": "closed_deku"}},
		{"lacs", map[string]any{}},
	} {
		t.Run(tt.sub, func(t *testing.T) {
			got, err := doc.FlatMapping("settings", tt.sub, aliases.Settings)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(got, tt.want); diff != "" {
				t.Errorf("got %+v, want %+v: %v", got, tt.want, diff)
			}
		})
	}
	_, err := doc.FlatMapping("settings", "rainbow", aliases.Settings)
	wantKind(t, err, spoilers.UnknownAlias)
	_, err = doc.FlatMapping(":seed", All, aliases.Settings)
	wantKind(t, err, spoilers.InvalidDocument)
	_, err = doc.FlatMapping("dungeons", All, "")
	wantKind(t, err, spoilers.KeyMissing)
}

func TestWorldMappingSingleWorld(t *testing.T) {
	doc := mustParse(t, singleWorld)
	got, err := doc.WorldMapping("item_pool", "", All, aliases.Items)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"Bombs (5)":      json.Number("2"),
		"Bombs (10)":     json.Number("1"),
		"Buy Bombs (20)": json.Number("1"),
		"Bow":            json.Number("1"),
		"Hookshot":       json.Number("2"),
	}
	if diff := cmp.Diff(got, any(want)); diff != "" {
		t.Errorf("got %+v, want %+v: %v", got, want, diff)
	}
	// The world token is ignored in single world logs.
	if got, err = doc.WorldMapping("item_pool", "7", "bow", aliases.Items); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(got, any(map[string]any{"Bow": json.Number("1")})); diff != "" {
		t.Errorf("unexpected bow subset: %v", diff)
	}
	list, err := doc.WorldMapping(":barren_regions", "", All, "")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(list, any([]any{"Lost Woods", "Gerudo Valley"})); diff != "" {
		t.Errorf("unexpected barren regions: %v", diff)
	}
}

func TestItemSubsetReturnsEverySpelling(t *testing.T) {
	doc := mustParse(t, singleWorld)
	got, err := doc.WorldMapping("item_pool", "", "bombs", aliases.Items)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"Bombs (5)":      json.Number("2"),
		"Bombs (10)":     json.Number("1"),
		"Buy Bombs (20)": json.Number("1"),
	}
	if diff := cmp.Diff(got, any(want)); diff != "" {
		t.Errorf("got %+v, want %+v: %v", got, want, diff)
	}
	// Known item that this seed's pool doesn't contain.
	got, err = doc.WorldMapping("item_pool", "", "megaton hammer", aliases.Items)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(got, any(map[string]any{})); diff != "" {
		t.Errorf("want empty subset: %v", diff)
	}
	_, err = doc.WorldMapping("item_pool", "", "golden sword", aliases.Items)
	wantKind(t, err, spoilers.UnknownAlias)
}

func TestWorldMappingMultiworld(t *testing.T) {
	doc := mustParse(t, threeWorlds)
	_, err := doc.WorldMapping("randomized_settings", "", All, aliases.Settings)
	wantKind(t, err, spoilers.WorldIndexRequired)

	got, err := doc.WorldMapping("randomized_settings", "2", "bridge", aliases.Settings)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(got, any(map[string]any{"bridge": "dungeons"})); diff != "" {
		t.Errorf("unexpected World 2 bridge: %v", diff)
	}
	got, err = doc.WorldMapping("item_pool", "2", "bombs", aliases.Items)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(got, any(map[string]any{"Bombs (10)": json.Number("3")})); diff != "" {
		t.Errorf("unexpected World 2 bombs: %v", diff)
	}
	got, err = doc.WorldMapping("randomized_settings", "3", All, aliases.Settings)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(got, any(map[string]any{})); diff != "" {
		t.Errorf("want empty World 3 settings: %v", diff)
	}
}

func TestWorldIndexValidation(t *testing.T) {
	doc := mustParse(t, threeWorlds)
	for _, world := range []string{"1", "2", "3"} {
		if _, err := doc.WorldMapping("item_pool", world, All, aliases.Items); err != nil {
			t.Errorf("world %q: %v", world, err)
		}
	}
	for _, world := range []string{"0", "4", "-1", "abc", "1.5"} {
		_, err := doc.WorldMapping("item_pool", world, All, aliases.Items)
		wantKind(t, err, spoilers.WorldIndexOutOfRange)
		var e *spoilers.Error
		if errors.As(err, &e) && !strings.Contains(e.Message, "3 worlds") {
			t.Errorf("message %q doesn't mention the world count", e.Message)
		}
	}
}

func TestMissingWorldLabel(t *testing.T) {
	doc := mustParse(t, `{"settings": {"world_count": 2}, "item_pool": {"World 1": {}}}`)
	_, err := doc.WorldMapping("item_pool", "2", All, aliases.Items)
	wantKind(t, err, spoilers.KeyMissing)
}

func TestLiteralKeyLookup(t *testing.T) {
	doc := mustParse(t, `{"dungeons": {"Deku Tree": "mq", "Water Temple": "vanilla"}}`)
	got, err := doc.WorldMapping("dungeons", "", "water temple", "")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(got, any(map[string]any{"Water Temple": "vanilla"})); diff != "" {
		t.Errorf("unexpected dungeon: %v", diff)
	}
	_, err = doc.WorldMapping("dungeons", "", "ice cavern", "")
	wantKind(t, err, spoilers.UnknownAlias)
}

func TestLiteralKeyLookupPrefersExactCase(t *testing.T) {
	doc := mustParse(t, `{"dungeons": {"ICE CAVERN": "mq", "Ice Cavern": "vanilla", "ice cavern": "dual"}}`)
	for _, tt := range []struct {
		sub      string
		expected map[string]any
	}{
		{"Ice Cavern", map[string]any{"Ice Cavern": "vanilla"}},
		{"ice cavern", map[string]any{"ice cavern": "dual"}},
		{"ICE CAVERN", map[string]any{"ICE CAVERN": "mq"}},
		{"ice CAVERN", map[string]any{"ICE CAVERN": "mq"}},
	} {
		for i := 0; i < 5; i++ {
			got, err := doc.WorldMapping("dungeons", "", tt.sub, "")
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(got, any(tt.expected)); diff != "" {
				t.Errorf("%q: %v", tt.sub, diff)
			}
		}
	}
}

func TestUnknownAliasSuggests(t *testing.T) {
	doc := mustParse(t, singleWorld)
	_, err := doc.FlatMapping("settings", "brige", aliases.Settings)
	wantKind(t, err, spoilers.UnknownAlias)
	var e *spoilers.Error
	if !errors.As(err, &e) {
		t.Fatalf("got %v", err)
	}
	if want := `"brige" is not a known setting, did you mean "bridge"?`; e.Message != want {
		t.Errorf("got %q, want %q", e.Message, want)
	}
}
