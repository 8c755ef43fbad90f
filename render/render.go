// Package render turns query results into text for the console.
package render

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rodaine/table"
)

type Format string

const (
	FormatText  Format = "text"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

func Formats() []Format {
	return []Format{FormatText, FormatTable, FormatJSON}
}

func ParseFormat(s string) (Format, error) {
	for _, f := range Formats() {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", errors.Errorf("unknown format %q, want text, table or json", s)
}

// Write renders v to w in the given format, ending with a newline unless
// the rendering is empty.
func Write(w io.Writer, format Format, v any) error {
	switch format {
	case FormatTable:
		return Table(w, v)
	case FormatJSON:
		js, err := JSON(v)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, js)
		return errors.WithStack(err)
	default:
		s := Text(v)
		if s == "" {
			return nil
		}
		_, err := fmt.Fprintln(w, s)
		return errors.WithStack(err)
	}
}

// Text renders a mapping as sorted "key: value" lines and a list as one
// element per line. Values nested deeper are kept on their line: mappings as
// compact JSON, lists as comma separated elements.
func Text(v any) string {
	switch val := v.(type) {
	case map[string]any:
		lines := make([]string, 0, len(val))
		for _, k := range sortedKeys(val) {
			lines = append(lines, fmt.Sprintf("%s: %s", k, inline(val[k])))
		}
		return strings.Join(lines, "\n")
	case []any:
		lines := make([]string, 0, len(val))
		for _, elem := range val {
			lines = append(lines, inline(elem))
		}
		return strings.Join(lines, "\n")
	}
	return scalar(v)
}

// Table renders a mapping as a Key/Value table and a list as a numbered
// table. Anything else is written as Text.
func Table(w io.Writer, v any) error {
	switch val := v.(type) {
	case map[string]any:
		if len(val) == 0 {
			return nil
		}
		t := table.New("Key", "Value").WithWriter(w)
		for _, k := range sortedKeys(val) {
			t.AddRow(k, inline(val[k]))
		}
		t.Print()
		return nil
	case []any:
		if len(val) == 0 {
			return nil
		}
		t := table.New("#", "Value").WithWriter(w)
		for idx, elem := range val {
			t.AddRow(idx+1, inline(elem))
		}
		t.Print()
		return nil
	}
	_, err := fmt.Fprintln(w, scalar(v))
	return errors.WithStack(err)
}

func JSON(v any) (string, error) {
	js, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", errors.WithStack(err)
	}
	return string(js), nil
}

func inline(v any) string {
	switch val := v.(type) {
	case map[string]any:
		buf := &bytes.Buffer{}
		enc := json.NewEncoder(buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(val); err != nil {
			return fmt.Sprint(val)
		}
		return strings.TrimSpace(buf.String())
	case []any:
		parts := make([]string, 0, len(val))
		for _, elem := range val {
			parts = append(parts, inline(elem))
		}
		return strings.Join(parts, ", ")
	}
	return scalar(v)
}

func scalar(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case json.Number:
		return val.String()
	}
	return fmt.Sprint(v)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
