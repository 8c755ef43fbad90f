package lang

import (
	"bytes"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/gertd/go-pluralize"
)

const (
	DefaultPattern   = "%s"
	DefaultSeparator = ","
	DefaultOperator  = "and"
)

var pluralizer = pluralize.NewClient()

type Enumerator struct {
	Pattern   string
	Separator string
	Operator  string
}

func (e Enumerator) Do(elements ...string) string {
	pattern, separator, operator := DefaultPattern, DefaultSeparator, DefaultOperator
	if e.Pattern != "" {
		pattern = e.Pattern
	}
	if e.Separator != "" {
		separator = e.Separator
	}
	if e.Operator != "" {
		operator = e.Operator
	}
	res := &bytes.Buffer{}
	for idx, element := range elements {
		switch {
		case idx+1 == len(elements):
			fmt.Fprintf(res, pattern, element)
		case len(elements) == 2:
			fmt.Fprintf(res, pattern, element)
			fmt.Fprintf(res, " %s ", operator)
		case idx+2 == len(elements):
			fmt.Fprintf(res, pattern, element)
			fmt.Fprintf(res, "%s %s ", separator, operator)
		default:
			fmt.Fprintf(res, pattern, element)
			fmt.Fprintf(res, "%s ", separator)
		}
	}
	return res.String()
}

func Singular(word string) string {
	return pluralizer.Singular(word)
}

// Count returns "1 world", "3 worlds" and so on.
func Count(n int, word string) string {
	return pluralizer.Pluralize(word, n, true)
}

func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// DidYouMean returns `, did you mean "a" or "b"?` for the given options, or
// nothing without options.
func DidYouMean(options ...string) string {
	if len(options) == 0 {
		return ""
	}
	return fmt.Sprintf(", did you mean %s?", Enumerator{Pattern: "%q", Operator: "or"}.Do(options...))
}
