// Package query turns a line of user input into a lookup against a spoiler
// log.
package query

import (
	"strings"

	spoilers "github.com/Namelesss1/OOTR-Easy-Spoilers"
	"github.com/Namelesss1/OOTR-Easy-Spoilers/aliases"
	"github.com/Namelesss1/OOTR-Easy-Spoilers/document"
	"github.com/Namelesss1/OOTR-Easy-Spoilers/lang"
	"github.com/Namelesss1/OOTR-Easy-Spoilers/render"
	"github.com/buildkite/shellwords"
)

const maxSuggestions = 3

// SplitBatch quotes with both ' and ", and escapes with ^. Only double quotes
// group words here, so the other two are escaped to stay literal.
var literals = strings.NewReplacer("^", "^^", "'", "^'")

// Tokenize splits a line into query tokens. Double quotes group words, while
// apostrophes and carets are kept as part of the word they're in.
func Tokenize(line string) []string {
	parts, err := shellwords.SplitBatch(literals.Replace(line))
	if err != nil {
		parts = strings.Fields(strings.ReplaceAll(line, `"`, " "))
	}
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(strings.ReplaceAll(part, `"`, "")); part != "" {
			tokens = append(tokens, part)
		}
	}
	return tokens
}

// Result is a successful lookup.
type Result struct {
	// Key is the canonical name of the top key.
	Key string
	// Field is the spelling of the top key in the log.
	Field string
	// World is the 1-based world the value was taken from, or 0 for values
	// that aren't per world.
	World int
	Value any
}

type Engine struct {
	tables *aliases.Tables
	doc    *document.Document
}

func New(tables *aliases.Tables, doc *document.Document) *Engine {
	return &Engine{
		tables: tables,
		doc:    doc,
	}
}

// Lookup resolves the first token as a top key and lets the key's shape
// decide how the rest of the tokens are read.
func (e *Engine) Lookup(tokens []string) (*Result, error) {
	if len(tokens) == 0 {
		return nil, spoilers.Errorf(spoilers.UnknownKey, "nothing to look up")
	}
	entry, found := e.tables.Resolve(aliases.Keys, tokens[0])
	if !found {
		return nil, spoilers.Errorf(spoilers.UnknownKey, "%q is not a known key%s", tokens[0], lang.DidYouMean(e.tables.Suggest(aliases.Keys, tokens[0], maxSuggestions)...))
	}
	spec, found := e.tables.Spec(entry.Key)
	if !found {
		return nil, spoilers.Errorf(spoilers.UnknownKey, "%q has no shape", entry.Key)
	}
	result := &Result{
		Key:   spec.Key,
		Field: spec.DocumentField(),
	}
	var err error
	switch spec.Shape {
	case aliases.Scalar:
		result.Value, err = e.doc.Scalar(result.Field)
	case aliases.Flat:
		result.Value, err = e.doc.FlatMapping(result.Field, sub(tokens[1:]), spec.Lookup)
	case aliases.World:
		rest := tokens[1:]
		world := ""
		if e.doc.Multiworld() {
			if len(rest) > 0 {
				world, rest = rest[0], rest[1:]
			}
			if result.World, err = document.ParseWorld(world, e.doc.WorldCount()); err != nil {
				return nil, err
			}
		}
		result.Value, err = e.doc.WorldMapping(result.Field, world, sub(rest), spec.Lookup)
	default:
		return nil, spoilers.Errorf(spoilers.UnknownKey, "%q has unknown shape %v", spec.Key, spec.Shape)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Query runs a line of input and renders the result as text.
func (e *Engine) Query(line string) (string, error) {
	result, err := e.Lookup(Tokenize(line))
	if err != nil {
		return "", err
	}
	return render.Text(result.Value), nil
}

func sub(tokens []string) string {
	if len(tokens) == 0 {
		return document.All
	}
	return strings.Join(tokens, " ")
}
