// Package session ties a loaded spoiler log to a query engine for one user.
package session

import (
	"strings"
	"time"

	spoilers "github.com/Namelesss1/OOTR-Easy-Spoilers"
	"github.com/Namelesss1/OOTR-Easy-Spoilers/aliases"
	"github.com/Namelesss1/OOTR-Easy-Spoilers/document"
	"github.com/Namelesss1/OOTR-Easy-Spoilers/query"
	"github.com/Namelesss1/OOTR-Easy-Spoilers/render"
	cache "github.com/go-pkgz/expirable-cache/v3"
)

const (
	maxCachedResults = 256
	resultTTL        = 10 * time.Minute
)

// Session owns one Document. Successful lookups are remembered, failures
// are recomputed every time.
type Session struct {
	tables  *aliases.Tables
	doc     *document.Document
	engine  *query.Engine
	results cache.Cache[string, *query.Result]
}

func New(tables *aliases.Tables, doc *document.Document) *Session {
	return &Session{
		tables:  tables,
		doc:     doc,
		engine:  query.New(tables, doc),
		results: cache.NewCache[string, *query.Result]().WithMaxKeys(maxCachedResults).WithLRU().WithTTL(resultTTL),
	}
}

// Open loads the spoiler log at path.
func Open(tables *aliases.Tables, path string) (*Session, error) {
	doc, err := document.Load(path, tables)
	if err != nil {
		return nil, err
	}
	return New(tables, doc), nil
}

// Paste loads a spoiler log from pasted text.
func Paste(tables *aliases.Tables, text string) (*Session, error) {
	if strings.TrimSpace(text) == "" {
		return nil, spoilers.Errorf(spoilers.InvalidDocument, "nothing was pasted")
	}
	doc, err := document.ParseString(text, tables)
	if err != nil {
		return nil, err
	}
	return New(tables, doc), nil
}

func (s *Session) Document() *document.Document {
	return s.doc
}

// Lookup runs the tokens through the engine, reusing earlier results for
// the same tokens.
func (s *Session) Lookup(tokens []string) (*query.Result, error) {
	key := s.cacheKey(tokens)
	if result, found := s.results.Get(key); found {
		return result, nil
	}
	result, err := s.engine.Lookup(tokens)
	if err != nil {
		return nil, err
	}
	s.results.Set(key, result, 0)
	return result, nil
}

// Run tokenizes and looks up line, and renders the result as text.
func (s *Session) Run(line string) (string, error) {
	result, err := s.Lookup(query.Tokenize(line))
	if err != nil {
		return "", err
	}
	return render.Text(result.Value), nil
}

// Cached returns the number of remembered results.
func (s *Session) Cached() int {
	return s.results.Len()
}

// Lookups are case insensitive and any alias of the top key works, so
// "Settings bridge" and "s bridge" share a result.
func (s *Session) cacheKey(tokens []string) string {
	folded := make([]string, len(tokens))
	for idx, token := range tokens {
		folded[idx] = strings.ToLower(token)
	}
	if len(tokens) > 0 {
		if key, found := s.tables.Key(aliases.Keys, tokens[0]); found {
			folded[0] = key
		}
	}
	return strings.Join(folded, "\x1f")
}
