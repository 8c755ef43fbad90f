// Package console runs the interactive query loop, locally or over SSH.
package console

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	spoilers "github.com/Namelesss1/OOTR-Easy-Spoilers"
	"github.com/Namelesss1/OOTR-Easy-Spoilers/aliases"
	"github.com/Namelesss1/OOTR-Easy-Spoilers/lang"
	"github.com/Namelesss1/OOTR-Easy-Spoilers/query"
	"github.com/Namelesss1/OOTR-Easy-Spoilers/render"
	"github.com/Namelesss1/OOTR-Easy-Spoilers/session"
	"github.com/Namelesss1/OOTR-Easy-Spoilers/termio"
	"github.com/fatih/color"
)

var (
	whitespacePattern = regexp.MustCompile(`\s+`)

	errQuit = errors.New("quit")
)

type Console struct {
	tables  *aliases.Tables
	term    termio.Terminal
	sess    *session.Session
	format  render.Format
	root    string
	failure *color.Color
}

type Option func(*Console)

// WithRoot restricts the files that can be opened to dir and its
// subdirectories.
func WithRoot(dir string) Option {
	return func(c *Console) {
		c.root = dir
	}
}

func WithFormat(format render.Format) Option {
	return func(c *Console) {
		c.format = format
	}
}

// WithColor forces failure colouring on or off, regardless of what the
// process' own stdout supports.
func WithColor(enabled bool) Option {
	return func(c *Console) {
		if enabled {
			c.failure.EnableColor()
		} else {
			c.failure.DisableColor()
		}
	}
}

func New(tables *aliases.Tables, term termio.Terminal, opts ...Option) *Console {
	c := &Console{
		tables:  tables,
		term:    term,
		format:  render.FormatText,
		failure: color.New(color.FgRed),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Attach uses an already loaded session, so Connect won't ask for a log.
func (c *Console) Attach(sess *session.Session) {
	c.sess = sess
}

func (c *Console) Session() *session.Session {
	return c.sess
}

// Connect greets the user, loads a spoiler log unless one is attached, and
// runs the query loop. A log that can't be loaded ends the session.
func (c *Console) Connect() error {
	fmt.Fprint(c.term, "Welcome to the spoiler log query tool!\n\n")
	if c.sess == nil {
		fmt.Fprintln(c.term, "Load a spoiler log from a")
		if err := termio.Execute(c.term, map[string]termio.Func{
			"file":  c.loadFile,
			"paste": c.loadPaste,
		}); err != nil {
			return spoilers.WithStack(err)
		}
	}
	c.describe()
	fmt.Fprint(c.term, "Type a query such as \"settings bridge\", or /help.\n\n")
	return c.Process()
}

func (c *Console) loadFile() error {
	fmt.Fprintln(c.term, "Path to the spoiler log:")
	line, err := c.term.ReadLine()
	if err != nil {
		return spoilers.WithStack(err)
	}
	path, err := c.resolve(strings.TrimSpace(line))
	if err != nil {
		return err
	}
	sess, err := session.Open(c.tables, path)
	if err != nil {
		return err
	}
	c.sess = sess
	return nil
}

func (c *Console) loadPaste() error {
	fmt.Fprintln(c.term, "Paste the spoiler log, followed by an empty line:")
	text, err := termio.ReadUntilBlank(c.term)
	if err != nil {
		return spoilers.WithStack(err)
	}
	sess, err := session.Paste(c.tables, text)
	if err != nil {
		return err
	}
	c.sess = sess
	return nil
}

// resolve turns a user supplied path into one inside the root, if the
// console has one.
func (c *Console) resolve(path string) (string, error) {
	if path == "" {
		return "", spoilers.Errorf(spoilers.InvalidDocument, "no path given")
	}
	if c.root == "" {
		return path, nil
	}
	root, err := filepath.Abs(c.root)
	if err != nil {
		return "", spoilers.WithStack(err)
	}
	full := path
	if !filepath.IsAbs(full) {
		full = filepath.Join(root, full)
	}
	full = filepath.Clean(full)
	rel, err := filepath.Rel(root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", spoilers.Errorf(spoilers.InvalidDocument, "%q is outside the spoiler log directory", path)
	}
	return full, nil
}

func (c *Console) describe() {
	doc := c.sess.Document()
	seed, err := doc.Scalar(c.fieldOf("seed"))
	if err != nil {
		seed = "unknown"
	}
	fmt.Fprintf(c.term, "Loaded seed %v with %s.\n", render.Text(seed), lang.Count(doc.WorldCount(), "world"))
}

func (c *Console) fieldOf(key string) string {
	if spec, found := c.tables.Spec(key); found {
		return spec.DocumentField()
	}
	return key
}

// Process reads and runs lines until the input ends or the user quits.
// Failed queries are reported and don't end the loop.
func (c *Console) Process() error {
	if c.sess == nil {
		return errors.New("can't process without a spoiler log")
	}
	commands := c.metaCommands()
	for {
		line, err := c.term.ReadLine()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return spoilers.WithStack(err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			name := whitespacePattern.Split(line, 2)[0]
			found, err := commands.attempt(c, strings.ToLower(name), strings.TrimSpace(line[len(name):]))
			if errors.Is(err, errQuit) {
				return nil
			} else if err != nil {
				c.fail(err)
			} else if !found {
				c.fail(fmt.Errorf("unknown command %q, try /help", name))
			}
			continue
		}
		if err := c.run(line); err != nil {
			c.fail(err)
		}
	}
}

func (c *Console) run(line string) error {
	result, err := c.sess.Lookup(query.Tokenize(line))
	if err != nil {
		return err
	}
	return render.Write(c.term, c.format, result.Value)
}

func (c *Console) fail(err error) {
	msg := err.Error()
	var e *spoilers.Error
	if errors.As(err, &e) {
		msg = lang.Capitalize(e.Message)
	}
	c.failure.Fprintln(c.term, msg)
}
