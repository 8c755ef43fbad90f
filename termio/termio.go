// Package termio has the line oriented terminal helpers shared by the local
// console and SSH sessions.
package termio

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	spoilers "github.com/Namelesss1/OOTR-Easy-Spoilers"
	"github.com/Namelesss1/OOTR-Easy-Spoilers/lang"
)

// Terminal is satisfied by *term.Terminal from golang.org/x/term.
type Terminal interface {
	io.Writer
	ReadLine() (string, error)
	SetPrompt(prompt string)
}

const maxLineLength = 64 << 20

// Lines is a Terminal over plain streams, used when input isn't a TTY.
// It never echoes or prints prompts.
type Lines struct {
	scanner *bufio.Scanner
	w       io.Writer
}

func NewLines(r io.Reader, w io.Writer) *Lines {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64<<10), maxLineLength)
	return &Lines{
		scanner: scanner,
		w:       w,
	}
}

func (l *Lines) Write(b []byte) (int, error) {
	return l.w.Write(b)
}

func (l *Lines) ReadLine() (string, error) {
	if !l.scanner.Scan() {
		if err := l.scanner.Err(); err != nil {
			return "", spoilers.WithStack(err)
		}
		return "", io.EOF
	}
	return strings.TrimRight(l.scanner.Text(), "\r"), nil
}

func (l *Lines) SetPrompt(string) {}

type Func func() error

// Execute asks until one of the commands is named, and runs it.
func Execute(term Terminal, commands map[string]Func) error {
	commandNames := make(sort.StringSlice, 0, len(commands))
	for name := range commands {
		commandNames = append(commandNames, name)
	}
	sort.Sort(commandNames)
	name, err := Select(term, "", commandNames)
	if err != nil {
		return err
	}
	return commands[name]()
}

// Select asks until one of the options is given, ignoring case.
func Select(term Terminal, prompt string, options []string) (string, error) {
	choices := lang.Enumerator{Pattern: "[%s]", Operator: "or"}.Do(options...)
	if prompt != "" {
		choices = prompt + " " + choices
	}
	for {
		fmt.Fprintln(term, choices)
		line, err := term.ReadLine()
		if err != nil {
			return "", err
		}
		for _, option := range options {
			if strings.EqualFold(strings.TrimSpace(line), option) {
				return option, nil
			}
		}
	}
}

// ReadUntilBlank collects lines until an empty line or the end of input.
func ReadUntilBlank(term Terminal) (string, error) {
	lines := []string{}
	for {
		line, err := term.ReadLine()
		if err == io.EOF && len(lines) > 0 {
			break
		} else if err != nil {
			return "", err
		}
		if strings.TrimSpace(line) == "" {
			if len(lines) == 0 {
				continue
			}
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}
