package console

import (
	"fmt"
	"strings"

	"github.com/Namelesss1/OOTR-Easy-Spoilers/aliases"
	"github.com/Namelesss1/OOTR-Easy-Spoilers/query"
	"github.com/Namelesss1/OOTR-Easy-Spoilers/render"
	"github.com/rodaine/table"
)

type command struct {
	names map[string]bool
	usage string
	help  string
	f     func(*Console, string) error
}

type commands []command

func (cmds commands) attempt(c *Console, name string, rest string) (bool, error) {
	for _, cmd := range cmds {
		if cmd.names[name] {
			if err := cmd.f(c, rest); err != nil {
				return true, err
			}
			return true, nil
		}
	}
	return false, nil
}

func m(s ...string) map[string]bool {
	res := map[string]bool{}
	for _, p := range s {
		res[p] = true
	}
	return res
}

func (c *Console) metaCommands() commands {
	var cmds commands
	cmds = commands{
		{
			names: m("/help", "/?"),
			usage: "/help",
			help:  "Show this help.",
			f: func(c *Console, s string) error {
				fmt.Fprintln(c.term, "Queries start with a key, followed by a world number in multiworld logs and then what to look for:")
				fmt.Fprintln(c.term, "  settings bridge")
				fmt.Fprintln(c.term, "  item_pool 2 bombs")
				fmt.Fprintln(c.term, "  \"randomized settings\" 1 \"open door of time\"")
				fmt.Fprintln(c.term)
				t := table.New("Command", "Description").WithWriter(c.term)
				for _, cmd := range cmds {
					t.AddRow(cmd.usage, cmd.help)
				}
				t.Print()
				return nil
			},
		},
		{
			names: m("/aliases", "/alias"),
			usage: "/aliases [keys|settings|items|locations] [filter]",
			help:  "List the accepted words for keys, settings, items or locations.",
			f: func(c *Console, s string) error {
				parts := query.Tokenize(s)
				ns := aliases.Keys
				if len(parts) > 0 {
					var err error
					if ns, err = aliases.ParseNamespace(parts[0]); err != nil {
						return err
					}
				}
				filter := strings.ToLower(strings.Join(parts[min(1, len(parts)):], " "))
				entries := c.tables.Table(ns)
				t := table.New("Key", "Aliases").WithWriter(c.term)
				rows := 0
				for entry := range entries.All() {
					if filter != "" && !strings.Contains(strings.ToLower(strings.Join(entry.Aliases, "\x00")), filter) {
						continue
					}
					t.AddRow(entry.Key, strings.Join(entry.Aliases[1:], ", "))
					rows++
				}
				if rows == 0 {
					fmt.Fprintf(c.term, "No %s match %q.\n", ns, filter)
					return nil
				}
				t.Print()
				if rows < entries.Len() {
					fmt.Fprintf(c.term, "%d of %d %s match %q.\n", rows, entries.Len(), ns, filter)
				}
				return nil
			},
		},
		{
			names: m("/keys"),
			usage: "/keys",
			help:  "List the keys that can start a query.",
			f: func(c *Console, s string) error {
				doc := c.sess.Document()
				present := map[string]bool{}
				for _, field := range doc.Fields() {
					present[field] = true
				}
				t := table.New("Key", "Shape", "Looks up", "In log").WithWriter(c.term)
				for _, spec := range c.tables.Specs() {
					lookup := string(spec.Lookup)
					if lookup == "" {
						lookup = "-"
					}
					inLog := "no"
					if present[spec.DocumentField()] {
						inLog = "yes"
					}
					t.AddRow(spec.Key, spec.Shape, lookup, inLog)
				}
				t.Print()
				return nil
			},
		},
		{
			names: m("/info"),
			usage: "/info",
			help:  "Describe the loaded spoiler log.",
			f: func(c *Console, s string) error {
				doc := c.sess.Document()
				t := table.New("Field", "Value").WithWriter(c.term)
				for _, key := range []string{"version", "seed", "settings_string"} {
					if v, err := doc.Scalar(c.fieldOf(key)); err == nil {
						t.AddRow(key, render.Text(v))
					}
				}
				t.AddRow("worlds", doc.WorldCount())
				t.AddRow("top level keys", len(doc.Fields()))
				t.AddRow("cached results", c.sess.Cached())
				t.Print()
				return nil
			},
		},
		{
			names: m("/format"),
			usage: "/format [text|table|json]",
			help:  "Show or change how results are printed.",
			f: func(c *Console, s string) error {
				if s == "" {
					fmt.Fprintf(c.term, "Results are printed as %s.\n", c.format)
					return nil
				}
				format, err := render.ParseFormat(s)
				if err != nil {
					return err
				}
				c.format = format
				fmt.Fprintf(c.term, "Results will be printed as %s.\n", format)
				return nil
			},
		},
		{
			names: m("/quit", "/exit"),
			usage: "/quit",
			help:  "End the session.",
			f: func(c *Console, s string) error {
				fmt.Fprintln(c.term, "Bye!")
				return errQuit
			},
		},
	}
	return cmds
}
