// Command spoilers looks things up in Ocarina of Time Randomizer spoiler
// logs, interactively, one query at a time, or over SSH.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	spoilers "github.com/Namelesss1/OOTR-Easy-Spoilers"
	"github.com/Namelesss1/OOTR-Easy-Spoilers/aliases"
	"github.com/Namelesss1/OOTR-Easy-Spoilers/console"
	"github.com/Namelesss1/OOTR-Easy-Spoilers/lang"
	"github.com/Namelesss1/OOTR-Easy-Spoilers/render"
	"github.com/Namelesss1/OOTR-Easy-Spoilers/session"
	"github.com/Namelesss1/OOTR-Easy-Spoilers/termio"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	aliasesPath string
	formatName  string
	noColor     bool
)

var rootCmd = &cobra.Command{
	Use:   "spoilers [spoiler log]",
	Short: "Query Ocarina of Time Randomizer spoiler logs",
	Long: `Looks up keys, settings, items and locations in a spoiler log using
short, case insensitive names.

Run with a spoiler log to query it right away, or without one to be asked
for a file or a pasted log.

Example queries:
  settings bridge
  item_pool 2 bombs
  woth`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runConsole,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&aliasesPath, "aliases", "", "YAML file with alias tables to use instead of the built in ones")
	rootCmd.PersistentFlags().StringVar(&formatName, "format", string(render.FormatText), fmt.Sprintf("How to print results, %s", lang.Enumerator{Operator: "or"}.Do(formatNames()...)))
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Don't colour failures")

	rootCmd.AddCommand(queryCmd, aliasesCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, failureMessage(err))
		os.Exit(1)
	}
}

func formatNames() []string {
	result := []string{}
	for _, f := range render.Formats() {
		result = append(result, string(f))
	}
	return result
}

func loadTables() (*aliases.Tables, error) {
	if aliasesPath == "" {
		return aliases.Default(), nil
	}
	return aliases.LoadFile(aliasesPath)
}

func failureMessage(err error) string {
	var e *spoilers.Error
	if errors.As(err, &e) {
		return lang.Capitalize(e.Message)
	}
	return err.Error()
}

func runConsole(cmd *cobra.Command, args []string) error {
	tables, err := loadTables()
	if err != nil {
		return err
	}
	format, err := render.ParseFormat(formatName)
	if err != nil {
		return err
	}
	opts := []console.Option{
		console.WithFormat(format),
	}
	if noColor {
		opts = append(opts, console.WithColor(false))
	}

	var t termio.Terminal
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return spoilers.WithStack(err)
		}
		defer term.Restore(fd, oldState)
		t = term.NewTerminal(struct {
			io.Reader
			io.Writer
		}{os.Stdin, cmd.OutOrStdout()}, "> ")
	} else {
		t = termio.NewLines(os.Stdin, cmd.OutOrStdout())
	}

	c := console.New(tables, t, opts...)
	if len(args) == 1 {
		sess, err := session.Open(tables, args[0])
		if err != nil {
			return err
		}
		c.Attach(sess)
	}
	if err := c.Connect(); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
