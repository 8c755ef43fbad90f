package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/Namelesss1/OOTR-Easy-Spoilers/aliases"
	"github.com/Namelesss1/OOTR-Easy-Spoilers/render"
	"github.com/Namelesss1/OOTR-Easy-Spoilers/server"
	"github.com/Namelesss1/OOTR-Easy-Spoilers/session"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query <spoiler log> <key> [world] [name...]",
	Short: "Run one query and print the result",
	Long: `Runs a single query against a spoiler log. Each argument is one
query token, so quote names containing spaces or pass them as several
arguments.

Example:
  spoilers query spoiler.json randomized_settings 2 bridge`,
	Args: cobra.MinimumNArgs(2),
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	tables, err := loadTables()
	if err != nil {
		return err
	}
	format, err := render.ParseFormat(formatName)
	if err != nil {
		return err
	}
	sess, err := session.Open(tables, args[0])
	if err != nil {
		return err
	}
	tokens := []string{}
	for _, arg := range args[1:] {
		if arg = strings.TrimSpace(arg); arg != "" {
			tokens = append(tokens, arg)
		}
	}
	result, err := sess.Lookup(tokens)
	if err != nil {
		return err
	}
	return render.Write(cmd.OutOrStdout(), format, result.Value)
}

var dumpAliases bool

var aliasesCmd = &cobra.Command{
	Use:   "aliases [keys|settings|items|locations]",
	Short: "List the names accepted for keys, settings, items and locations",
	Long: `Lists the names accepted for keys, settings, items and locations.

With --dump the tables are printed as YAML instead, ready to be edited and
passed back with --aliases.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAliases,
}

func runAliases(cmd *cobra.Command, args []string) error {
	tables, err := loadTables()
	if err != nil {
		return err
	}
	if dumpAliases {
		return tables.WriteYAML(cmd.OutOrStdout())
	}
	namespaces := aliases.Namespaces()
	if len(args) == 1 {
		ns, err := aliases.ParseNamespace(args[0])
		if err != nil {
			return err
		}
		namespaces = []aliases.Namespace{ns}
	}
	for idx, ns := range namespaces {
		if idx > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		entries := tables.Table(ns)
		if len(namespaces) > 1 {
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d):\n", ns, entries.Len())
		}
		t := table.New("Key", "Aliases").WithWriter(cmd.OutOrStdout())
		for entry := range entries.All() {
			t.AddRow(entry.Key, strings.Join(entry.Aliases[1:], ", "))
		}
		t.Print()
	}
	return nil
}

var serveConfig = server.DefaultConfig()

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the query console over SSH",
	Long: `Starts an SSH server. Every session gets its own console and loads
its own spoiler log, either pasted or read from --logs.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	aliasesCmd.Flags().BoolVar(&dumpAliases, "dump", false, "Print the alias tables as YAML")

	serveCmd.Flags().StringVar(&serveConfig.Addr, "addr", serveConfig.Addr, "Where to listen to SSH connections")
	serveCmd.Flags().StringVar(&serveConfig.Dir, "dir", serveConfig.Dir, "Where to keep the host key")
	serveCmd.Flags().StringVar(&serveConfig.LogsDir, "logs", serveConfig.LogsDir, "Directory sessions may open spoiler logs from")
	serveCmd.Flags().StringVar(&serveConfig.LogFile, "log-file", "", "Rotated server log (default server.log in --dir)")
}

func runServe(cmd *cobra.Command, args []string) error {
	tables, err := loadTables()
	if err != nil {
		return err
	}
	if serveConfig.Format, err = render.ParseFormat(formatName); err != nil {
		return err
	}
	if !cmd.Flags().Changed("log-file") {
		serveConfig.LogFile = filepath.Join(serveConfig.Dir, "server.log")
	}
	srv, err := server.New(serveConfig, tables)
	if err != nil {
		return err
	}
	defer srv.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Start(ctx)
}
