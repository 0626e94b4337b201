package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/jacksmith/tn/internal/cli"
	"github.com/jacksmith/tn/internal/storage"
	"github.com/spf13/cobra"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect the raw persisted state",
	Long: `Inspect the key-value store under .tn/.

Each collection is stored under one key as a JSON document.`,
}

var stateKeysCmd = &cobra.Command{
	Use:   "keys [glob]",
	Short: "List stored keys, optionally filtered by a glob",
	Long: `List stored keys. The optional pattern uses doublestar glob syntax.

Examples:
  tn state keys
  tn state keys 'no*'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStateKeys,
}

var stateDumpCmd = &cobra.Command{
	Use:               "dump <key>",
	Short:             "Print the JSON stored under a key",
	Args:              cobra.ExactArgs(1),
	RunE:              runStateDump,
	ValidArgsFunction: completeStateKeys,
}

var stateInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the loaded state components",
	Args:  cobra.NoArgs,
	RunE:  runStateInfo,
}

func init() {
	stateCmd.AddCommand(stateKeysCmd)
	stateCmd.AddCommand(stateDumpCmd)
	stateCmd.AddCommand(stateInfoCmd)
	rootCmd.AddCommand(stateCmd)
}

func runStateKeys(cmd *cobra.Command, args []string) error {
	pattern := "*"
	if len(args) == 1 {
		pattern = args[0]
		if !doublestar.ValidatePattern(pattern) {
			return &cli.ValidationError{Field: "pattern", Message: fmt.Sprintf("%q is not a valid glob", pattern)}
		}
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	keys, err := ws.backend.Keys()
	if err != nil {
		return err
	}
	for _, key := range keys {
		ok, err := doublestar.Match(pattern, key)
		if err != nil {
			return err
		}
		if ok {
			fmt.Println(key)
		}
	}
	return nil
}

func runStateDump(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	data, err := ws.backend.Get(args[0])
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("key %q not found", args[0])
		}
		return err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		// Not JSON; print as stored.
		out.Reset()
		out.Write(data)
	}
	out.WriteByte('\n')
	_, err = out.WriteTo(os.Stdout)
	return err
}

func runStateInfo(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	fmt.Printf("backend: %s\n", ws.store.BackendKind())
	table := cli.NewTable()
	for _, c := range []component{ws.todos, ws.notes} {
		table.AddRow(c.ComponentType(), fmt.Sprintf("%+v", c.State()))
	}
	table.Render(os.Stdout)
	return nil
}
