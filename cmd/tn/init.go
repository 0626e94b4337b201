package main

import (
	"fmt"

	"github.com/jacksmith/tn/internal/storage"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new tn workspace",
	Long: `Create a .tn/ directory in the current directory.

Todos, notes and the drawing history are stored under .tn/ using the
chosen backend: "file" keeps one JSON file per collection in .tn/state/,
"sqlite" keeps them in .tn/state.db.

Fails if .tn/ already exists in the current directory.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var initBackend string

func init() {
	initCmd.Flags().StringVar(&initBackend, "backend", storage.BackendFile, "storage backend: file or sqlite")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	s, err := storage.Init(".", initBackend)
	if err != nil {
		return err
	}
	fmt.Printf("Initialized tn in .tn/ (%s backend)\n", s.BackendKind())
	return nil
}
