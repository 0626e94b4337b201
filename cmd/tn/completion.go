package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jacksmith/tn/internal/ops"
	"github.com/jacksmith/tn/internal/storage"
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for tn.

To load completions:

Bash:
  $ source <(tn completion bash)

Zsh:
  $ tn completion zsh > "${fpath[1]}/_tn"

Fish:
  $ tn completion fish | source
`,
}

var completionBashCmd = &cobra.Command{
	Use:   "bash",
	Short: "Generate bash completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenBashCompletion(os.Stdout)
	},
}

var completionZshCmd = &cobra.Command{
	Use:   "zsh",
	Short: "Generate zsh completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenZshCompletion(os.Stdout)
	},
}

var completionFishCmd = &cobra.Command{
	Use:   "fish",
	Short: "Generate fish completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenFishCompletion(os.Stdout, true)
	},
}

func init() {
	completionCmd.AddCommand(completionBashCmd)
	completionCmd.AddCommand(completionZshCmd)
	completionCmd.AddCommand(completionFishCmd)
	rootCmd.AddCommand(completionCmd)
}

// completeTodoNumbers offers todo numbers described by their text.
func completeTodoNumbers(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ws, err := openWorkspace()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	defer ws.Close()

	var completions []string
	for i, t := range ws.todos.Get() {
		n := fmt.Sprintf("%d", i+1)
		if strings.HasPrefix(n, toComplete) {
			completions = append(completions, n+"\t"+truncate(t.Text, 40))
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// completeNoteNumbers offers note numbers described by their title.
func completeNoteNumbers(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ws, err := openWorkspace()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	defer ws.Close()

	var completions []string
	for i, n := range ws.notes.Get().Notes {
		num := fmt.Sprintf("%d", i+1)
		if strings.HasPrefix(num, toComplete) {
			completions = append(completions, num+"\t"+truncate(n.DisplayTitle(), 40))
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// completeStateKeys offers the keys present in the backend.
func completeStateKeys(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	s, err := storage.Open(".")
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	backend, err := s.Backend()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	defer backend.Close()

	keys, err := backend.Keys()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var completions []string
	for _, k := range keys {
		if strings.HasPrefix(k, toComplete) {
			completions = append(completions, k)
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// completeWatchKeys offers the collections tn watch accepts.
func completeWatchKeys(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{ops.TodosKey, ops.NotesKey}, cobra.ShellCompDirectiveNoFileComp
}

// truncate shortens s to max runes for completion descriptions.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
