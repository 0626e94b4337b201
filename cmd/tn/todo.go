package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jacksmith/tn/internal/cli"
	"github.com/jacksmith/tn/internal/ops"
	"github.com/spf13/cobra"
)

var todoCmd = &cobra.Command{
	Use:   "todo",
	Short: "Manage the todo list",
	Long: `Add, list, complete and delete todos.

Todos are numbered from 1 in the order they were added. Numbers shift
down when an earlier todo is deleted.`,
}

var todoAddCmd = &cobra.Command{
	Use:   "add <text>...",
	Short: "Add a todo",
	Long: `Add a todo to the end of the list.

All arguments are joined with spaces to form the todo text.

Examples:
  tn todo add Buy paper bags
  tn todo add "Call the plumber"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTodoAdd,
}

var todoListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List todos one page at a time",
	Long: `List todos, page_size at a time (see .tnconfig.yaml).

The footer names the next page. Past the last page it wraps back to 1.`,
	Args: cobra.NoArgs,
	RunE: runTodoList,
}

var todoToggleCmd = &cobra.Command{
	Use:               "toggle <n>",
	Short:             "Mark a todo done, or reopen it",
	Args:              cobra.ExactArgs(1),
	RunE:              runTodoToggle,
	ValidArgsFunction: completeTodoNumbers,
}

var todoRmCmd = &cobra.Command{
	Use:               "rm <n>",
	Short:             "Delete a todo",
	Args:              cobra.ExactArgs(1),
	RunE:              runTodoRm,
	ValidArgsFunction: completeTodoNumbers,
}

var todoPage int

func init() {
	todoListCmd.Flags().IntVar(&todoPage, "page", 1, "page number to show")

	todoCmd.AddCommand(todoAddCmd)
	todoCmd.AddCommand(todoListCmd)
	todoCmd.AddCommand(todoToggleCmd)
	todoCmd.AddCommand(todoRmCmd)
	rootCmd.AddCommand(todoCmd)
}

func runTodoAdd(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	text := strings.Join(args, " ")
	added, err := ops.AddTodo(ws.todos, text)
	if err != nil {
		return err
	}
	if !added {
		return &cli.EmptyError{What: "add", Hint: "todo text must not be blank"}
	}
	fmt.Printf("Added todo %d: %s\n", len(ws.todos.Get()), strings.TrimSpace(text))
	return nil
}

func runTodoList(cmd *cobra.Command, args []string) error {
	if todoPage < 1 {
		return &cli.ValidationError{Field: "page", Message: "must be 1 or more"}
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	todos := ws.todos.Get()
	if len(todos) == 0 {
		fmt.Println("No todos.")
		return nil
	}

	size := ws.cfg.PageSize
	pages := (len(todos) + size - 1) / size
	if todoPage > pages {
		return &cli.ValidationError{Field: "page", Message: fmt.Sprintf("only %d page(s) of todos", pages)}
	}
	start := (todoPage - 1) * size

	table := cli.NewTable()
	table.SetMaxWidth(2, cli.DefaultMaxTitleWidth)
	for i, t := range ops.PageTodos(todos, start, size) {
		text := t.Text
		if t.Completed {
			text = cli.Gray(text)
		}
		table.AddRow(fmt.Sprintf("%d", start+i+1), cli.Checkbox(t.Completed), text)
	}
	table.Render(os.Stdout)

	if pages > 1 {
		next := ops.NextPageStart(len(todos), start, size)/size + 1
		fmt.Println(cli.Gray(fmt.Sprintf("page %d of %d (next: --page %d)", todoPage, pages, next)))
	}
	return nil
}

func runTodoToggle(cmd *cobra.Command, args []string) error {
	i, err := cli.ParseIndex(args[0], "todo")
	if err != nil {
		return err
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	ok, err := ops.ToggleTodo(ws.todos, i)
	if err != nil {
		return err
	}
	if !ok {
		return &cli.NotFoundError{Kind: "todo", Index: i + 1}
	}

	t := ws.todos.Get()[i]
	if t.Completed {
		fmt.Printf("Completed %d: %s\n", i+1, t.Text)
	} else {
		fmt.Printf("Reopened %d: %s\n", i+1, t.Text)
	}
	return nil
}

func runTodoRm(cmd *cobra.Command, args []string) error {
	i, err := cli.ParseIndex(args[0], "todo")
	if err != nil {
		return err
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	todos := ws.todos.Get()
	ok, err := ops.RemoveTodo(ws.todos, i)
	if err != nil {
		return err
	}
	if !ok {
		return &cli.NotFoundError{Kind: "todo", Index: i + 1}
	}
	fmt.Printf("Deleted todo %d: %s\n", i+1, todos[i].Text)
	return nil
}
