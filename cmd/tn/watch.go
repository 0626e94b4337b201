package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"

	"github.com/jacksmith/tn/internal/cli"
	"github.com/jacksmith/tn/internal/model"
	"github.com/jacksmith/tn/internal/ops"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <todos|notes>",
	Short: "Print a collection again every time it changes",
	Long: `Print the todo list or the note list, then print it again after
every change, including changes made by other tn commands.

Watching needs the file backend. Stop with Ctrl-C.`,
	Args:              cobra.ExactArgs(1),
	RunE:              runWatch,
	ValidArgsFunction: completeWatchKeys,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	key, err := cli.MatchName(args[0], []string{ops.TodosKey, ops.NotesKey}, "collection")
	if err != nil {
		return err
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := watchCollection(ctx, ws, key, os.Stdout); err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}

// watchCollection prints key's collection to out now and after every
// change until ctx is done. It returns once watching has started.
func watchCollection(ctx context.Context, ws *workspace, key string, out io.Writer) error {
	var mu sync.Mutex
	emit := func(render func(io.Writer)) {
		mu.Lock()
		defer mu.Unlock()
		render(out)
	}

	var unsubscribe func()
	var watch func(context.Context) error
	switch key {
	case ops.TodosKey:
		emit(func(w io.Writer) { renderTodos(w, ws.todos.Get()) })
		sub := ws.todos.Subscribe(func(v []model.Todo) {
			emit(func(w io.Writer) { renderTodos(w, v) })
		})
		unsubscribe = func() { ws.todos.Unsubscribe(sub) }
		watch = func(ctx context.Context) error { return ws.todos.Watch(ctx) }
	default:
		emit(func(w io.Writer) { renderNotes(w, ws.notes.Get()) })
		sub := ws.notes.Subscribe(func(v model.NotesState) {
			emit(func(w io.Writer) { renderNotes(w, v) })
		})
		unsubscribe = func() { ws.notes.Unsubscribe(sub) }
		watch = func(ctx context.Context) error { return ws.notes.Watch(ctx) }
	}

	if err := watch(ctx); err != nil {
		unsubscribe()
		return err
	}
	context.AfterFunc(ctx, unsubscribe)
	return nil
}

func renderTodos(w io.Writer, todos []model.Todo) {
	fmt.Fprintln(w, cli.Gray(fmt.Sprintf("-- %d todo(s) --", len(todos))))
	table := cli.NewTable()
	for i, t := range todos {
		table.AddRow(fmt.Sprintf("%d", i+1), cli.Checkbox(t.Completed), t.Text)
	}
	table.Render(w)
}

func renderNotes(w io.Writer, st model.NotesState) {
	fmt.Fprintln(w, cli.Gray(fmt.Sprintf("-- %d note(s), drawing has %d stroke(s) --", len(st.Notes), len(st.CurrentPaths))))
	table := cli.NewTable()
	for i, n := range st.Notes {
		table.AddRow(fmt.Sprintf("%d", i+1), n.Date, n.DisplayTitle())
	}
	table.Render(w)
}
