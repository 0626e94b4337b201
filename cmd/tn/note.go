package main

import (
	"fmt"
	"os"

	"github.com/jacksmith/tn/internal/cli"
	"github.com/jacksmith/tn/internal/draw"
	"github.com/jacksmith/tn/internal/model"
	"github.com/jacksmith/tn/internal/ops"
	"github.com/spf13/cobra"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage notes",
	Long: `Save, list, show, edit and delete notes.

A saved note takes the current drawing with it (see "tn draw") and the
drawing is cleared. Notes are numbered from 1 in the order they were saved.`,
}

var noteAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Save a note",
	Long: `Save a note with a title, content and the current drawing.

A note needs at least one of a title, content or a drawing. Use
--no-drawing to leave the current drawing in place.

Examples:
  tn note add --title "Garden" --content "Plant tulips in October"
  tn draw stroke 10,10 50,50 && tn note add --title "Sketch"`,
	Args: cobra.NoArgs,
	RunE: runNoteAdd,
}

var noteListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List notes",
	Args:    cobra.NoArgs,
	RunE:    runNoteList,
}

var noteShowCmd = &cobra.Command{
	Use:   "show <n>",
	Short: "Show a note",
	Long: `Show a note's title, date and content.

With --drawing, the note's drawing is written to the given PNG file.`,
	Args:              cobra.ExactArgs(1),
	RunE:              runNoteShow,
	ValidArgsFunction: completeNoteNumbers,
}

var noteRmCmd = &cobra.Command{
	Use:               "rm <n>",
	Short:             "Delete a note",
	Args:              cobra.ExactArgs(1),
	RunE:              runNoteRm,
	ValidArgsFunction: completeNoteNumbers,
}

var noteEditCmd = &cobra.Command{
	Use:   "edit <n>",
	Short: "Edit a note's title and content in $EDITOR",
	Long: `Open the note's title and content as YAML in $VISUAL or $EDITOR.

The drawing and date are kept. Saving an empty document leaves the note
unchanged unless it has a drawing.`,
	Args:              cobra.ExactArgs(1),
	RunE:              runNoteEdit,
	ValidArgsFunction: completeNoteNumbers,
}

var (
	noteTitle     string
	noteContent   string
	noteNoDrawing bool
	noteDrawing   string
)

// noteForm is the document edited by "tn note edit".
type noteForm struct {
	Title   string `yaml:"title"`
	Content string `yaml:"content"`
}

func init() {
	noteAddCmd.Flags().StringVarP(&noteTitle, "title", "t", "", "note title")
	noteAddCmd.Flags().StringVarP(&noteContent, "content", "c", "", "note content")
	noteAddCmd.Flags().BoolVar(&noteNoDrawing, "no-drawing", false, "do not attach the current drawing")
	noteShowCmd.Flags().StringVar(&noteDrawing, "drawing", "", "write the note's drawing to this PNG file")

	noteCmd.AddCommand(noteAddCmd)
	noteCmd.AddCommand(noteListCmd)
	noteCmd.AddCommand(noteShowCmd)
	noteCmd.AddCommand(noteRmCmd)
	noteCmd.AddCommand(noteEditCmd)
	rootCmd.AddCommand(noteCmd)
}

func runNoteAdd(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	var session *draw.Session
	if !noteNoDrawing {
		session = ws.session()
	}

	added, err := ops.CreateNote(ws.notes, noteTitle, noteContent, session)
	if err != nil {
		return err
	}
	if !added {
		return &cli.EmptyError{What: "save", Hint: "give --title or --content, or draw something with `tn draw stroke`"}
	}

	notes := ws.notes.Get().Notes
	n := notes[len(notes)-1]
	if n.HasDrawing() {
		fmt.Printf("Saved note %d: %s (with drawing)\n", len(notes), n.DisplayTitle())
	} else {
		fmt.Printf("Saved note %d: %s\n", len(notes), n.DisplayTitle())
	}
	return nil
}

func runNoteList(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	notes := ws.notes.Get().Notes
	if len(notes) == 0 {
		fmt.Println("No notes.")
		return nil
	}

	table := cli.NewTable()
	table.SetMaxWidth(2, cli.DefaultMaxTitleWidth)
	for i, n := range notes {
		mark := ""
		if n.HasDrawing() {
			mark = cli.Yellow("[drawing]")
		}
		table.AddRow(fmt.Sprintf("%d", i+1), cli.Gray(n.Date), n.DisplayTitle(), mark)
	}
	table.Render(os.Stdout)
	return nil
}

func runNoteShow(cmd *cobra.Command, args []string) error {
	i, err := cli.ParseIndex(args[0], "note")
	if err != nil {
		return err
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	n, ok := ops.GetNote(ws.notes, i)
	if !ok {
		return &cli.NotFoundError{Kind: "note", Index: i + 1}
	}

	if noteDrawing != "" {
		if !n.HasDrawing() {
			return fmt.Errorf("note %d has no drawing", i+1)
		}
		data, err := draw.DecodeDataURL(n.Drawing)
		if err != nil {
			return err
		}
		if err := os.WriteFile(noteDrawing, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", noteDrawing, err)
		}
	}

	printNote(i, n)
	if noteDrawing != "" {
		fmt.Printf("\nDrawing written to %s\n", noteDrawing)
	}
	return nil
}

func printNote(i int, n model.Note) {
	fmt.Printf("%d. %s\n", i+1, n.DisplayTitle())
	fmt.Println(cli.Gray("Saved: " + n.Date))
	if n.ID != "" {
		fmt.Println(cli.Gray("ID: " + n.ID))
	}
	if n.HasDrawing() {
		fmt.Println(cli.Yellow("Has drawing"))
	}
	if n.Content != "" {
		fmt.Println()
		fmt.Println(n.Content)
	}
}

func runNoteRm(cmd *cobra.Command, args []string) error {
	i, err := cli.ParseIndex(args[0], "note")
	if err != nil {
		return err
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	n, _ := ops.GetNote(ws.notes, i)
	ok, err := ops.RemoveNote(ws.notes, i)
	if err != nil {
		return err
	}
	if !ok {
		return &cli.NotFoundError{Kind: "note", Index: i + 1}
	}
	fmt.Printf("Deleted note %d: %s\n", i+1, n.DisplayTitle())
	return nil
}

func runNoteEdit(cmd *cobra.Command, args []string) error {
	i, err := cli.ParseIndex(args[0], "note")
	if err != nil {
		return err
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	n, ok := ops.GetNote(ws.notes, i)
	if !ok {
		return &cli.NotFoundError{Kind: "note", Index: i + 1}
	}

	edited, err := cli.EditYAML(cli.EditorFromEnv(), noteForm{Title: n.Title, Content: n.Content})
	if err != nil {
		return err
	}

	updated, err := ops.UpdateNote(ws.notes, i, edited.Title, edited.Content)
	if err != nil {
		return err
	}
	if !updated {
		return &cli.EmptyError{What: "save", Hint: "a note without a drawing needs a title or content"}
	}
	fmt.Printf("Updated note %d\n", i+1)
	return nil
}
