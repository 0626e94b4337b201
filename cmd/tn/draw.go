package main

import (
	"fmt"
	"image/png"
	"os"
	"strconv"
	"strings"

	"github.com/jacksmith/tn/internal/cli"
	"github.com/jacksmith/tn/internal/draw"
	"github.com/jacksmith/tn/internal/model"
	"github.com/spf13/cobra"
)

var drawCmd = &cobra.Command{
	Use:   "draw",
	Short: "Draw freehand strokes for the next note",
	Long: `Edit the drawing that the next saved note will carry.

Strokes are kept between commands with full undo and redo history.
Undone strokes stay redoable after new strokes are drawn; only
"tn draw clear" or saving a note empties both stacks.`,
}

var drawStrokeCmd = &cobra.Command{
	Use:   "stroke <x,y>...",
	Short: "Draw one stroke through the given points",
	Long: `Draw one stroke, as if the pointer went down at the first point,
moved through the rest and was released.

Points are in client coordinates. --origin gives the position of the
surface's top-left corner, which is subtracted from every point.

Examples:
  tn draw stroke 10,10 20,10 20,20
  tn draw stroke --tool eraser 15,15 40,40
  tn draw stroke --color '#ff0000' --origin 100,50 110,60 150,90`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDrawStroke,
}

var drawUndoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Undo the last stroke",
	Args:  cobra.NoArgs,
	RunE:  runDrawUndo,
}

var drawRedoCmd = &cobra.Command{
	Use:   "redo",
	Short: "Redo the last undone stroke",
	Args:  cobra.NoArgs,
	RunE:  runDrawRedo,
}

var drawClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Erase the drawing and its history",
	Args:  cobra.NoArgs,
	RunE:  runDrawClear,
}

var drawStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the strokes in the drawing",
	Args:  cobra.NoArgs,
	RunE:  runDrawStatus,
}

var drawExportCmd = &cobra.Command{
	Use:   "export <file.png>",
	Short: "Write the drawing to a PNG file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDrawExport,
}

var drawReplayCmd = &cobra.Command{
	Use:   "replay <script.yaml>",
	Short: "Replay a recorded gesture script",
	Long: `Replay a YAML gesture script against the drawing.

A script has optional bounds and a list of steps:

  bounds: {left: 100, top: 50}
  steps:
    - {action: start, x: 110, y: 60}
    - {action: move, x: 130, y: 80}
    - {action: stop}
    - {action: color, value: "#00f"}
    - {action: undo}

Actions are start, move, stop, leave, undo, redo, clear, tool and color.`,
	Args: cobra.ExactArgs(1),
	RunE: runDrawReplay,
}

var (
	drawTool   string
	drawColor  string
	drawOrigin string
)

func init() {
	drawStrokeCmd.Flags().StringVar(&drawTool, "tool", "", "pen or eraser (prefixes accepted)")
	drawStrokeCmd.Flags().StringVar(&drawColor, "color", "", "pen color as #rgb or #rrggbb")
	drawStrokeCmd.Flags().StringVar(&drawOrigin, "origin", "", "surface top-left corner as left,top")

	drawCmd.AddCommand(drawStrokeCmd)
	drawCmd.AddCommand(drawUndoCmd)
	drawCmd.AddCommand(drawRedoCmd)
	drawCmd.AddCommand(drawClearCmd)
	drawCmd.AddCommand(drawStatusCmd)
	drawCmd.AddCommand(drawExportCmd)
	drawCmd.AddCommand(drawReplayCmd)
	rootCmd.AddCommand(drawCmd)
}

// parsePoint parses "x,y".
func parsePoint(s string) (float64, float64, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, &cli.ValidationError{Field: "point", Message: fmt.Sprintf("%q is not x,y", s)}
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if errX != nil || errY != nil {
		return 0, 0, &cli.ValidationError{Field: "point", Message: fmt.Sprintf("%q is not x,y", s)}
	}
	return x, y, nil
}

func runDrawStroke(cmd *cobra.Command, args []string) error {
	points := make([][2]float64, len(args))
	for i, arg := range args {
		x, y, err := parsePoint(arg)
		if err != nil {
			return err
		}
		points[i] = [2]float64{x, y}
	}

	var bounds draw.Rect
	if drawOrigin != "" {
		left, top, err := parsePoint(drawOrigin)
		if err != nil {
			return &cli.ValidationError{Field: "origin", Message: err.Error()}
		}
		bounds = draw.Rect{Left: left, Top: top}
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	session := ws.session()
	session.SetBounds(bounds)

	if drawTool != "" {
		name, err := cli.MatchName(drawTool, []string{string(model.ToolPen), string(model.ToolEraser)}, "tool")
		if err != nil {
			return err
		}
		session.SelectTool(model.Tool(name))
	}
	if drawColor != "" {
		if err := session.SelectColor(drawColor); err != nil {
			return &cli.ValidationError{Field: "color", Message: err.Error()}
		}
		if session.Tool() == model.ToolEraser {
			fmt.Println(cli.Yellow("note: --color is ignored by the eraser"))
		}
	}

	session.Start(points[0][0], points[0][1])
	for _, p := range points[1:] {
		session.Move(p[0], p[1])
	}
	if err := session.Stop(); err != nil {
		return err
	}

	fmt.Printf("Drew %s stroke with %d point(s)\n", session.Tool(), len(points))
	printDrawSummary(session)
	return nil
}

func runDrawUndo(cmd *cobra.Command, args []string) error {
	return drawAction("Undid last stroke", "nothing to undo", func(s *draw.Session) (bool, error) {
		if len(s.Committed()) == 0 {
			return false, nil
		}
		return true, s.Undo()
	})
}

func runDrawRedo(cmd *cobra.Command, args []string) error {
	return drawAction("Redid last stroke", "nothing to redo", func(s *draw.Session) (bool, error) {
		if len(s.RedoStack()) == 0 {
			return false, nil
		}
		return true, s.Redo()
	})
}

func runDrawClear(cmd *cobra.Command, args []string) error {
	return drawAction("Cleared drawing", "", func(s *draw.Session) (bool, error) {
		return true, s.Clear()
	})
}

// drawAction runs fn against the persisted session and reports the result.
// When fn reports false nothing changed and idle is printed instead.
func drawAction(done, idle string, fn func(*draw.Session) (bool, error)) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	session := ws.session()
	changed, err := fn(session)
	if err != nil {
		return err
	}
	if changed {
		fmt.Println(done)
	} else {
		fmt.Println(cli.Gray(idle))
	}
	printDrawSummary(session)
	return nil
}

func printDrawSummary(s *draw.Session) {
	fmt.Printf("%d stroke(s), %d to redo\n", len(s.Committed()), len(s.RedoStack()))
}

func runDrawStatus(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	session := ws.session()
	committed := session.Committed()
	if len(committed) == 0 && len(session.RedoStack()) == 0 {
		fmt.Println("Drawing is empty.")
		return nil
	}

	table := cli.NewTable()
	for i, stroke := range committed {
		if len(stroke) == 0 {
			continue
		}
		first := stroke[0]
		table.AddRow(fmt.Sprintf("%d", i+1), string(first.Tool), first.Color,
			fmt.Sprintf("%d point(s)", len(stroke)),
			cli.Gray(fmt.Sprintf("from %g,%g", first.X, first.Y)))
	}
	table.Render(os.Stdout)
	printDrawSummary(session)
	return nil
}

func runDrawExport(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	session := ws.session()
	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", args[0], err)
	}
	if err := png.Encode(f, session.Surface().Image()); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode png: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", args[0], err)
	}

	fmt.Printf("Wrote %dx%d drawing to %s\n", session.Surface().Width(), session.Surface().Height(), args[0])
	return nil
}

func runDrawReplay(cmd *cobra.Command, args []string) error {
	script, err := draw.LoadScript(args[0])
	if err != nil {
		return err
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	session := ws.session()
	if err := script.Replay(session); err != nil {
		return err
	}
	fmt.Printf("Replayed %d step(s) from %s\n", len(script.Steps), args[0])
	printDrawSummary(session)
	return nil
}
