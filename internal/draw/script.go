package draw

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jacksmith/tn/internal/model"
	"gopkg.in/yaml.v3"
)

// Action names a gesture script step.
type Action string

const (
	ActionStart Action = "start"
	ActionMove  Action = "move"
	ActionStop  Action = "stop"
	ActionLeave Action = "leave"
	ActionUndo  Action = "undo"
	ActionRedo  Action = "redo"
	ActionClear Action = "clear"
	ActionTool  Action = "tool"
	ActionColor Action = "color"
)

// Step is one scripted input. X and Y are client coordinates; Value carries
// the tool name or color.
type Step struct {
	Action Action  `yaml:"action"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	Value  string  `yaml:"value,omitempty"`
}

// Script is a recorded sequence of gestures, replayable against a session.
type Script struct {
	Bounds Rect   `yaml:"bounds"`
	Steps  []Step `yaml:"steps"`
}

// LoadScript reads a YAML gesture script from path.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script %s: %w", path, err)
	}
	sc, err := ParseScript(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse script %s: %w", path, err)
	}
	return sc, nil
}

// ParseScript decodes a YAML gesture script. Unknown fields are rejected.
func ParseScript(data []byte) (*Script, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var sc Script
	if err := dec.Decode(&sc); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	for i, st := range sc.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &sc, nil
}

func (st Step) validate() error {
	switch st.Action {
	case ActionStart, ActionMove, ActionStop, ActionLeave, ActionUndo, ActionRedo, ActionClear:
		return nil
	case ActionTool:
		_, err := model.ParseTool(st.Value)
		return err
	case ActionColor:
		_, err := model.NormalizeColor(st.Value)
		return err
	case "":
		return errors.New("missing action")
	}
	return fmt.Errorf("unknown action %q", st.Action)
}

// Replay applies every step to the session in order, using the script's
// bounds for coordinate mapping. It stops at the first persistence error.
func (sc *Script) Replay(s *Session) error {
	prev := s.Bounds()
	s.SetBounds(sc.Bounds)
	defer s.SetBounds(prev)

	for i, st := range sc.Steps {
		if err := st.apply(s); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, st.Action, err)
		}
	}
	return nil
}

func (st Step) apply(s *Session) error {
	switch st.Action {
	case ActionStart:
		s.Start(st.X, st.Y)
	case ActionMove:
		s.Move(st.X, st.Y)
	case ActionStop:
		return s.Stop()
	case ActionLeave:
		return s.Leave()
	case ActionUndo:
		return s.Undo()
	case ActionRedo:
		return s.Redo()
	case ActionClear:
		return s.Clear()
	case ActionTool:
		t, err := model.ParseTool(st.Value)
		if err != nil {
			return err
		}
		s.SelectTool(t)
	case ActionColor:
		return s.SelectColor(strings.TrimSpace(st.Value))
	}
	return nil
}
