package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"gopkg.in/yaml.v3"
)

// Editor runs an external text editor on a temporary file.
type Editor struct {
	Command string // e.g. "vim" or "code --wait"
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

// EditorFromEnv returns an editor attached to the process terminal, using
// $VISUAL and then $EDITOR.
func EditorFromEnv() *Editor {
	cmd := os.Getenv("VISUAL")
	if cmd == "" {
		cmd = os.Getenv("EDITOR")
	}
	return &Editor{Command: cmd, Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Edit writes content to a temporary file with the given suffix, waits for
// the editor to exit and returns the file's new content.
func (e *Editor) Edit(content []byte, suffix string) ([]byte, error) {
	parts := strings.Fields(e.Command)
	if len(parts) == 0 {
		return nil, errors.New("EDITOR not set. Set it or pass --title and --content instead")
	}

	tmp, err := os.CreateTemp("", "tn-*"+suffix)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	path := tmp.Name()
	defer os.Remove(path)

	_, werr := tmp.Write(content)
	if cerr := tmp.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return nil, fmt.Errorf("failed to write temp file: %w", werr)
	}

	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("editor exited with status %d", exitErr.ExitCode())
		}
		return nil, fmt.Errorf("failed to run editor: %w", err)
	}

	out, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read edited file: %w", err)
	}
	return out, nil
}

// EditYAML opens v as a YAML document and decodes the edited result.
// Unknown fields are rejected so typos are not silently dropped.
func EditYAML[T any](e *Editor, v T) (T, error) {
	var zero T
	data, err := yaml.Marshal(v)
	if err != nil {
		return zero, fmt.Errorf("failed to encode yaml: %w", err)
	}
	edited, err := e.Edit(data, ".yaml")
	if err != nil {
		return zero, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(edited))
	dec.KnownFields(true)
	var out T
	if err := dec.Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			return zero, nil
		}
		return zero, fmt.Errorf("failed to parse edited yaml: %w", err)
	}
	return out, nil
}
