package main

import (
	"github.com/jacksmith/tn/internal/draw"
	"github.com/jacksmith/tn/internal/model"
	"github.com/jacksmith/tn/internal/ops"
	"github.com/jacksmith/tn/internal/state"
	"github.com/jacksmith/tn/internal/storage"
)

// workspace is an opened .tn/ directory with both collections loaded.
type workspace struct {
	store   *storage.Storage
	cfg     *storage.Config
	backend storage.Backend
	todos   *state.State[[]model.Todo]
	notes   *state.State[model.NotesState]
}

// openWorkspace opens the .tn/ directory in the current directory.
func openWorkspace() (*workspace, error) {
	s, err := storage.Open(".")
	if err != nil {
		return nil, err
	}
	cfg, err := s.LoadConfig()
	if err != nil {
		return nil, err
	}
	if logLevelFlag == "" {
		if err := setLogLevel(cfg.LogLevel); err != nil {
			logger.Warn("ignoring log_level from config", "value", cfg.LogLevel)
		}
	}

	backend, err := s.Backend(storage.WithLogger(logger.With("backend", s.BackendKind())))
	if err != nil {
		return nil, err
	}
	stateLog := state.WithLogger(logger.With("component", "state"))
	return &workspace{
		store:   s,
		cfg:     cfg,
		backend: backend,
		todos:   state.New(backend, ops.TodosKey, []model.Todo{}, stateLog),
		notes:   state.New(backend, ops.NotesKey, model.EmptyNotesState(), stateLog),
	}, nil
}

func (w *workspace) Close() error {
	return w.backend.Close()
}

// session returns a drawing session sized from the config, holding the
// persisted drawing history and writing changes back to it.
func (w *workspace) session() *draw.Session {
	surface := draw.NewSurface(w.cfg.CanvasWidth, w.cfg.CanvasHeight)
	sess := draw.NewSession(surface, draw.WithLogger(logger.With("component", "draw")))
	ops.BindSession(w.notes, sess)
	return sess
}
