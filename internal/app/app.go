package app

import "log/slog"

// App bundles the collaborators the HTTP handlers need. Construction happens
// in cmd/server; tests assemble it around fakes.
type App struct {
	Store      SessionStore
	Reconciler *Reconciler
	Clock      Clock
	Log        *slog.Logger
}

func New(store SessionStore, reconciler *Reconciler, clock Clock, log *slog.Logger) *App {
	return &App{Store: store, Reconciler: reconciler, Clock: clock, Log: log}
}
