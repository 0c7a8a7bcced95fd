package app

import (
	"io"
	"log/slog"

	"github.com/pkg/errors"

	"registrar/internal/domain"
	"registrar/internal/menu"
)

// App is what commands operate on once the dependency graph is built.
type App struct {
	Config  *Config
	Records domain.RecordStore
	Auth    domain.AuthService
	Log     *slog.Logger
}

func New(cfg *Config, w *Wire) *App {
	return &App{
		Config:  cfg,
		Records: w.Records,
		Auth:    w.Auth,
		Log:     w.Log,
	}
}

// Login runs the passphrase gate through p. It returns
// domain.ErrBadCredentials once every attempt has failed.
func (a *App) Login(p domain.Prompter) error {
	ok, err := a.Auth.Login(p)
	if err != nil {
		return err
	}
	if !ok {
		a.Log.Warn("login failed", "attempts", a.Config.Auth.MaxAttempts)
		return errors.Wrap(domain.ErrBadCredentials, "too many failed attempts")
	}
	return nil
}

// Menu returns the interactive menu over the records store, exporting to the
// configured path and format.
func (a *App) Menu(in io.Reader, out io.Writer) *menu.Menu {
	return menu.New(a.Records, in, out, menu.WithExport(a.Config.Export.Path, a.Config.ExportFormat()))
}
