// Package cli provides the command-line interface for inkwell.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/iw2rmb/inkwell/internal/config"
	"github.com/iw2rmb/inkwell/internal/logging"
	"github.com/iw2rmb/inkwell/store"
)

type CommandLineOpts struct {
	Config  string `short:"c" long:"config" description:"Path to config.yaml" value-name:"<file>"`
	Verbose bool   `short:"v" long:"verbose" description:"Log at debug level"`

	EditCommand    EditCommand    `command:"edit" description:"Edit a template in the terminal"`
	NewCommand     NewCommand     `command:"new" description:"Create a template"`
	ListCommand    ListCommand    `command:"list" description:"List templates"`
	ExportCommand  ExportCommand  `command:"export" description:"Export a template as HTML or PDF"`
	DeleteCommand  DeleteCommand  `command:"delete" description:"Delete a template"`
	VersionCommand VersionCommand `command:"version" description:"Show the program version"`
}

var Opts CommandLineOpts

// stdout is swapped in tests.
var stdout io.Writer = os.Stdout

// env is what every command needs once flags are parsed.
type env struct {
	cfg    config.Config
	log    zerolog.Logger
	closer io.Closer
	store  *store.SQLStore
}

func setup(ctx context.Context) (*env, error) {
	cfg, err := config.Load(Opts.Config)
	if err != nil {
		return nil, err
	}
	level := cfg.Logging.Level
	if Opts.Verbose {
		level = "debug"
	}
	logger, closer := logging.Setup(logging.Options{Level: level, File: cfg.Logging.File, Pretty: cfg.Logging.Pretty})

	driver := cfg.DriverName()
	if driver == store.DriverSQLite {
		ensureSQLiteDir(cfg.Database.DSN)
	}
	db, err := store.Open(ctx, driver, cfg.Database.DSN)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	s := store.NewSQLStore(db, driver, logger.With().Str("component", "store").Logger())
	if err := s.Migrate(ctx); err != nil {
		_ = s.Close()
		_ = closer.Close()
		return nil, err
	}
	logger.Debug().Str("driver", driver).Msg("store ready")
	return &env{cfg: cfg, log: logger, closer: closer, store: s}, nil
}

func (e *env) Close() {
	_ = e.store.Close()
	_ = e.closer.Close()
}

// drafts connects to Redis when configured. Drafts are optional: any
// failure is logged and editing proceeds without autosave.
func (e *env) drafts(ctx context.Context) *store.Drafts {
	if e.cfg.Redis.URL == "" {
		return nil
	}
	d, err := store.NewDrafts(ctx, e.cfg.Redis.URL, e.cfg.DraftTTL())
	if err != nil {
		e.log.Warn().Err(err).Msg("drafts unavailable")
		return nil
	}
	return d
}

func ensureSQLiteDir(dsn string) {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || strings.HasPrefix(path, ":memory:") {
		return
	}
	_ = os.MkdirAll(filepath.Dir(filepath.FromSlash(path)), 0o755)
}

func parseKind(s string) (store.Kind, error) {
	k := store.Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", store.ErrInvalidKind, s)
	}
	return k, nil
}
