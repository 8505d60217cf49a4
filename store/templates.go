package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// SQLStore keeps templates in a database/sql handle.
type SQLStore struct {
	db     *sql.DB
	driver string
	log    zerolog.Logger
	now    func() time.Time
}

var _ Saver = (*SQLStore)(nil)

func NewSQLStore(db *sql.DB, driver string, log zerolog.Logger) *SQLStore {
	return &SQLStore{db: db, driver: driver, log: log, now: time.Now}
}

func (s *SQLStore) DB() *sql.DB { return s.db }

func (s *SQLStore) Close() error { return s.db.Close() }

func (s *SQLStore) q(query string) string { return rebind(s.driver, query) }

// Create inserts t. An empty ID is replaced by a fresh one.
func (s *SQLStore) Create(ctx context.Context, t Template) (Template, error) {
	if !t.Kind.Valid() {
		return Template{}, fmt.Errorf("create template: %w: %q", ErrInvalidKind, t.Kind)
	}
	if t.ID == "" {
		t.ID = NewID()
	}
	t.UpdatedAt = s.now().UTC().Truncate(time.Millisecond)
	_, err := s.db.ExecContext(ctx,
		s.q(`INSERT INTO templates (id, kind, title, body, updated_at) VALUES (?, ?, ?, ?, ?)`),
		t.ID, string(t.Kind), t.Title, t.Body, t.UpdatedAt.UnixMilli())
	if err != nil {
		return Template{}, fmt.Errorf("insert template: %w", err)
	}
	s.log.Debug().Str("id", t.ID).Str("kind", string(t.Kind)).Msg("template created")
	return t, nil
}

func (s *SQLStore) Get(ctx context.Context, id string) (Template, error) {
	row := s.db.QueryRowContext(ctx,
		s.q(`SELECT id, kind, title, body, updated_at FROM templates WHERE id = ?`), id)
	t, err := scanTemplate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Template{}, ErrNotFound
	}
	if err != nil {
		return Template{}, fmt.Errorf("get template %s: %w", id, err)
	}
	return t, nil
}

// List returns templates newest first. An empty kind lists every kind.
func (s *SQLStore) List(ctx context.Context, kind Kind) ([]Template, error) {
	query := `SELECT id, kind, title, body, updated_at FROM templates`
	var args []any
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, string(kind))
	}
	query += ` ORDER BY updated_at DESC, id`

	rows, err := s.db.QueryContext(ctx, s.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var out []Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return out, nil
}

// Save replaces the body of an existing template.
func (s *SQLStore) Save(ctx context.Context, id, body string) error {
	now := s.now().UTC()
	res, err := s.db.ExecContext(ctx,
		s.q(`UPDATE templates SET body = ?, updated_at = ? WHERE id = ?`),
		body, now.UnixMilli(), id)
	if err != nil {
		return fmt.Errorf("save template %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save template %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	s.log.Debug().Str("id", id).Int("bytes", len(body)).Msg("template saved")
	return nil
}

func (s *SQLStore) Rename(ctx context.Context, id, title string) error {
	res, err := s.db.ExecContext(ctx, s.q(`UPDATE templates SET title = ? WHERE id = ?`), title, id)
	if err != nil {
		return fmt.Errorf("rename template %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM templates WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete template %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTemplate(r rowScanner) (Template, error) {
	var (
		t     Template
		kind  string
		stamp int64
	)
	if err := r.Scan(&t.ID, &kind, &t.Title, &t.Body, &stamp); err != nil {
		return Template{}, err
	}
	t.Kind = Kind(kind)
	t.UpdatedAt = time.UnixMilli(stamp).UTC()
	return t, nil
}
