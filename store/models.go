// Package store persists template documents. SQLStore keeps the saved
// copy in Postgres or SQLite; Drafts keeps short-lived autosaves in Redis.
package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"
)

var (
	ErrNotFound    = errors.New("store: not found")
	ErrInvalidKind = errors.New("store: invalid template kind")
)

// Kind classifies a template.
type Kind string

const (
	KindContract Kind = "contract"
	KindProposal Kind = "proposal"
	KindTerm     Kind = "term"
)

func (k Kind) Valid() bool {
	switch k {
	case KindContract, KindProposal, KindTerm:
		return true
	}
	return false
}

type Template struct {
	ID        string
	Kind      Kind
	Title     string
	Body      string
	UpdatedAt time.Time
}

// Saver accepts a document body for a template. It is the collaborator the
// editor host calls with the latest value.
type Saver interface {
	Save(ctx context.Context, id, body string) error
}

// NewID returns a random template identifier.
func NewID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return "tpl_" + hex.EncodeToString(b)
}
