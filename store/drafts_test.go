package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func setupDrafts(t *testing.T) (*Drafts, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	d, err := NewDrafts(context.Background(), "redis://"+mr.Addr(), time.Hour)
	if err != nil {
		t.Fatalf("NewDrafts: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d, mr
}

func TestDrafts_SaveLoad(t *testing.T) {
	d, _ := setupDrafts(t)
	ctx := context.Background()
	if err := d.Save(ctx, "t1", "<p>draft</p>"); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := d.Load(ctx, "t1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Body != "<p>draft</p>" {
		t.Fatalf("body=%q", got.Body)
	}
	if got.SavedAt.IsZero() {
		t.Fatalf("expected saved_at")
	}
}

func TestDrafts_Expire(t *testing.T) {
	d, mr := setupDrafts(t)
	ctx := context.Background()
	if err := d.Save(ctx, "t1", "<p>x</p>"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if ttl := mr.TTL("inkwell:draft:t1"); ttl != time.Hour {
		t.Fatalf("ttl=%v, want 1h", ttl)
	}
	mr.FastForward(2 * time.Hour)
	if _, err := d.Load(ctx, "t1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}

func TestDrafts_Discard(t *testing.T) {
	d, _ := setupDrafts(t)
	ctx := context.Background()
	_ = d.Save(ctx, "t1", "<p>x</p>")
	if err := d.Discard(ctx, "t1"); err != nil {
		t.Fatalf("discard: %v", err)
	}
	if _, err := d.Load(ctx, "t1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}

func TestDrafts_Ping(t *testing.T) {
	d, mr := setupDrafts(t)
	if err := d.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
	mr.Close()
	if err := d.Ping(context.Background()); err == nil {
		t.Fatalf("expected ping to fail after shutdown")
	}
}

func TestNewDrafts_BadURL(t *testing.T) {
	if _, err := NewDrafts(context.Background(), "://bad", 0); err == nil {
		t.Fatalf("expected parse error")
	}
}
