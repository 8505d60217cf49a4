package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultDraftTTL = 7 * 24 * time.Hour

// Draft is an unsaved editor value kept between sessions.
type Draft struct {
	Body    string    `json:"body"`
	SavedAt time.Time `json:"saved_at"`
}

// Drafts stores autosaved bodies in Redis with an expiry.
type Drafts struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

var _ Saver = (*Drafts)(nil)

// NewDrafts connects to redisURL and checks the connection.
func NewDrafts(ctx context.Context, redisURL string, ttl time.Duration) (*Drafts, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return NewDraftsWithClient(client, ttl), nil
}

func NewDraftsWithClient(client *redis.Client, ttl time.Duration) *Drafts {
	if ttl <= 0 {
		ttl = DefaultDraftTTL
	}
	return &Drafts{client: client, prefix: "inkwell:draft:", ttl: ttl, now: time.Now}
}

func (d *Drafts) key(id string) string { return d.prefix + id }

// Save stores body as the draft for id, refreshing its expiry.
func (d *Drafts) Save(ctx context.Context, id, body string) error {
	data, err := json.Marshal(Draft{Body: body, SavedAt: d.now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	if err := d.client.Set(ctx, d.key(id), data, d.ttl).Err(); err != nil {
		return fmt.Errorf("save draft %s: %w", id, err)
	}
	return nil
}

// Load returns the draft for id, or ErrNotFound when none is live.
func (d *Drafts) Load(ctx context.Context, id string) (Draft, error) {
	raw, err := d.client.Get(ctx, d.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Draft{}, ErrNotFound
	}
	if err != nil {
		return Draft{}, fmt.Errorf("load draft %s: %w", id, err)
	}
	var dr Draft
	if err := json.Unmarshal(raw, &dr); err != nil {
		return Draft{}, fmt.Errorf("unmarshal draft %s: %w", id, err)
	}
	return dr, nil
}

func (d *Drafts) Discard(ctx context.Context, id string) error {
	if err := d.client.Del(ctx, d.key(id)).Err(); err != nil {
		return fmt.Errorf("discard draft %s: %w", id, err)
	}
	return nil
}

func (d *Drafts) Ping(ctx context.Context) error { return d.client.Ping(ctx).Err() }

func (d *Drafts) Close() error { return d.client.Close() }
