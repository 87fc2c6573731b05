// Package board is the document-store boundary for saved boards. The relay
// never depends on it; it backs the REST surface only.
package board

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

var (
	ErrNotFound    = errors.New("board not found")
	ErrUnavailable = errors.New("board store unavailable")
	ErrInvalid     = errors.New("invalid board")
)

type Board struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Title       string          `json:"title"`
	Data        json.RawMessage `json:"data,omitempty"`
	Notes       json.RawMessage `json:"notes,omitempty"`
	SharedWith  []string        `json:"sharedWith"`
	Placeholder bool            `json:"placeholder,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Update carries the optional fields of a partial update; nil means unchanged.
type Update struct {
	Title *string
	Data  json.RawMessage
	Notes json.RawMessage
}

type Store interface {
	Create(ctx context.Context, b Board) (Board, error)
	Get(ctx context.Context, id string) (Board, error)
	// ListByUser returns boards owned by or shared with userID.
	ListByUser(ctx context.Context, userID string) ([]Board, error)
	Update(ctx context.Context, id string, u Update) (Board, error)
	Delete(ctx context.Context, id string) error
	// Share grants userID access; it reports false when already shared.
	Share(ctx context.Context, id, userID string) (bool, error)
}

// UnavailableStore is used when persistence is disabled; every call fails with ErrUnavailable.
type UnavailableStore struct{}

func (UnavailableStore) Create(context.Context, Board) (Board, error) { return Board{}, ErrUnavailable }
func (UnavailableStore) Get(context.Context, string) (Board, error)   { return Board{}, ErrUnavailable }
func (UnavailableStore) ListByUser(context.Context, string) ([]Board, error) {
	return nil, ErrUnavailable
}
func (UnavailableStore) Update(context.Context, string, Update) (Board, error) {
	return Board{}, ErrUnavailable
}
func (UnavailableStore) Delete(context.Context, string) error { return ErrUnavailable }
func (UnavailableStore) Share(context.Context, string, string) (bool, error) {
	return false, ErrUnavailable
}
