package board

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
)

// FallbackStore serves canned placeholder boards for reads while the inner
// store is unavailable. Writes still report ErrUnavailable.
type FallbackStore struct {
	Inner Store
	now   func() time.Time
}

func NewFallbackStore(inner Store) *FallbackStore {
	return &FallbackStore{Inner: inner, now: func() time.Time { return time.Now().UTC() }}
}

func (s *FallbackStore) Create(ctx context.Context, b Board) (Board, error) {
	return s.Inner.Create(ctx, b)
}

func (s *FallbackStore) Get(ctx context.Context, id string) (Board, error) {
	b, err := s.Inner.Get(ctx, id)
	if errors.Is(err, ErrUnavailable) {
		s.degraded("get")
		p := s.placeholder("")
		p.ID = id
		return p, nil
	}
	return b, err
}

func (s *FallbackStore) ListByUser(ctx context.Context, userID string) ([]Board, error) {
	boards, err := s.Inner.ListByUser(ctx, userID)
	if errors.Is(err, ErrUnavailable) {
		s.degraded("list")
		return []Board{s.placeholder(userID)}, nil
	}
	return boards, err
}

func (s *FallbackStore) Update(ctx context.Context, id string, u Update) (Board, error) {
	return s.Inner.Update(ctx, id, u)
}

func (s *FallbackStore) Delete(ctx context.Context, id string) error {
	return s.Inner.Delete(ctx, id)
}

func (s *FallbackStore) Share(ctx context.Context, id, userID string) (bool, error) {
	return s.Inner.Share(ctx, id, userID)
}

func (s *FallbackStore) placeholder(userID string) Board {
	now := s.now()
	return Board{
		ID:          "mock-board-1",
		UserID:      userID,
		Title:       "Welcome Board",
		SharedWith:  []string{},
		Placeholder: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (s *FallbackStore) degraded(op string) {
	log.Warn().Str("module", "board.fallback").Str("op", op).Msg("store unavailable, serving placeholder data")
}
