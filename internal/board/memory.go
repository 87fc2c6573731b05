package board

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const defaultTitle = "Untitled"

// MemoryStore keeps boards in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	boards map[string]Board
	now    func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		boards: make(map[string]Board),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemoryStore) Create(_ context.Context, b Board) (Board, error) {
	if strings.TrimSpace(b.UserID) == "" {
		return Board{}, fmt.Errorf("%w: missing userId", ErrInvalid)
	}
	if strings.TrimSpace(b.Title) == "" {
		b.Title = defaultTitle
	}
	b.ID = uuid.NewString()
	b.Placeholder = false
	b.CreatedAt = s.now()
	b.UpdatedAt = b.CreatedAt
	if b.SharedWith == nil {
		b.SharedWith = []string{}
	}

	s.mu.Lock()
	s.boards[b.ID] = b
	s.mu.Unlock()
	log.Info().Str("module", "board.memory").Str("board", b.ID).Str("user", b.UserID).Msg("board created")
	return clone(b), nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.boards[id]
	if !ok {
		return Board{}, fmt.Errorf("get %q: %w", id, ErrNotFound)
	}
	return clone(b), nil
}

func (s *MemoryStore) ListByUser(_ context.Context, userID string) ([]Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Board, 0)
	for _, b := range s.boards {
		if b.UserID == userID || slices.Contains(b.SharedWith, userID) {
			out = append(out, clone(b))
		}
	}
	slices.SortFunc(out, func(a, b Board) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out, nil
}

func (s *MemoryStore) Update(_ context.Context, id string, u Update) (Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.boards[id]
	if !ok {
		return Board{}, fmt.Errorf("update %q: %w", id, ErrNotFound)
	}
	if u.Title != nil {
		b.Title = *u.Title
	}
	if u.Data != nil {
		b.Data = slices.Clone(u.Data)
	}
	if u.Notes != nil {
		b.Notes = slices.Clone(u.Notes)
	}
	b.UpdatedAt = s.now()
	s.boards[id] = b
	return clone(b), nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.boards[id]; !ok {
		return fmt.Errorf("delete %q: %w", id, ErrNotFound)
	}
	delete(s.boards, id)
	log.Info().Str("module", "board.memory").Str("board", id).Msg("board deleted")
	return nil
}

func (s *MemoryStore) Share(_ context.Context, id, userID string) (bool, error) {
	if strings.TrimSpace(userID) == "" {
		return false, fmt.Errorf("%w: missing user to share with", ErrInvalid)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.boards[id]
	if !ok {
		return false, fmt.Errorf("share %q: %w", id, ErrNotFound)
	}
	if b.UserID == userID || slices.Contains(b.SharedWith, userID) {
		return false, nil
	}
	b.SharedWith = append(slices.Clone(b.SharedWith), userID)
	b.UpdatedAt = s.now()
	s.boards[id] = b
	return true, nil
}

func clone(b Board) Board {
	b.Data = slices.Clone(b.Data)
	b.Notes = slices.Clone(b.Notes)
	b.SharedWith = slices.Clone(b.SharedWith)
	return b
}
