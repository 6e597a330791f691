package member

import (
	"context"
	"strings"
	"sync"

	"backoffice/internal/domain"
	id "backoffice/pkg/domain"
	"backoffice/pkg/platform/sentinel"
)

// InMemory is the development and test store. It snapshots members on write
// so callers cannot mutate stored state through a retained pointer.
type InMemory struct {
	mu      sync.RWMutex
	byID    map[id.MemberID]*domain.Member
	byEmail map[string]id.MemberID
}

func NewInMemory() *InMemory {
	return &InMemory{
		byID:    make(map[id.MemberID]*domain.Member),
		byEmail: make(map[string]id.MemberID),
	}
}

func snapshot(m *domain.Member) *domain.Member {
	return domain.RehydrateMember(m.ID(), m.Email(), m.Name(), m.Phone(), m.Status(), m.CreatedAt())
}

func emailKey(email domain.Email) string {
	return strings.ToLower(email.String())
}

func (s *InMemory) CreateIfEmailAvailable(_ context.Context, member *domain.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := emailKey(member.Email())
	if _, exists := s.byEmail[key]; exists {
		return sentinel.ErrConflict
	}
	s.byID[member.ID()] = snapshot(member)
	s.byEmail[key] = member.ID()
	return nil
}

func (s *InMemory) FindByID(_ context.Context, memberID id.MemberID) (*domain.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	member, ok := s.byID[memberID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return snapshot(member), nil
}

func (s *InMemory) FindByEmail(_ context.Context, email domain.Email) (*domain.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	memberID, ok := s.byEmail[emailKey(email)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return snapshot(s.byID[memberID]), nil
}

func (s *InMemory) Update(_ context.Context, member *domain.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[member.ID()]; !ok {
		return sentinel.ErrNotFound
	}
	s.byID[member.ID()] = snapshot(member)
	return nil
}
