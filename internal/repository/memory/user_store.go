package memory

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dayyan-shaikh/DevConnect-Project/internal/apperr"
	"github.com/dayyan-shaikh/DevConnect-Project/internal/models"
)

type UserStore struct {
	mu      sync.RWMutex
	byID    map[string]*models.User
	byEmail map[string]*models.User
}

func NewUserStore() *UserStore {
	return &UserStore{
		byID:    make(map[string]*models.User),
		byEmail: make(map[string]*models.User),
	}
}

func (s *UserStore) Insert(_ context.Context, u *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[u.Email]; exists {
		return nil, apperr.ErrConflict
	}
	now := time.Now().UTC()
	stored := *u
	stored.ID = primitive.NewObjectID()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.byID[stored.ID.Hex()] = &stored
	s.byEmail[stored.Email] = &stored

	out := stored
	return &out, nil
}

func (s *UserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byEmail[email]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *UserStore) Update(_ context.Context, u *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.byID[u.ID.Hex()]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cur.Name = u.Name
	cur.Bio = u.Bio
	cur.Skills = u.Skills
	cur.AvatarURL = u.AvatarURL
	cur.UpdatedAt = time.Now().UTC()
	cp := *cur
	return &cp, nil
}

func (s *UserStore) GetManyByIDs(_ context.Context, ids []string) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.User
	for _, id := range ids {
		if u, ok := s.byID[id]; ok {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}
