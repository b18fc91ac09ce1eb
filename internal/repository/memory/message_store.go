// Package memory holds in-memory repository implementations. They back the
// test suite and the standalone dev mode; production wiring uses Mongo.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dayyan-shaikh/DevConnect-Project/internal/apperr"
	"github.com/dayyan-shaikh/DevConnect-Project/internal/models"
)

type MessageStore struct {
	mu   sync.RWMutex
	msgs []*models.Message
}

func NewMessageStore() *MessageStore {
	return &MessageStore{}
}

func (s *MessageStore) Insert(_ context.Context, m *models.Message) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	stored := *m
	stored.ID = primitive.NewObjectID()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	stored.IsRead = false
	s.msgs = append(s.msgs, &stored)

	out := stored
	return &out, nil
}

func (s *MessageStore) GetConversation(_ context.Context, userA, userB string, limit int64, before string) ([]*models.Message, error) {
	var cursor primitive.ObjectID
	if before != "" {
		oid, err := primitive.ObjectIDFromHex(before)
		if err != nil {
			return nil, apperr.Validation("before")
		}
		cursor = oid
	}

	s.mu.RLock()
	var window []*models.Message
	for _, m := range s.msgs {
		if !between(m, userA, userB) {
			continue
		}
		if before != "" && m.ID.Hex() >= cursor.Hex() {
			continue
		}
		cp := *m
		window = append(window, &cp)
	}
	s.mu.RUnlock()

	sort.Slice(window, func(i, j int) bool { return descending(window[i], window[j]) })
	if limit > 0 && int64(len(window)) > limit {
		window = window[:limit]
	}
	for i, j := 0, len(window)-1; i < j; i, j = i+1, j-1 {
		window[i], window[j] = window[j], window[i]
	}
	return window, nil
}

func (s *MessageStore) MarkConversationRead(_ context.Context, senderID, receiverID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	for _, m := range s.msgs {
		if m.SenderID == senderID && m.ReceiverID == receiverID && !m.IsRead {
			m.IsRead = true
			m.UpdatedAt = now
		}
	}
	return nil
}

func (s *MessageStore) MarkMessageRead(_ context.Context, messageID string) (*models.Message, error) {
	oid, err := primitive.ObjectIDFromHex(messageID)
	if err != nil {
		return nil, apperr.Validation("message_id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.msgs {
		if m.ID == oid {
			m.IsRead = true
			m.UpdatedAt = time.Now().UTC()
			cp := *m
			return &cp, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (s *MessageStore) ListConversations(_ context.Context, userID string, limit int64) ([]*models.ConversationSummary, error) {
	s.mu.RLock()
	snapshot := make([]*models.Message, 0, len(s.msgs))
	for _, m := range s.msgs {
		cp := *m
		snapshot = append(snapshot, &cp)
	}
	s.mu.RUnlock()

	return models.LatestPerPartner(snapshot, userID, int(limit)), nil
}

func between(m *models.Message, userA, userB string) bool {
	return (m.SenderID == userA && m.ReceiverID == userB) ||
		(m.SenderID == userB && m.ReceiverID == userA)
}

func descending(a, b *models.Message) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID.Hex() > b.ID.Hex()
}
