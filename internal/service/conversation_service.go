package service

import (
	"context"

	"github.com/dayyan-shaikh/DevConnect-Project/internal/apperr"
	"github.com/dayyan-shaikh/DevConnect-Project/internal/models"
	"github.com/dayyan-shaikh/DevConnect-Project/internal/repository"
)

// placeholder shown when a conversation partner's profile no longer
// resolves; the conversation itself is never dropped.
const unknownUserName = "Unknown User"

// ConversationService builds a user's conversation list: one entry per
// partner with the most recent message, decorated with the partner's
// display name and avatar.
type ConversationService struct {
	msgs  repository.MessageRepository
	users repository.UserRepository
}

func NewConversationService(msgs repository.MessageRepository, users repository.UserRepository) *ConversationService {
	return &ConversationService{msgs: msgs, users: users}
}

func (s *ConversationService) List(ctx context.Context, userID string, limit int64) ([]*models.ConversationSummary, error) {
	if userID == "" {
		return nil, apperr.Validation("user_id")
	}
	limit = clampLimit(limit)

	// the requesting user must resolve; an empty list for a known user is
	// a normal result
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	sums, err := s.msgs.ListConversations(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if len(sums) == 0 {
		return []*models.ConversationSummary{}, nil
	}

	ids := make([]string, 0, len(sums))
	for _, c := range sums {
		ids = append(ids, c.PartnerID)
	}
	partners, err := s.users.GetManyByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	display := make(map[string]models.UserDisplay, len(partners))
	for _, u := range partners {
		display[u.ID.Hex()] = models.UserDisplay{Name: u.Name, AvatarURL: u.AvatarURL}
	}

	for _, c := range sums {
		if d, ok := display[c.PartnerID]; ok {
			c.PartnerName = d.Name
			c.PartnerAvatar = d.AvatarURL
		} else {
			c.PartnerName = unknownUserName
		}
	}
	return sums, nil
}
