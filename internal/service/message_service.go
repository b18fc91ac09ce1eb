package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dayyan-shaikh/DevConnect-Project/internal/apperr"
	"github.com/dayyan-shaikh/DevConnect-Project/internal/metrics"
	"github.com/dayyan-shaikh/DevConnect-Project/internal/models"
	"github.com/dayyan-shaikh/DevConnect-Project/internal/presence"
	"github.com/dayyan-shaikh/DevConnect-Project/internal/repository"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

func clampLimit(limit int64) int64 {
	if limit <= 0 {
		return defaultPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}

// MessageEvent is the frame pushed to a receiver over the realtime
// channel. Receivers dedupe by the message ID inside; the frame never
// carries the sender's correlation token.
type MessageEvent struct {
	Type string                 `json:"type"`
	Data models.DeliveryPayload `json:"data"`
}

const pushEventType = "message"

// Publisher emits message-created events. Satisfied by kafka.Producer.
type Publisher interface {
	PublishMessage(ctx context.Context, key string, v interface{}) error
}

// MessageService coordinates message delivery: persist first, then push to
// the receiver if a live connection exists, and always acknowledge the
// sender. A message is Persisted or it is nothing; Pushed is best effort.
type MessageService struct {
	repo     repository.MessageRepository
	registry *presence.Registry
	producer Publisher // optional
}

func NewMessageService(repo repository.MessageRepository, registry *presence.Registry, producer Publisher) *MessageService {
	return &MessageService{repo: repo, registry: registry, producer: producer}
}

// Send validates and persists the message, pushes it to the receiver when
// they are online, and returns the acknowledgment payload for the sender.
// The returned payload echoes clientToken; the pushed copy never does.
// Push failures are swallowed: the sender only learns that persistence
// succeeded.
func (s *MessageService) Send(ctx context.Context, senderID, receiverID, content, clientToken string) (*models.DeliveryPayload, error) {
	var missing []string
	if senderID == "" {
		missing = append(missing, "sender_id")
	}
	if receiverID == "" {
		missing = append(missing, "receiver_id")
	}
	if content == "" {
		missing = append(missing, "content")
	}
	if len(missing) > 0 {
		return nil, apperr.Validation(missing...)
	}

	stored, err := s.repo.Insert(ctx, &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	})
	if err != nil {
		return nil, err
	}
	metrics.MessagesSent.Inc()

	payload := &models.DeliveryPayload{
		Message:     *stored,
		ClientToken: clientToken,
		DeliveredAt: time.Now().UTC(),
	}

	if s.producer != nil {
		if err := s.producer.PublishMessage(ctx, senderID, stored); err != nil {
			log.Error().Err(err).Str("message", stored.ID.Hex()).Msg("kafka publish")
		}
	}

	// Self-messages are acked, never pushed back as an incoming event.
	if receiverID != senderID {
		if sess, ok := s.registry.Lookup(receiverID); ok {
			evt := MessageEvent{Type: pushEventType, Data: payload.ForReceiver()}
			if err := sess.Send(evt); err != nil {
				metrics.PushDropped.Inc()
				log.Warn().Err(err).Str("receiver", receiverID).Msg("push dropped")
			} else {
				metrics.MessagesPushed.Inc()
			}
		}
	}

	return payload, nil
}

// GetConversation returns the thread between two users, oldest first.
func (s *MessageService) GetConversation(ctx context.Context, userA, userB string, limit int64, before string) ([]*models.Message, error) {
	var missing []string
	if userA == "" {
		missing = append(missing, "user_a")
	}
	if userB == "" {
		missing = append(missing, "user_b")
	}
	if len(missing) > 0 {
		return nil, apperr.Validation(missing...)
	}
	return s.repo.GetConversation(ctx, userA, userB, clampLimit(limit), before)
}

// MarkConversationRead flags everything unread from senderID to receiverID.
func (s *MessageService) MarkConversationRead(ctx context.Context, senderID, receiverID string) error {
	var missing []string
	if senderID == "" {
		missing = append(missing, "sender_id")
	}
	if receiverID == "" {
		missing = append(missing, "receiver_id")
	}
	if len(missing) > 0 {
		return apperr.Validation(missing...)
	}
	return s.repo.MarkConversationRead(ctx, senderID, receiverID)
}

func (s *MessageService) MarkMessageRead(ctx context.Context, messageID string) (*models.Message, error) {
	if messageID == "" {
		return nil, apperr.Validation("message_id")
	}
	return s.repo.MarkMessageRead(ctx, messageID)
}

func (s *MessageService) IsOnline(userID string) bool {
	return s.registry.IsOnline(userID)
}
