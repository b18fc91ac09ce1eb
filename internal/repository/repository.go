package repository

import (
	"context"

	"github.com/dayyan-shaikh/DevConnect-Project/internal/models"
)

// MessageRepository owns the durable message log.
type MessageRepository interface {
	// Insert persists a new message, assigning its ID and timestamps.
	Insert(ctx context.Context, m *models.Message) (*models.Message, error)
	// GetConversation returns the messages between userA and userB, in
	// either direction, oldest first. A non-empty before cursor (a message
	// ID) restricts the window to strictly older messages.
	GetConversation(ctx context.Context, userA, userB string, limit int64, before string) ([]*models.Message, error)
	// MarkConversationRead flags every unread message from senderID to
	// receiverID as read. Idempotent.
	MarkConversationRead(ctx context.Context, senderID, receiverID string) error
	// MarkMessageRead flags a single message as read and returns the
	// updated record, or apperr.ErrNotFound.
	MarkMessageRead(ctx context.Context, messageID string) (*models.Message, error)
	// ListConversations returns the per-partner latest-message summaries
	// for userID, most recent first. Display fields are not populated.
	ListConversations(ctx context.Context, userID string, limit int64) ([]*models.ConversationSummary, error)
}

// UserRepository owns account records.
type UserRepository interface {
	Insert(ctx context.Context, u *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, u *models.User) (*models.User, error)
	// GetManyByIDs resolves a batch of user IDs in one query. Unknown IDs
	// are simply absent from the result.
	GetManyByIDs(ctx context.Context, ids []string) ([]*models.User, error)
}
