package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dayyan-shaikh/DevConnect-Project/internal/apperr"
	"github.com/dayyan-shaikh/DevConnect-Project/internal/models"
	"github.com/dayyan-shaikh/DevConnect-Project/internal/repository/memory"
)

func newUser(t *testing.T, store *memory.UserStore, name, email, avatar string) *models.User {
	t.Helper()
	u, err := store.Insert(context.Background(), &models.User{
		Name:      name,
		Email:     email,
		AvatarURL: avatar,
	})
	require.NoError(t, err)
	return u
}

func TestListConversations_EnrichedAndOrdered(t *testing.T) {
	req := require.New(t)
	msgs := memory.NewMessageStore()
	userStore := memory.NewUserStore()
	svc := NewConversationService(msgs, userStore)
	ctx := context.Background()

	alice := newUser(t, userStore, "Alice", "alice@example.com", "https://cdn.local/alice.png")
	bob := newUser(t, userStore, "Bob", "bob@example.com", "https://cdn.local/bob.png")
	carol := newUser(t, userStore, "Carol", "carol@example.com", "")

	_, err := msgs.Insert(ctx, &models.Message{SenderID: alice.ID.Hex(), ReceiverID: bob.ID.Hex(), Content: "hi bob"})
	req.NoError(err)
	_, err = msgs.Insert(ctx, &models.Message{SenderID: carol.ID.Hex(), ReceiverID: alice.ID.Hex(), Content: "hi alice"})
	req.NoError(err)

	convs, err := svc.List(ctx, alice.ID.Hex(), 0)
	req.NoError(err)
	req.Len(convs, 2)

	// most recent partner first, display data attached
	req.Equal(carol.ID.Hex(), convs[0].PartnerID)
	req.Equal("Carol", convs[0].PartnerName)
	req.Equal(bob.ID.Hex(), convs[1].PartnerID)
	req.Equal("Bob", convs[1].PartnerName)
	req.Equal("https://cdn.local/bob.png", convs[1].PartnerAvatar)
	req.Equal("hi bob", convs[1].LastMessage.Content)
}

func TestListConversations_UnresolvablePartnerKeptWithPlaceholder(t *testing.T) {
	req := require.New(t)
	msgs := memory.NewMessageStore()
	userStore := memory.NewUserStore()
	svc := NewConversationService(msgs, userStore)
	ctx := context.Background()

	alice := newUser(t, userStore, "Alice", "alice@example.com", "")

	// partner has no account record anymore
	_, err := msgs.Insert(ctx, &models.Message{SenderID: "ffffffffffffffffffffffff", ReceiverID: alice.ID.Hex(), Content: "ghost"})
	req.NoError(err)

	convs, err := svc.List(ctx, alice.ID.Hex(), 0)
	req.NoError(err)
	req.Len(convs, 1)
	req.Equal("Unknown User", convs[0].PartnerName)
	req.Empty(convs[0].PartnerAvatar)
}

func TestListConversations_UnknownRequesterIsNotFound(t *testing.T) {
	req := require.New(t)
	svc := NewConversationService(memory.NewMessageStore(), memory.NewUserStore())

	_, err := svc.List(context.Background(), "ffffffffffffffffffffffff", 0)
	req.ErrorIs(err, apperr.ErrNotFound)
}

func TestListConversations_EmptyForValidUser(t *testing.T) {
	req := require.New(t)
	userStore := memory.NewUserStore()
	svc := NewConversationService(memory.NewMessageStore(), userStore)

	alice := newUser(t, userStore, "Alice", "alice@example.com", "")

	convs, err := svc.List(context.Background(), alice.ID.Hex(), 0)
	req.NoError(err)
	req.Empty(convs)
}
