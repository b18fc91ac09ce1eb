package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dayyan-shaikh/DevConnect-Project/internal/apperr"
	"github.com/dayyan-shaikh/DevConnect-Project/internal/presence"
	"github.com/dayyan-shaikh/DevConnect-Project/internal/repository/memory"
)

type fakeSession struct {
	id   string
	fail bool

	mu  sync.Mutex
	got []any
}

func (f *fakeSession) ID() string { return f.id }

func (f *fakeSession) Send(v any) error {
	if f.fail {
		return errors.New("connection gone")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.got = append(f.got, v)
	return nil
}

func (f *fakeSession) received() []any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]any(nil), f.got...)
}

func newService() (*MessageService, *presence.Registry) {
	registry := presence.NewRegistry()
	return NewMessageService(memory.NewMessageStore(), registry, nil), registry
}

func TestSend_ValidationListsMissingFields(t *testing.T) {
	req := require.New(t)
	svc, _ := newService()

	_, err := svc.Send(context.Background(), "", "bob", "", "")
	req.Error(err)
	var ve *apperr.ValidationError
	req.ErrorAs(err, &ve)
	req.Equal([]string{"sender_id", "content"}, ve.Fields)
}

func TestSend_AckEchoesClientToken(t *testing.T) {
	req := require.New(t)
	svc, _ := newService()

	ack, err := svc.Send(context.Background(), "alice", "bob", "hello", "t1")
	req.NoError(err)
	req.Equal("t1", ack.ClientToken)
	req.Equal("hello", ack.Content)
	req.False(ack.ID.IsZero())
	req.False(ack.DeliveredAt.IsZero())
}

func TestSend_PushesToOnlineReceiverWithoutToken(t *testing.T) {
	req := require.New(t)
	svc, registry := newService()

	bob := &fakeSession{id: "conn-bob"}
	registry.Identify("bob", bob)

	ack, err := svc.Send(context.Background(), "alice", "bob", "hello", "t1")
	req.NoError(err)
	req.Equal("t1", ack.ClientToken)

	got := bob.received()
	req.Len(got, 1)
	evt, ok := got[0].(MessageEvent)
	req.True(ok)
	req.Equal("message", evt.Type)
	req.Equal("hello", evt.Data.Content)
	req.Equal("alice", evt.Data.SenderID)
	req.Equal(ack.ID, evt.Data.ID)
	req.Empty(evt.Data.ClientToken, "correlation token must never reach the receiver")
}

func TestSend_OfflineReceiverStillPersists(t *testing.T) {
	req := require.New(t)
	svc, _ := newService()
	ctx := context.Background()

	ack, err := svc.Send(ctx, "alice", "bob", "hello", "")
	req.NoError(err)

	msgs, err := svc.GetConversation(ctx, "bob", "alice", 0, "")
	req.NoError(err)
	req.Len(msgs, 1)
	req.Equal(ack.ID, msgs[0].ID)
}

func TestSend_SelfMessageNotPushed(t *testing.T) {
	req := require.New(t)
	svc, registry := newService()

	alice := &fakeSession{id: "conn-alice"}
	registry.Identify("alice", alice)

	_, err := svc.Send(context.Background(), "alice", "alice", "note", "")
	req.NoError(err)
	req.Empty(alice.received(), "a self-message must not come back as an incoming push")

	msgs, err := svc.GetConversation(context.Background(), "alice", "alice", 0, "")
	req.NoError(err)
	req.Len(msgs, 1)
}

func TestSend_StalePushSwallowed(t *testing.T) {
	req := require.New(t)
	svc, registry := newService()

	registry.Identify("bob", &fakeSession{id: "conn-bob", fail: true})

	// the sender still gets a successful ack: persistence succeeded
	ack, err := svc.Send(context.Background(), "alice", "bob", "hello", "")
	req.NoError(err)
	req.NotNil(ack)
}

func TestMarkConversationRead_Validation(t *testing.T) {
	req := require.New(t)
	svc, _ := newService()

	err := svc.MarkConversationRead(context.Background(), "", "")
	var ve *apperr.ValidationError
	req.ErrorAs(err, &ve)
	req.Equal([]string{"sender_id", "receiver_id"}, ve.Fields)
}

func TestIsOnline(t *testing.T) {
	req := require.New(t)
	svc, registry := newService()

	req.False(svc.IsOnline("bob"))
	registry.Identify("bob", &fakeSession{id: "conn-bob"})
	req.True(svc.IsOnline("bob"))
}
