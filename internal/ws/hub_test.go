package ws

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dayyan-shaikh/DevConnect-Project/internal/presence"
	"github.com/dayyan-shaikh/DevConnect-Project/internal/repository/memory"
	"github.com/dayyan-shaikh/DevConnect-Project/internal/service"
)

type fakeSession struct {
	id string

	mu  sync.Mutex
	got []any
}

func (f *fakeSession) ID() string { return f.id }

func (f *fakeSession) Send(v any) error {
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

func newTestHub() (*Hub, *presence.Registry) {
	registry := presence.NewRegistry()
	svc := service.NewMessageService(memory.NewMessageStore(), registry, nil)
	return NewHub(registry, svc, nil), registry
}

func TestDispatch_IdentifyBindsUser(t *testing.T) {
	req := require.New(t)
	hub, registry := newTestHub()
	sess := &fakeSession{id: "c1"}

	hub.dispatch(sess, "", []byte(`{"type":"identify","data":{"user_id":"alice"}}`))

	req.True(registry.IsOnline("alice"))
	got, ok := registry.Lookup("alice")
	req.True(ok)
	req.Equal(sess, got)
}

func TestDispatch_IdentifyMismatchRejected(t *testing.T) {
	req := require.New(t)
	hub, registry := newTestHub()
	sess := &fakeSession{id: "c1"}

	// the upgrade authenticated bob; identifying as alice must fail
	hub.dispatch(sess, "bob", []byte(`{"type":"identify","data":{"user_id":"alice"}}`))

	req.False(registry.IsOnline("alice"))
	got := sess.received()
	req.Len(got, 1)
	req.Equal(TypeError, got[0].(Event).Type)
}

func TestDispatch_SendMessageAcksSenderAndPushesReceiver(t *testing.T) {
	req := require.New(t)
	hub, registry := newTestHub()

	sender := &fakeSession{id: "c-alice"}
	receiver := &fakeSession{id: "c-bob"}
	registry.Identify("bob", receiver)

	hub.dispatch(sender, "", []byte(`{"type":"sendMessage","data":{"sender_id":"alice","receiver_id":"bob","content":"hello","client_token":"t1"}}`))

	acks := sender.received()
	req.Len(acks, 1)
	ack := acks[0].(Event)
	req.Equal(TypeAck, ack.Type)

	pushes := receiver.received()
	req.Len(pushes, 1)
	push := pushes[0].(service.MessageEvent)
	req.Equal(TypeMessage, push.Type)
	req.Equal("hello", push.Data.Content)
	req.Empty(push.Data.ClientToken)
}

func TestDispatch_InvalidFrameGetsErrorEvent(t *testing.T) {
	req := require.New(t)
	hub, _ := newTestHub()
	sess := &fakeSession{id: "c1"}

	hub.dispatch(sess, "", []byte(`{"type":"launchMissiles","data":{}}`))

	got := sess.received()
	req.Len(got, 1)
	req.Equal(TypeError, got[0].(Event).Type)
}

func TestDispatch_IsOnline(t *testing.T) {
	req := require.New(t)
	hub, registry := newTestHub()
	registry.Identify("bob", &fakeSession{id: "c-bob"})

	asker := &fakeSession{id: "c1"}
	hub.dispatch(asker, "", []byte(`{"type":"isOnline","data":{"user_id":"bob"}}`))

	got := asker.received()
	req.Len(got, 1)
	evt := got[0].(Event)
	req.Equal(TypeOnline, evt.Type)
	req.Equal(OnlineStatus{UserID: "bob", Online: true}, evt.Data)
}
