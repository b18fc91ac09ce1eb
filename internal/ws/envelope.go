package ws

import (
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
)

// Inbound event types.
const (
	TypeIdentify    = "identify"
	TypeSendMessage = "sendMessage"
	TypeIsOnline    = "isOnline"
)

// Outbound event types.
const (
	TypeMessage = "message"
	TypeAck     = "ack"
	TypeOnline  = "online"
	TypeError   = "error"
)

var (
	validate            = validator.New()
	errUnknownEventType = errors.New("unknown event type")
)

// Envelope is the single tagged frame format of the realtime channel.
// Anything that does not parse into one of the known shapes is rejected
// before it reaches the delivery path.
type Envelope struct {
	Type string          `json:"type" validate:"required"`
	Data json.RawMessage `json:"data"`
}

type IdentifyData struct {
	UserID string `json:"user_id" validate:"required"`
}

type SendMessageData struct {
	SenderID    string `json:"sender_id" validate:"required"`
	ReceiverID  string `json:"receiver_id" validate:"required"`
	Content     string `json:"content" validate:"required"`
	ClientToken string `json:"client_token"`
}

type IsOnlineData struct {
	UserID string `json:"user_id" validate:"required"`
}

type OnlineStatus struct {
	UserID string `json:"user_id"`
	Online bool   `json:"online"`
}

// Event is a server-to-client frame.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

func ErrorEvent(msg string) Event {
	return Event{Type: TypeError, Data: map[string]string{"message": msg}}
}

// DecodeEnvelope parses and validates one inbound frame. The returned value
// is one of *IdentifyData, *SendMessageData, *IsOnlineData.
func DecodeEnvelope(raw []byte) (string, any, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", nil, err
	}
	if err := validate.Struct(env); err != nil {
		return "", nil, err
	}

	var payload any
	switch env.Type {
	case TypeIdentify:
		payload = &IdentifyData{}
	case TypeSendMessage:
		payload = &SendMessageData{}
	case TypeIsOnline:
		payload = &IsOnlineData{}
	default:
		return env.Type, nil, errUnknownEventType
	}

	if err := json.Unmarshal(env.Data, payload); err != nil {
		return env.Type, nil, err
	}
	if err := validate.Struct(payload); err != nil {
		return env.Type, nil, err
	}
	return env.Type, payload, nil
}
