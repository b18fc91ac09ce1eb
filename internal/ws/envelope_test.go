package ws

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeEnvelope_Identify(t *testing.T) {
	req := require.New(t)

	typ, payload, err := DecodeEnvelope([]byte(`{"type":"identify","data":{"user_id":"alice"}}`))
	req.NoError(err)
	req.Equal(TypeIdentify, typ)
	data, ok := payload.(*IdentifyData)
	req.True(ok)
	req.Equal("alice", data.UserID)
}

func TestDecodeEnvelope_SendMessage(t *testing.T) {
	req := require.New(t)

	raw := []byte(`{"type":"sendMessage","data":{"sender_id":"alice","receiver_id":"bob","content":"hi","client_token":"t1"}}`)
	typ, payload, err := DecodeEnvelope(raw)
	req.NoError(err)
	req.Equal(TypeSendMessage, typ)
	data, ok := payload.(*SendMessageData)
	req.True(ok)
	req.Equal("alice", data.SenderID)
	req.Equal("bob", data.ReceiverID)
	req.Equal("hi", data.Content)
	req.Equal("t1", data.ClientToken)
}

func TestDecodeEnvelope_SendMessageWithoutToken(t *testing.T) {
	req := require.New(t)

	raw := []byte(`{"type":"sendMessage","data":{"sender_id":"alice","receiver_id":"bob","content":"hi"}}`)
	_, payload, err := DecodeEnvelope(raw)
	req.NoError(err)
	req.Empty(payload.(*SendMessageData).ClientToken)
}

func TestDecodeEnvelope_IsOnline(t *testing.T) {
	req := require.New(t)

	typ, payload, err := DecodeEnvelope([]byte(`{"type":"isOnline","data":{"user_id":"bob"}}`))
	req.NoError(err)
	req.Equal(TypeIsOnline, typ)
	req.Equal("bob", payload.(*IsOnlineData).UserID)
}

func TestDecodeEnvelope_Rejects(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", `hello`},
		{"missing type", `{"data":{}}`},
		{"unknown type", `{"type":"selfDestruct","data":{}}`},
		{"missing data", `{"type":"identify"}`},
		{"missing required field", `{"type":"sendMessage","data":{"sender_id":"alice","content":"hi"}}`},
		{"empty required field", `{"type":"identify","data":{"user_id":""}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := DecodeEnvelope([]byte(tc.raw))
			require.Error(t, err)
		})
	}
}
