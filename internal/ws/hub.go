package ws

import (
	"context"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog/log"

	"github.com/dayyan-shaikh/DevConnect-Project/internal/cache"
	"github.com/dayyan-shaikh/DevConnect-Project/internal/metrics"
	"github.com/dayyan-shaikh/DevConnect-Project/internal/presence"
	"github.com/dayyan-shaikh/DevConnect-Project/internal/service"
)

// Hub owns websocket connection lifecycles and dispatches inbound envelope
// events to the messaging service and the presence registry.
type Hub struct {
	registry *presence.Registry
	svc      *service.MessageService
	cache    *cache.Client // optional presence mirror
}

func NewHub(registry *presence.Registry, svc *service.MessageService, cache *cache.Client) *Hub {
	return &Hub{registry: registry, svc: svc, cache: cache}
}

// HandleWebsocket runs the read loop for one upgraded connection. It is the
// websocket.New handler; it returns when the connection dies.
func (h *Hub) HandleWebsocket(conn *websocket.Conn) {
	client := NewClient(conn)
	metrics.Connections.Inc()
	log.Info().Str("conn", client.ID()).Msg("ws connected")

	// identity verified during the HTTP upgrade, if the route was guarded
	authedUser, _ := conn.Locals("user_id").(string)

	go client.writePump()
	defer func() {
		if userID := h.registry.Disconnect(client); userID != "" {
			h.mirrorPresence(userID, false)
			log.Info().Str("user", userID).Str("conn", client.ID()).Msg("ws identified user disconnected")
		}
		client.close()
		metrics.Connections.Dec()
	}()

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		h.dispatch(client, authedUser, raw)
	}
}

func (h *Hub) dispatch(client presence.Session, authedUser string, raw []byte) {
	typ, payload, err := DecodeEnvelope(raw)
	if err != nil {
		log.Debug().Err(err).Str("type", typ).Msg("rejected ws frame")
		_ = client.Send(ErrorEvent("invalid envelope"))
		return
	}

	switch data := payload.(type) {
	case *IdentifyData:
		if authedUser != "" && authedUser != data.UserID {
			_ = client.Send(ErrorEvent("identify does not match authenticated user"))
			return
		}
		h.registry.Identify(data.UserID, client)
		h.mirrorPresence(data.UserID, true)
		log.Info().Str("user", data.UserID).Str("conn", client.ID()).Msg("user identified")

	case *SendMessageData:
		ack, err := h.svc.Send(context.Background(), data.SenderID, data.ReceiverID, data.Content, data.ClientToken)
		if err != nil {
			_ = client.Send(ErrorEvent(err.Error()))
			return
		}
		_ = client.Send(Event{Type: TypeAck, Data: ack})

	case *IsOnlineData:
		_ = client.Send(Event{Type: TypeOnline, Data: OnlineStatus{
			UserID: data.UserID,
			Online: h.registry.IsOnline(data.UserID),
		}})
	}
}

func (h *Hub) mirrorPresence(userID string, online bool) {
	if h.cache == nil {
		return
	}
	if err := h.cache.SetPresence(context.Background(), userID, online); err != nil {
		log.Warn().Err(err).Str("user", userID).Msg("presence mirror")
	}
}
