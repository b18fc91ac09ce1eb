package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is a direct message between two users. Messages are append-only;
// the only field that changes after creation is the read flag.
//
// The ObjectID doubles as the pagination cursor: it embeds the creation
// timestamp, so ID order is consistent with creation order.
type Message struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SenderID   string             `bson:"sender_id" json:"sender_id"`
	ReceiverID string             `bson:"receiver_id" json:"receiver_id"`
	Content    string             `bson:"content" json:"content"`
	IsRead     bool               `bson:"is_read" json:"is_read"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}

// Partner returns the other party of the message from userID's point of
// view. For a self-message both parties are userID.
func (m *Message) Partner(userID string) string {
	if m.SenderID == userID {
		return m.ReceiverID
	}
	return m.SenderID
}

// DeliveryPayload is what the sender gets back from a send and what the
// receiver gets pushed. ClientToken is echoed to the sender only; the copy
// pushed to the receiver never carries it.
type DeliveryPayload struct {
	Message
	ClientToken string    `json:"client_token,omitempty"`
	DeliveredAt time.Time `json:"delivered_at"`
}

// ForReceiver strips the sender-local correlation token.
func (p DeliveryPayload) ForReceiver() DeliveryPayload {
	p.ClientToken = ""
	return p
}
