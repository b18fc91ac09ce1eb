package models

import "sort"

// ConversationSummary is one row of a user's conversation list: the partner
// plus the most recent message exchanged with them.
type ConversationSummary struct {
	PartnerID     string   `json:"partner_id"`
	PartnerName   string   `json:"partner_name"`
	PartnerAvatar string   `json:"partner_avatar"`
	LastMessage   *Message `json:"last_message"`
}

// LatestPerPartner folds a flat message log into per-partner summaries for
// userID: one entry per distinct partner, keeping the message with the
// greatest CreatedAt (ID order breaks ties, IDs being creation-ordered),
// sorted most-recent-first and truncated to limit.
//
// Display fields are left empty; enrichment happens at the service layer.
func LatestPerPartner(msgs []*Message, userID string, limit int) []*ConversationSummary {
	latest := make(map[string]*Message)
	for _, m := range msgs {
		if m.SenderID != userID && m.ReceiverID != userID {
			continue
		}
		partner := m.Partner(userID)
		cur, ok := latest[partner]
		if !ok || newer(m, cur) {
			latest[partner] = m
		}
	}

	out := make([]*ConversationSummary, 0, len(latest))
	for partner, m := range latest {
		out = append(out, &ConversationSummary{PartnerID: partner, LastMessage: m})
	}
	sort.Slice(out, func(i, j int) bool {
		return newer(out[i].LastMessage, out[j].LastMessage)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func newer(a, b *Message) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID.Hex() > b.ID.Hex()
}
