// Package presence tracks which users currently hold a live realtime
// connection. State is process-local and rebuilt empty on restart; clients
// re-identify after reconnecting.
package presence

import "sync"

// Session is a live realtime connection that can receive server pushes.
type Session interface {
	// ID identifies the connection, not the user.
	ID() string
	// Send queues a payload for delivery. Best effort: an error means the
	// connection is gone or its buffer is full.
	Send(v any) error
}

// Registry maps authenticated user IDs to their active session. At most
// one session per user: a later Identify for the same user overwrites the
// earlier mapping without closing the old connection.
type Registry struct {
	mu     sync.RWMutex
	byUser map[string]Session
	bySess map[string]string // session ID -> user ID
}

func NewRegistry() *Registry {
	return &Registry{
		byUser: make(map[string]Session),
		bySess: make(map[string]string),
	}
}

// Identify binds userID to sess, replacing any previous binding for the
// user. Forward and reverse maps are updated under one lock so lookups
// never observe a half-applied pair.
func (r *Registry) Identify(userID string, sess Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.byUser[userID]; ok {
		delete(r.bySess, old.ID())
	}
	r.byUser[userID] = sess
	r.bySess[sess.ID()] = userID
}

// Disconnect removes the mapping held by sess. If the user has since
// identified on a newer session, the call is a no-op so a late disconnect
// cannot evict the fresher binding. Returns the unbound user ID, or ""
// when nothing was removed.
func (r *Registry) Disconnect(sess Session) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	userID, ok := r.bySess[sess.ID()]
	if !ok {
		return ""
	}
	cur, ok := r.byUser[userID]
	if !ok || cur.ID() != sess.ID() {
		delete(r.bySess, sess.ID())
		return ""
	}
	delete(r.byUser, userID)
	delete(r.bySess, sess.ID())
	return userID
}

// Lookup returns the user's live session, if any.
func (r *Registry) Lookup(userID string) (Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byUser[userID]
	return s, ok
}

func (r *Registry) IsOnline(userID string) bool {
	_, ok := r.Lookup(userID)
	return ok
}

// Online returns the number of identified users.
func (r *Registry) Online() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUser)
}
