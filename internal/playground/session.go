package playground

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formkit/pkg/dom"
	"github.com/dmitrymomot/formkit/pkg/formvalidate"
	"github.com/dmitrymomot/formkit/pkg/tablefilter"
)

// Session is one rendered page with its attached engines. Events on a
// session are serialised; the document is not safe for concurrent use.
type Session struct {
	ID   string
	Page string

	mu       sync.Mutex
	doc      *dom.Document
	forms    []*formvalidate.Form
	tables   []*tablefilter.Table
	lastSeen time.Time
}

// Document returns the session's live document.
func (s *Session) Document() *dom.Document { return s.doc }

// Forms returns the forms attached on the page.
func (s *Session) Forms() []*formvalidate.Form { return s.forms }

// Tables returns the tables attached on the page.
func (s *Session) Tables() []*tablefilter.Table { return s.tables }

// SessionOption configures a SessionStore.
type SessionOption func(*SessionStore)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) SessionOption {
	return func(s *SessionStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithSizeHook is called with the number of live sessions after every change.
func WithSizeHook(h func(n int)) SessionOption {
	return func(s *SessionStore) {
		if h != nil {
			s.sizeHooks = append(s.sizeHooks, h)
		}
	}
}

// SessionStore keeps page sessions in memory and expires idle ones.
type SessionStore struct {
	mu        sync.Mutex
	ttl       time.Duration
	now       func() time.Time
	sessions  map[string]*Session
	sizeHooks []func(int)
}

// NewSessionStore creates a store whose sessions expire after ttl without
// events. A non-positive ttl disables expiry.
func NewSessionStore(ttl time.Duration, opts ...SessionOption) *SessionStore {
	s := &SessionStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers a new session for a rendered page.
func (s *SessionStore) Create(page string, doc *dom.Document, forms []*formvalidate.Form, tables []*tablefilter.Table) *Session {
	sess := &Session{
		ID:     uuid.NewString(),
		Page:   page,
		doc:    doc,
		forms:  forms,
		tables: tables,
	}

	s.mu.Lock()
	sess.lastSeen = s.now()
	s.sessions[sess.ID] = sess
	n := len(s.sessions)
	s.mu.Unlock()

	s.notify(n)
	return sess
}

// Get returns the session and marks it as used.
func (s *SessionStore) Get(id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSessionNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok || s.expired(sess) {
		return nil, ErrSessionNotFound
	}
	sess.lastSeen = s.now()
	return sess, nil
}

// Len returns the number of stored sessions, expired ones included until
// the next sweep.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops expired sessions and returns how many were removed.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	removed := 0
	for id, sess := range s.sessions {
		if s.expired(sess) {
			delete(s.sessions, id)
			removed++
		}
	}
	n := len(s.sessions)
	s.mu.Unlock()

	if removed > 0 {
		s.notify(n)
	}
	return removed
}

// Run sweeps expired sessions every half TTL until ctx is done.
func (s *SessionStore) Run(ctx context.Context) {
	if s.ttl <= 0 {
		<-ctx.Done()
		return
	}
	ticker := time.NewTicker(s.ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// expired must be called with s.mu held.
func (s *SessionStore) expired(sess *Session) bool {
	return s.ttl > 0 && s.now().Sub(sess.lastSeen) > s.ttl
}

func (s *SessionStore) notify(n int) {
	for _, h := range s.sizeHooks {
		h(n)
	}
}
