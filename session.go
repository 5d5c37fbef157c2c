package snapsheet

import (
	"context"

	"github.com/google/uuid"
)

// session is one open-to-close lifetime of the sheet. Its context is
// canceled on close so async work started for the session's content (e.g. a
// partner-offer fetch) can tell its result arrived too late.
type session struct {
	id     string
	ctx    context.Context
	cancel context.CancelFunc
}

var closedCtx = func() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}()

func newSession(parent context.Context) session {
	ctx, cancel := context.WithCancel(parent)
	return session{id: uuid.NewString(), ctx: ctx, cancel: cancel}
}

func (s *session) end() {
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = nil
	s.ctx = nil
}

// Context returns a context that is canceled when the current session ends.
// While the sheet is closed it returns an already-canceled context.
func (s *Sheet) Context() context.Context {
	if s.session.ctx == nil {
		return closedCtx
	}
	return s.session.ctx
}

// SessionID returns the ID of the current open session, or "" when closed.
func (s *Sheet) SessionID() string {
	if s.session.ctx == nil {
		return ""
	}
	return s.session.id
}

// IsCurrent reports whether id names the session that is open right now.
// Gate late-arriving async results with it.
func (s *Sheet) IsCurrent(id string) bool {
	return id != "" && s.session.ctx != nil && id == s.session.id
}

// Closed reports whether the sheet is dismissed.
func (s *Sheet) Closed() bool {
	return s.machine.State() == StateClosed
}
