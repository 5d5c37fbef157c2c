package snapsheet

import (
	"os"

	"github.com/sirupsen/logrus"
)

// defaultLogger writes warnings and above to stderr.
func defaultLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	return l.WithField("component", "snapsheet")
}

// SetLogger replaces the sheet's logger. Passing nil restores the default.
// A level raised by SetDebugMode on the previous logger is put back first.
func (s *Sheet) SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = defaultLogger()
	}
	s.restoreLogLevel()
	s.log = l
	if s.debug {
		s.raiseLogLevel()
	}
}

// SetDebugMode enables or disables debug logging. When enabled every state
// transition, mode change and config swap is logged at debug level. If the
// logger is a *logrus.Logger or *logrus.Entry below debug level it is raised
// to debug, and disabling debug mode puts the previous level back.
func (s *Sheet) SetDebugMode(enabled bool) {
	s.debug = enabled
	if enabled {
		s.raiseLogLevel()
	} else {
		s.restoreLogLevel()
	}
}

func (s *Sheet) raiseLogLevel() {
	if s.restoreLevel != nil {
		return
	}
	var lg *logrus.Logger
	switch l := s.log.(type) {
	case *logrus.Logger:
		lg = l
	case *logrus.Entry:
		lg = l.Logger
	}
	if lg == nil || lg.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	prev := lg.GetLevel()
	lg.SetLevel(logrus.DebugLevel)
	s.restoreLevel = func() { lg.SetLevel(prev) }
}

func (s *Sheet) restoreLogLevel() {
	if s.restoreLevel == nil {
		return
	}
	s.restoreLevel()
	s.restoreLevel = nil
}

func (s *Sheet) logTransition(t Transition) {
	if !s.debug {
		return
	}
	s.log.WithFields(logrus.Fields{
		"from":    t.From.String(),
		"to":      t.To.String(),
		"reason":  t.Reason.String(),
		"session": s.session.id,
	}).Debug("sheet transition")
}

func (s *Sheet) logf(msg string, fields logrus.Fields) {
	if !s.debug {
		return
	}
	s.log.WithFields(fields).Debug(msg)
}
