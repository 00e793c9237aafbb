package main

import (
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Session owns one global environment. Evaluations are serialized because
// frames are shared mutable state.
type Session struct {
	mu  sync.Mutex
	env *Env
	log *log.Entry
}

func NewSession(logger *log.Logger) *Session {
	return &Session{
		env: NewGlobalEnv(),
		log: log.NewEntry(logger),
	}
}

// Run evaluates each element of root, a proper list of top-level forms, in the
// global environment and hands every result to emit. The first error stops
// the run; results emitted before it stand.
func (s *Session) Run(root Datum, emit func(Datum)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	forms, err := ToSlice(root)
	if err != nil {
		return err
	}

	for i, form := range forms {
		entry := s.log.WithField("index", i)
		entry.WithField("form", Print(form)).Debug("evaluating top-level form")

		val, err := Eval(form, s.env)
		if err != nil {
			if kind, ok := KindOf(err); ok {
				entry = entry.WithField("kind", kind.String())
			}
			entry.WithError(err).Error("evaluation failed")
			return err
		}
		emit(val)
	}
	return nil
}

// EvalSource reads and runs src, returning the results of the forms that
// completed.
func (s *Session) EvalSource(src string) ([]Datum, error) {
	root, err := ReadAll(strings.NewReader(src))
	if err != nil {
		s.log.WithError(err).Warn("read failed")
		return nil, err
	}

	var results []Datum
	err = s.Run(root, func(val Datum) {
		results = append(results, val)
	})
	return results, err
}

// Reset discards every binding made so far.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.env = NewGlobalEnv()
	s.log.Info("session reset")
}

// Globals lists the names bound in the global frame, newest first.
func (s *Session) Globals() []Symbol {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.env.Symbols()
}
