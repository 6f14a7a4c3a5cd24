package parse

import (
	"context"
	"runtime"
	"time"

	"github.com/dhamidi/gramq/grammar"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"
)

var log = commonlog.GetLogger("gramq.parse")

// Session runs timed parses against one grammar. A Session holds no state
// between runs and may be used from several goroutines.
type Session struct {
	grammar *grammar.Grammar
	now     func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces the clock used to measure elapsed time.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// NewSession returns a session for g.
func NewSession(g *grammar.Grammar, opts ...Option) *Session {
	s := &Session{grammar: g, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Grammar returns the grammar the session parses with.
func (s *Session) Grammar() *grammar.Grammar {
	return s.grammar
}

// Run parses text and records how long the match took. A failed parse is
// returned as is; there are no retries.
func (s *Session) Run(text string) *Result {
	start := s.now()
	r := Match(s.grammar, text)
	r.Elapsed = s.now().Sub(start)

	if r.Success {
		log.Debugf("parsed %d characters into %d nodes in %s", r.Length, r.Tree.Len(), r.Elapsed)
	} else {
		log.Debugf("parse failed at %d/%d in %s", r.EndOffset, r.Length, r.Elapsed)
	}
	return r
}

// Parse runs a single session of g over text.
func Parse(g *grammar.Grammar, text string) *Result {
	return NewSession(g).Run(text)
}

// RunAll parses every text in its own session, at most jobs at a time
// (GOMAXPROCS when jobs <= 0). Results are in the order of texts. A
// cancelled context stops texts that have not started yet; running matches
// complete.
func (s *Session) RunAll(ctx context.Context, texts []string, jobs int) ([]*Result, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]*Result, len(texts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, text := range texts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = s.Run(text)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
