package pagination

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/kasuboski/marquee/pkg/machine"
	"github.com/kasuboski/marquee/pkg/media"
)

type Status string

const (
	StatusIdle        Status = "Idle"
	StatusLoading     Status = "Loading"
	StatusReady       Status = "Ready"
	StatusLoadingMore Status = "LoadingMore"
	StatusExhausted   Status = "Exhausted"
)

var (
	ErrInFlight  = errors.New("a page is already loading")
	ErrExhausted = errors.New("no more pages")
)

// Fetcher loads one page of a query.
type Fetcher func(ctx context.Context, query string, kind media.Kind, page int) (Page, error)

// Session drives "load more" for a single query+kind. Only one fetch runs at
// a time and a failed fetch leaves the accumulated state as it was.
type Session struct {
	mu       sync.Mutex
	state    State
	status   *machine.StateMachine[Status]
	inFlight bool
	fetch    Fetcher
	limit    int
}

// SessionOption configures a Session
type SessionOption func(*Session)

// WithLimit caps how many records each fetched page contributes. Pages the
// provider sends with more items are truncated before they are applied.
func WithLimit(limit int) SessionOption {
	return func(s *Session) {
		if limit > 0 {
			s.limit = limit
		}
	}
}

// NewSession starts an idle session that keeps at most DefaultPageSize
// records from each page unless WithLimit says otherwise.
func NewSession(query string, kind media.Kind, fetch Fetcher, opts ...SessionOption) *Session {
	s := &Session{
		state: NewState(query, kind),
		fetch: fetch,
		limit: DefaultPageSize,
		status: machine.New(StatusIdle,
			machine.From(StatusIdle).To(StatusLoading),
			machine.From(StatusLoading).To(StatusReady, StatusExhausted, StatusIdle),
			machine.From(StatusReady).To(StatusLoadingMore, StatusLoading),
			machine.From(StatusLoadingMore).To(StatusReady, StatusExhausted),
			machine.From(StatusExhausted).To(StatusLoading),
		),
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Limit is the most records a single page adds.
func (s *Session) Limit() int {
	return s.limit
}

// Load fetches page 1 and replaces whatever was accumulated.
func (s *Session) Load(ctx context.Context) ([]media.Record, error) {
	return s.run(ctx, true)
}

// LoadMore fetches the page after the current one. Before the first load it
// behaves like Load.
func (s *Session) LoadMore(ctx context.Context) ([]media.Record, error) {
	return s.run(ctx, false)
}

func (s *Session) run(ctx context.Context, first bool) ([]media.Record, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return nil, ErrInFlight
	}

	if !s.state.Loaded() {
		first = true
	}
	if !first && s.state.Exhausted() {
		s.mu.Unlock()
		return nil, ErrExhausted
	}

	fallback := s.status.Current()
	loading, page := StatusLoading, 1
	if !first {
		loading, page = StatusLoadingMore, s.state.NextPage()
	}

	if err := s.status.ToState(loading); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.inFlight = true
	snapshot := s.state
	s.mu.Unlock()

	p, err := s.fetch(ctx, snapshot.Query, snapshot.Kind, page)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false

	if err != nil {
		_ = s.status.ToState(fallback)
		return nil, err
	}

	p.Number = page
	p.Items = Clip(p.Items, s.limit)
	fresh, next, err := snapshot.Apply(p)
	if err != nil {
		_ = s.status.ToState(fallback)
		return nil, err
	}

	s.state = next
	done := StatusReady
	if next.Exhausted() {
		done = StatusExhausted
	}
	if err := s.status.ToState(done); err != nil {
		return nil, err
	}

	return fresh, nil
}

// State returns a copy of the accumulated state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	st.Accumulated = slices.Clone(s.state.Accumulated)
	return st
}

func (s *Session) Status() Status {
	return s.status.Current()
}

// Matches reports whether query and kind belong to this session. A caller
// holding a session that does not match must discard it and start a new one.
func (s *Session) Matches(query string, kind media.Kind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Kind == kind && SameQuery(s.state.Query, query)
}
