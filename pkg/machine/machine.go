package machine

import (
	"errors"
	"fmt"
	"sync"
)

type State interface {
	~string
}

// Allowable maps where a from state is allowed to transition to
type Allowable[S State] struct {
	from S
	to   []S
}

// StateMachine tracks the current state of a single owner and only moves
// along the transitions it was built with.
type StateMachine[S State] struct {
	mu          sync.Mutex
	current     S
	transitions []Allowable[S]
}

var (
	ErrInvalidTransition = errors.New("invalid state transition")
)

// TransitionBuilder helps in creating a from-to relationship for state transitions
type TransitionBuilder[S State] struct {
	transition Allowable[S]
}

func New[S State](initial S, transitions ...Allowable[S]) *StateMachine[S] {
	return &StateMachine[S]{current: initial, transitions: transitions}
}

// From initializes a transition from a specific state
func From[S State](from S) *TransitionBuilder[S] {
	return &TransitionBuilder[S]{transition: Allowable[S]{from: from}}
}

// To sets the possible destination states and returns the configured transition
func (tb *TransitionBuilder[S]) To(to ...S) Allowable[S] {
	tb.transition.to = to
	return tb.transition
}

// Current returns the state the machine is in.
func (m *StateMachine[S]) Current() S {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// ToState moves the machine to s, or returns ErrInvalidTransition and stays put.
func (m *StateMachine[S]) ToState(s S) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.allowed(s) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m.current, s)
	}

	m.current = s
	return nil
}

func (m *StateMachine[S]) allowed(s S) bool {
	for _, transition := range m.transitions {
		if transition.from != m.current {
			continue
		}

		for _, to := range transition.to {
			if to == s {
				return true
			}
		}
	}

	return false
}
