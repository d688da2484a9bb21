package domain

import "fmt"

// SettlementState stage of a booking attempt
type SettlementState string

const (
	SettlementDraft                SettlementState = "draft"
	SettlementAuthorizing          SettlementState = "authorizing"
	SettlementAwaitingConfirmation SettlementState = "awaiting_confirmation"
	SettlementConfirmed            SettlementState = "confirmed"
	SettlementRejected             SettlementState = "rejected"
	SettlementFailed               SettlementState = "failed"
)

var settlementTransitions = map[SettlementState][]SettlementState{
	SettlementDraft:                {SettlementAuthorizing},
	SettlementAuthorizing:          {SettlementAwaitingConfirmation, SettlementRejected},
	SettlementAwaitingConfirmation: {SettlementConfirmed, SettlementFailed},
}

// IsValid returns true for a known state
func (s SettlementState) IsValid() bool {
	switch s {
	case SettlementDraft, SettlementAuthorizing, SettlementAwaitingConfirmation,
		SettlementConfirmed, SettlementRejected, SettlementFailed:
		return true
	}
	return false
}

// IsTerminal returns true for confirmed, rejected and failed
func (s SettlementState) IsTerminal() bool {
	return s == SettlementConfirmed || s == SettlementRejected || s == SettlementFailed
}

// CanTransition reports whether next is reachable from s in one step
func (s SettlementState) CanTransition(next SettlementState) bool {
	for _, allowed := range settlementTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Settlement drives one booking attempt through its states.
// Not safe for concurrent use; each attempt owns its own value.
type Settlement struct {
	state SettlementState
}

// NewSettlement starts an attempt in Draft
func NewSettlement() *Settlement {
	return &Settlement{state: SettlementDraft}
}

// RestoreSettlement resumes an attempt from a persisted state
func RestoreSettlement(state SettlementState) (*Settlement, error) {
	if !state.IsValid() {
		return nil, fmt.Errorf("%w: unknown state %q", ErrInvalidTransition, state)
	}
	return &Settlement{state: state}, nil
}

// State current state
func (s *Settlement) State() SettlementState {
	return s.state
}

// IsTerminal returns true when no further transitions are possible
func (s *Settlement) IsTerminal() bool {
	return s.state.IsTerminal()
}

// Transition moves the attempt to next or fails with ErrInvalidTransition
func (s *Settlement) Transition(next SettlementState) error {
	if !s.state.CanTransition(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.state, next)
	}
	s.state = next
	return nil
}
