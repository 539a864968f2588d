// Package progress tracks each validator's persisted position in the command
// sequence and the browsing state a client carries between requests.
package progress

import (
	"github.com/JaimeStill/cmdreview/internal/corpus"
)

// Action is a browsing transition.
type Action string

const (
	ActionNextCommand     Action = "next_command"
	ActionPreviousCommand Action = "previous_command"
	ActionNextContext     Action = "next_context"
)

// State is the session-local browsing position. Index selects a command in
// id order; SubIndex selects one of its arguments. It is never persisted.
type State struct {
	Index    int `json:"index"`
	SubIndex int `json:"sub_index"`
}

// View is what a validator sees at a State.
type View struct {
	State         State           `json:"state"`
	Cursor        int             `json:"cursor"`
	Total         int             `json:"total"`
	Complete      bool            `json:"complete"`
	Command       *corpus.Command `json:"command,omitempty"`
	Argument      *corpus.Context `json:"argument,omitempty"`
	ArgumentCount int             `json:"argument_count"`
}

// Navigate applies action to state for a sequence of n commands where the
// current command has argCount arguments. Command moves clamp to [0, n-1]
// and reset SubIndex; next_context wraps. A state past the end stays there
// on next_command and steps back to the last command on previous_command.
func Navigate(state State, action Action, n, argCount int) (State, error) {
	if state.Index < 0 || state.SubIndex < 0 {
		return state, ErrInvalidState
	}

	switch action {
	case ActionNextCommand:
		if state.Index >= n {
			return State{Index: state.Index}, nil
		}
		return State{Index: clamp(state.Index+1, n)}, nil
	case ActionPreviousCommand:
		return State{Index: clamp(state.Index-1, n)}, nil
	case ActionNextContext:
		if argCount <= 0 {
			return State{Index: state.Index}, nil
		}
		return State{Index: state.Index, SubIndex: (state.SubIndex + 1) % argCount}, nil
	default:
		return state, ErrInvalidAction
	}
}

func clamp(i, n int) int {
	return max(0, min(i, n-1))
}
