package checkout

// State is the step a checkout attempt has reached.
type State string

const (
	StateIdle                      State = "idle"
	StateValidating                State = "validating"
	StatePayingSimulated           State = "paying_simulated"
	StateSucceeded                 State = "succeeded"
	StatePersisting                State = "persisting"
	StateCompleted                 State = "completed"
	StateDeclined                  State = "declined"
	StatePartiallyPersistedFailure State = "partially_persisted_failure"
)

var transitions = map[State][]State{
	StateIdle:            {StateValidating},
	StateValidating:      {StatePayingSimulated, StateDeclined},
	StatePayingSimulated: {StateSucceeded, StateDeclined},
	StateSucceeded:       {StatePersisting},
	StatePersisting:      {StateCompleted, StatePartiallyPersistedFailure},
}

func (s State) CanTransitionTo(next State) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

func (s State) IsTerminal() bool {
	switch s {
	case StateCompleted, StateDeclined, StatePartiallyPersistedFailure:
		return true
	}

	return false
}
