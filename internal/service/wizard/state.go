package wizard

// State is a step of the lead conversation.
type State string

const (
	StateWelcome     State = "welcome"
	StateName        State = "name"
	StateSurname     State = "surname"
	StateEmail       State = "email"
	StateProjectType State = "projectType"
	StateBudget      State = "budget"
	StateDescription State = "description"
	StateSummary     State = "summary"
	StateFinalized   State = "finalized"
)

// order is the only path through the conversation.
var order = []State{
	StateWelcome,
	StateName,
	StateSurname,
	StateEmail,
	StateProjectType,
	StateBudget,
	StateDescription,
	StateSummary,
	StateFinalized,
}

// Next returns the state after s. Finalized has no successor and returns itself.
func (s State) Next() State {
	for i, st := range order {
		if st == s && i+1 < len(order) {
			return order[i+1]
		}
	}
	return s
}

// Valid reports whether s is one of the known states.
func (s State) Valid() bool {
	for _, st := range order {
		if st == s {
			return true
		}
	}
	return false
}
