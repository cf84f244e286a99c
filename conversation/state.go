package conversation

// State is the append-only ordered log of one conversation. A single loop
// invocation owns its State exclusively for the duration of a run, so the log
// is not synchronized; Messages still returns a defensive copy so callers
// cannot mutate history out from under the owner.
//
// Invariant: every capability-result message directly follows, in log order,
// the assistant message whose request it answers. The loop preserves this by
// appending one ordered batch of results per round.
type State struct {
	messages []Message
}

// New creates a State seeded with the given messages, typically a single user
// message.
func New(seed ...Message) *State {
	s := &State{messages: make([]Message, 0, len(seed)+4)}
	s.Append(seed...)
	return s
}

// Append adds messages to the end of the log in the given order.
func (s *State) Append(msgs ...Message) {
	s.messages = append(s.messages, msgs...)
}

// Messages returns a copy of the full log to prevent callers from mutating
// internal state.
func (s *State) Messages() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages in the log.
func (s *State) Len() int { return len(s.messages) }

// Last returns the most recent message and true, or the zero Message and
// false on an empty log.
func (s *State) Last() (Message, bool) {
	if len(s.messages) == 0 {
		return Message{}, false
	}
	return s.messages[len(s.messages)-1], true
}
