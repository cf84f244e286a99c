package conversation

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the producer of a message. The set is closed: every message
// in a State carries exactly one of the three roles below.
type Role string

const (
	// RoleUser marks input provided by the caller.
	RoleUser Role = "user"
	// RoleAssistant marks replies produced by the model.
	RoleAssistant Role = "assistant"
	// RoleCapabilityResult marks the outcome of an executed capability request.
	RoleCapabilityResult Role = "capability_result"
)

// CapabilityRequest is an assistant's structured request to execute a named
// capability. Arguments holds the serialized JSON argument payload exactly as
// the producer surfaced it; it is decoded at execution time, not before.
type CapabilityRequest struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// NewCapabilityRequest builds a request with a generated correlation ID for
// producers (such as scripted models) that do not supply their own.
func NewCapabilityRequest(name, arguments string) CapabilityRequest {
	return CapabilityRequest{ID: NewID(), Name: name, Arguments: arguments}
}

// Message is the unit of the conversation log. After creation it should be
// treated as immutable. It captures:
//   - Correlation (ID, and for results RequestID)
//   - The role and textual content
//   - Capability requests (assistant messages only)
//   - A high precision UTC timestamp
//
// A capability-result message names the capability that produced it and the
// request it answers; both fields are empty on other roles.
type Message struct {
	ID             string              `json:"id"`
	Role           Role                `json:"role"`
	Content        string              `json:"content,omitempty"`
	Requests       []CapabilityRequest `json:"requests,omitempty"`
	CapabilityName string              `json:"capability_name,omitempty"`
	RequestID      string              `json:"request_id,omitempty"`
	Timestamp      time.Time           `json:"timestamp"`
}

// NewUserMessage creates a user-authored text message.
func NewUserMessage(content string) Message {
	return Message{
		ID:        NewID(),
		Role:      RoleUser,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// NewAssistantMessage creates an assistant reply. Requests may be empty for a
// final text-only reply.
func NewAssistantMessage(content string, requests ...CapabilityRequest) Message {
	return Message{
		ID:        NewID(),
		Role:      RoleAssistant,
		Content:   content,
		Requests:  requests,
		Timestamp: time.Now().UTC(),
	}
}

// NewCapabilityResultMessage records the outcome of a capability request.
// The content is the capability's returned text, or an error marker when
// execution failed.
func NewCapabilityResultMessage(requestID, capabilityName, content string) Message {
	return Message{
		ID:             NewID(),
		Role:           RoleCapabilityResult,
		Content:        content,
		CapabilityName: capabilityName,
		RequestID:      requestID,
		Timestamp:      time.Now().UTC(),
	}
}

// NewID generates a new unique identifier for messages and requests.
func NewID() string { return uuid.NewString() }

// HasRequests reports whether the message carries capability requests.
func (m Message) HasRequests() bool { return len(m.Requests) > 0 }

// IsFinal reports whether the message terminates a run: an assistant reply
// with no pending capability requests.
func (m Message) IsFinal() bool {
	return m.Role == RoleAssistant && !m.HasRequests()
}
