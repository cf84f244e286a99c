package conversation

import "testing"

func TestMessage_Constructors(t *testing.T) {
	user := NewUserMessage("Say hello to Alice in English")
	if user.Role != RoleUser || user.ID == "" || user.Timestamp.IsZero() {
		t.Fatalf("NewUserMessage did not initialize fields correctly: %+v", user)
	}
	if user.HasRequests() {
		t.Errorf("user message should carry no requests")
	}

	req := NewCapabilityRequest("hello_english", `{"name":"Alice"}`)
	if req.ID == "" || req.Name != "hello_english" || req.Arguments != `{"name":"Alice"}` {
		t.Fatalf("NewCapabilityRequest malformed: %+v", req)
	}

	asst := NewAssistantMessage("", req)
	if asst.Role != RoleAssistant || !asst.HasRequests() || len(asst.Requests) != 1 {
		t.Fatalf("NewAssistantMessage malformed: %+v", asst)
	}
	if asst.IsFinal() {
		t.Errorf("assistant message with requests should not be final")
	}

	final := NewAssistantMessage("Done greeting everyone!")
	if !final.IsFinal() {
		t.Errorf("assistant message without requests should be final")
	}

	result := NewCapabilityResultMessage(req.ID, req.Name, "Hello Alice")
	if result.Role != RoleCapabilityResult || result.RequestID != req.ID || result.CapabilityName != "hello_english" {
		t.Fatalf("NewCapabilityResultMessage malformed: %+v", result)
	}
	if result.Content != "Hello Alice" {
		t.Errorf("expected result content %q, got %q", "Hello Alice", result.Content)
	}
	if result.IsFinal() {
		t.Errorf("capability result should never be final")
	}
}

func TestMessage_IDUniqueness(t *testing.T) {
	a := NewID()
	b := NewID()
	if a == b {
		t.Error("Expected unique IDs")
	}
}
