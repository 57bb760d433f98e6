package promptrelay

// Request is one question for the human, sent as a single JSON line over the
// local socket, or as a JSON file to a freshly launched front-end. IDs are
// caller-generated; the Orchestrator fills in a UUID when left empty.
type Request struct {
	ID                string   `json:"id"`
	Message           string   `json:"message"`
	PredefinedOptions []string `json:"predefined_options"`
	IsMarkdown        bool     `json:"is_markdown"`
}

// Response is the single JSON line written back on the same connection.
// Success implies Error is absent; failure implies Response is empty.
type Response struct {
	ID       string `json:"id"`
	Response string `json:"response"`
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
}

// Notification announces a newly arrived request to UI-side subscribers.
// The same request is published once per configured event name, in order.
type Notification struct {
	Event   string
	Request Request
}

const (
	// EventPromptRequest is the canonical notification event name.
	EventPromptRequest = "prompt-request"
	// EventPopupRequest is kept for front-ends written against the older
	// event naming.
	EventPopupRequest = "popup-request"
)

// DefaultEventNames lists the notification names published per request,
// canonical first.
func DefaultEventNames() []string {
	return []string{EventPromptRequest, EventPopupRequest}
}

// AnswerCancelled is the answer value produced when the user dismissed the
// prompt without responding (a launched front-end signals this by printing
// nothing to stdout).
const AnswerCancelled = "User cancelled the operation"
