package events

// EventType identifies the kind of a published event.
type EventType string

const (
	EventToolUsed     EventType = "tool.used"
	EventUserLoggedIn EventType = "user.logged_in"
)

// Event is the payload passed to subscribers.
type Event struct {
	Type      EventType
	UserID    string
	ToolName  string
	IPAddress string
	Payload   map[string]any
}
