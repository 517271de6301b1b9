package models

// ---------------- PARTICIPANTS ----------------

// Participant is one roster entry. A person appears once per
// (event_key, name_key, subcat) triple; changing the category creates a new
// logical record instead of updating the old one.
type Participant struct {
	Event    string `json:"event"`
	EventKey string `json:"event_key"`
	Name     string `json:"name"`
	NameKey  string `json:"name_key"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Grade    string `json:"grade"`
	Division string `json:"division"`
	Subcat   string `json:"subcat"`
}

// ---------------- MESSAGES ----------------

const (
	KindChat        = "chat"
	KindCallRequest = "call_request"
	KindSystem      = "system"
)

const (
	RoleAdmin       = "admin"
	RoleParticipant = "participant"
)

// Call request directions carried in Message.Meta["direction"].
const (
	CallAdminToMe = "Admin → Me"
	CallMeToAdmin = "Me → Admin"
	CallBoth      = "Both"
)

// Message is append-only; Timestamp is an RFC3339Nano string and is
// non-decreasing in insertion order.
type Message struct {
	ID        string            `json:"id"`
	To        string            `json:"to"`
	ToKey     string            `json:"to_key"`
	From      string            `json:"from"`
	FromKey   string            `json:"from_key"`
	Event     string            `json:"event"`
	EventKey  string            `json:"event_key"`
	ToRole    string            `json:"to_role"`
	Text      string            `json:"text"`
	Timestamp string            `json:"timestamp"`
	Kind      string            `json:"kind"`
	Meta      map[string]string `json:"meta"`
}

// ---------------- SESSIONS ----------------

// Session is a last-seen presence row, one per distinct name_key. It is
// upserted on every login-gate pass and never deleted.
type Session struct {
	Name     string `json:"name"`
	NameKey  string `json:"name_key"`
	Role     string `json:"role"`
	LastSeen string `json:"last_seen"`
	Phone    string `json:"phone"`
}

// ---------------- COMPLETIONS ----------------

// Completion is an append-only proof that a participant marked an event
// attended.
type Completion struct {
	ID        string `json:"id"`
	Event     string `json:"event"`
	EventKey  string `json:"event_key"`
	Name      string `json:"name"`
	NameKey   string `json:"name_key"`
	Timestamp string `json:"timestamp"`
	AtVenue   bool   `json:"at_venue"`
}
