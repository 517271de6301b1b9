package models

// DraftFields is the last-entered admin form input for one
// (event_key, category) slot. Overwritten on every save.
type DraftFields struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Grade    string `json:"grade"`
	Division string `json:"division"`
}

// Document is the whole persisted store. It is read fresh at the start of
// every operation and rewritten wholesale at the end; there is no partial
// update and no cross-process isolation (last writer wins).
type Document struct {
	Participants []Participant                     `json:"participants"`
	Messages     []Message                         `json:"messages"`
	Completions  []Completion                      `json:"completions"`
	Sessions     []Session                         `json:"sessions"`
	UpdatedAt    string                            `json:"updated_at"`
	Categories   map[string][]string               `json:"categories"`
	Drafts       map[string]map[string]DraftFields `json:"drafts"`
}

// NewDocument returns the empty default document.
func NewDocument() *Document {
	return &Document{
		Participants: []Participant{},
		Messages:     []Message{},
		Completions:  []Completion{},
		Sessions:     []Session{},
		Categories:   map[string][]string{},
		Drafts:       map[string]map[string]DraftFields{},
	}
}
