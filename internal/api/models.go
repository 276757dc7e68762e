package api

// Common request/response structures

// StudySessionRequest defines the payload for the study session endpoint.
// The same shape is accepted as a POST body and, field by field, as GET
// query parameters.
type StudySessionRequest struct {
	// DeckID selects an explicit deck; when set the category and virtual
	// deck filters are ignored.
	DeckID string `json:"deck_id,omitempty" validate:"omitempty,uuid"`

	// CategoryIDs restricts the pool to cards in the given categories.
	CategoryIDs []string `json:"category_ids,omitempty" validate:"omitempty,dive,uuid"`

	// VirtualDeck names a computed selection mode.
	VirtualDeck string `json:"virtual_deck,omitempty" validate:"omitempty,oneof=due_today needs_attention company_focus"`

	// Limit caps the session size. Zero means the configured default.
	Limit int `json:"limit,omitempty" validate:"omitempty,min=1"`
}

// SessionCardResponse represents one card in a study session response.
type SessionCardResponse struct {
	ID           string   `json:"id"`
	Question     string   `json:"question"`
	Answer       string   `json:"answer"`
	CategoryID   string   `json:"category_id"`
	CategoryName string   `json:"category_name"`
	Tags         []string `json:"tags,omitempty"`
	Difficulty   int      `json:"difficulty"`
}

// StudySessionResponse defines the successful response for the study
// session endpoint. TotalDue and TotalNew describe the learner's full
// accessible pool, not just the returned batch.
type StudySessionResponse struct {
	Cards    []SessionCardResponse `json:"cards"`
	TotalDue int                   `json:"total_due"`
	TotalNew int                   `json:"total_new"`
}
