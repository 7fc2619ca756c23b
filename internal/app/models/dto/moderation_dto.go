package dto

// PendingItemsResponse aggregates every unapproved entity across the five
// moderated kinds plus pending image-replacement requests, grouped by type.
type PendingItemsResponse struct {
	Universities  []UniversityResponse   `json:"universities"`
	Faculties     []FacultyResponse      `json:"faculties"`
	Fields        []FieldOfStudyResponse `json:"fields"`
	Subjects      []SubjectResponse      `json:"subjects"`
	Notes         []NoteResponse         `json:"notes"`
	ImageRequests []ImageRequestResponse `json:"imageRequests"`
}

// HealthResponse reports liveness plus coarse row counts
type HealthResponse struct {
	Status       string `json:"status" example:"ok"`
	Version      string `json:"version" example:"1.0.0"`
	Universities int64  `json:"universities" example:"16"`
	Notes        int64  `json:"notes" example:"134"`
	Users        int64  `json:"users" example:"52"`
}

// ChatRequest represents an AI chat message, optionally grounded on a note
type ChatRequest struct {
	Message string `json:"message" binding:"required,min=1,max=4000"`
	NoteID  *int64 `json:"noteId" binding:"omitempty,min=1"`
}

// ChatResponse carries the AI completion
type ChatResponse struct {
	Reply string `json:"reply"`
}
