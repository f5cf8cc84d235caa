package httpdto

import "nexora-chat/internal/domain/user"

// AppendFeedbackRequest is used for POST /api/feedback/:userId. Rating is a
// pointer so an absent field can be told apart from zero.
type AppendFeedbackRequest struct {
	Rating  *float64 `json:"rating"`
	Comment string   `json:"comment"`
}

// AppendFeedbackResponse is returned after a feedback entry is stored
type AppendFeedbackResponse struct {
	Success  bool        `json:"success"`
	Feedback FeedbackDTO `json:"feedback"`
}

// FeedbackListResponse is returned by GET /api/feedback/:userId
type FeedbackListResponse struct {
	Success  bool          `json:"success"`
	Feedback []FeedbackDTO `json:"feedback"`
	Count    int           `json:"count"`
}

// FeedbackDTO represents a feedback entry in API responses
type FeedbackDTO struct {
	ID        string  `json:"id"`
	Rating    float64 `json:"rating"`
	Comment   string  `json:"comment"`
	Timestamp string  `json:"timestamp"`
}

func FromFeedbackEntry(f user.FeedbackEntry) FeedbackDTO {
	return FeedbackDTO{
		ID:        f.ID.String(),
		Rating:    f.Rating,
		Comment:   f.Comment,
		Timestamp: FormatTime(f.Timestamp),
	}
}

func FromFeedbackEntrySlice(feedback []user.FeedbackEntry) []FeedbackDTO {
	dtos := make([]FeedbackDTO, len(feedback))
	for i, f := range feedback {
		dtos[i] = FromFeedbackEntry(f)
	}
	return dtos
}
