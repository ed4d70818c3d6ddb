package chat

import (
	"time"

	"github.com/google/uuid"
)

// Exchange is one persisted question/answer turn.
type Exchange struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Timestamp time.Time `json:"timestamp"`
}

// Feedback values accepted for a training entry.
const (
	FeedbackHelpful          = "helpful"
	FeedbackNotHelpful       = "not_helpful"
	FeedbackPartiallyHelpful = "partially_helpful"
)

// UserContext captures the patient's situation at the moment of a chat turn,
// stored alongside the answer so responses can be reviewed in context.
type UserContext struct {
	PregnancyWeek int    `json:"pregnancyWeek"`
	Trimester     int    `json:"trimester"`
	HealthScore   *int   `json:"healthScore"`
	Mood          string `json:"mood,omitempty"`
}

// TrainingEntry is a chat turn captured for response-quality review, later
// annotated by user feedback.
type TrainingEntry struct {
	ID          uuid.UUID   `json:"id"`
	UserID      uuid.UUID   `json:"userId"`
	Question    string      `json:"userQuestion"`
	Answer      string      `json:"aiResponse"`
	Feedback    string      `json:"userFeedback,omitempty"`
	Context     UserContext `json:"userContext"`
	Accuracy    int         `json:"responseAccuracy,omitempty"`
	Suggestions string      `json:"improvementSuggestions,omitempty"`
	Timestamp   time.Time   `json:"timestamp"`
}
