package journal

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one journal moment: a note, a photo reference, or both, pinned to
// a gestational week. The photo itself lives in external storage; only its
// reference is kept here.
type Entry struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Week      int       `json:"week"`
	Note      string    `json:"note"`
	Photo     string    `json:"photo,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
