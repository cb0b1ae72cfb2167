package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxJournalContentLength is the hard cap on journal entry text.
const MaxJournalContentLength = 500

// JournalEntry is a single mood journal entry. Entries are immutable once
// created; the only mutation the API allows is owner deletion.
type JournalEntry struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	Content   string    `json:"content"`
	MoodScore int       `json:"mood_score"`
	MoodName  string    `json:"mood_name"`
}
