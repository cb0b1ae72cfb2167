package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Chat reply sources. "ai" means the upstream completion API answered;
// "fallback" means the canned per-mood reply was served instead.
const (
	ChatSourceAI       = "ai"
	ChatSourceFallback = "fallback"
)

// ChatExchange is one user message plus the supportive reply it received,
// stored in MongoDB as a flat collection (one document per exchange) so
// history pagination stays cheap.
type ChatExchange struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"user_id" json:"user_id"`
	Mood      string             `bson:"mood,omitempty" json:"mood,omitempty"`
	Message   string             `bson:"message" json:"message"`
	Response  string             `bson:"response" json:"response"`
	Source    string             `bson:"source" json:"source"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
