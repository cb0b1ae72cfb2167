package services

import (
	"context"
	"time"

	"github.com/campuscalm/campuscalm-backend/internal/database"
	"github.com/campuscalm/campuscalm-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const chatCollection = "chat_messages"

// EnsureChatIndexes configures indexes for the chat_messages collection.
// Called on startup from main after Mongo has connected.
func EnsureChatIndexes(ctx context.Context) error {
	col := database.DB.Collection(chatCollection)

	// Compound index on (user_id, created_at) to support history pagination.
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_user_created"),
		},
	}

	for _, m := range indexes {
		if _, err := col.Indexes().CreateOne(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// SaveChatExchangeAsync persists a chat exchange to MongoDB asynchronously.
// The reply has already been sent to the user; a lost history write is
// acceptable, so this is fire-and-forget.
func SaveChatExchangeAsync(exchange models.ChatExchange) {
	go func(e models.ChatExchange) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if e.CreatedAt.IsZero() {
			e.CreatedAt = time.Now().UTC()
		}

		col := database.DB.Collection(chatCollection)
		_, _ = col.InsertOne(ctx, e)
	}(exchange)
}

// LoadChatHistory returns paginated chat exchanges for a user, oldest-first
// within the page. Pagination is cursor-style on created_at (newest-first
// scrolling with a "before" timestamp).
func LoadChatHistory(ctx context.Context, userID string, before *time.Time, limit int64) ([]models.ChatExchange, bool, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	col := database.DB.Collection(chatCollection)

	filter := bson.M{"user_id": userID}
	if before != nil {
		filter["created_at"] = bson.M{"$lt": before.UTC()}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit + 1)

	cur, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, false, err
	}
	defer cur.Close(ctx)

	var exchanges []models.ChatExchange
	for cur.Next(ctx) {
		var e models.ChatExchange
		if err := cur.Decode(&e); err != nil {
			continue
		}
		exchanges = append(exchanges, e)
	}
	if err := cur.Err(); err != nil {
		return nil, false, err
	}

	hasMore := int64(len(exchanges)) > limit
	if hasMore {
		exchanges = exchanges[:len(exchanges)-1]
	}

	// Reverse to oldest-first for the UI.
	for i, j := 0, len(exchanges)-1; i < j; i, j = i+1, j-1 {
		exchanges[i], exchanges[j] = exchanges[j], exchanges[i]
	}

	return exchanges, hasMore, nil
}
