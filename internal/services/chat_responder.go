package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/campuscalm/campuscalm-backend/internal/config"
	"github.com/campuscalm/campuscalm-backend/internal/models"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

const chatSystemPrompt = "You are a warm, supportive wellness companion for university students. " +
	"Keep replies short (2-4 sentences), encouraging and practical. " +
	"Never give medical advice; suggest professional help for anything serious."

// Canned per-mood replies served whenever the upstream completion call cannot
// be made or fails. The user flow never sees an error from chat.
var fallbackReplies = map[string]string{
	MoodHappy:     "That's wonderful to hear! Hold on to that feeling — maybe jot down what made today good so you can come back to it later.",
	MoodCalm:      "It sounds like you're in a good headspace. A calm moment is a great time to check in with yourself and breathe.",
	MoodMotivated: "Love that energy! Pick one small task and ride the momentum — progress compounds.",
	MoodStressed:  "That sounds really tough. Try a slow breath: in for four, hold for four, out for four. One thing at a time — you've got this.",
	MoodLonely:    "I'm sorry you're feeling this way. Reaching out to one friend, even with a short message, can make a real difference. You matter.",
}

const fallbackDefault = "Thank you for sharing that with me. Whatever you're feeling right now is valid — be kind to yourself today."

var chatModel llms.Model

// InitChatResponder builds the OpenAI-compatible completion client. When no
// API key is configured the responder stays nil and every reply comes from the
// canned fallback table.
func InitChatResponder(cfg *config.Config) error {
	if cfg.AIAPIKey == "" {
		return fmt.Errorf("AI_API_KEY not set")
	}

	opts := []openai.Option{
		openai.WithToken(cfg.AIAPIKey),
		openai.WithModel(cfg.AIModel),
	}
	if cfg.AIBaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.AIBaseURL))
	}

	model, err := openai.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create chat completion client: %w", err)
	}
	chatModel = model
	return nil
}

// FallbackReply returns the canned reply for a mood, or a generic default for
// anything unrecognized. Pure lookup, no dispatch.
func FallbackReply(mood string) string {
	if reply, ok := fallbackReplies[mood]; ok {
		return reply
	}
	return fallbackDefault
}

// RespondToChat produces a supportive reply for a user message. On any
// failure — missing credential, upstream error, empty completion — it degrades
// to the per-mood canned reply instead of returning an error. The second
// return value reports where the reply came from ("ai" or "fallback").
func RespondToChat(ctx context.Context, message, mood string) (string, string) {
	if chatModel == nil {
		return FallbackReply(mood), models.ChatSourceFallback
	}

	userPrompt := message
	if mood != "" {
		userPrompt = fmt.Sprintf("The student is currently feeling %s.\n\n%s", strings.ToLower(mood), message)
	}

	content := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, chatSystemPrompt),
		llms.TextParts(schema.ChatMessageTypeHuman, userPrompt),
	}

	resp, err := chatModel.GenerateContent(ctx, content,
		llms.WithTemperature(0.7),
		llms.WithMaxTokens(256),
	)
	if err != nil {
		log.Printf("[Chat] completion failed, serving fallback: %v", err)
		return FallbackReply(mood), models.ChatSourceFallback
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		log.Printf("[Chat] empty completion, serving fallback")
		return FallbackReply(mood), models.ChatSourceFallback
	}

	return strings.TrimSpace(resp.Choices[0].Content), models.ChatSourceAI
}
