package services

import (
	"context"
	"testing"

	"github.com/campuscalm/campuscalm-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackReplyPerMood(t *testing.T) {
	seen := map[string]bool{}
	for _, mood := range []string{MoodHappy, MoodCalm, MoodMotivated, MoodStressed, MoodLonely} {
		reply := FallbackReply(mood)
		require.NotEmpty(t, reply)
		assert.NotEqual(t, fallbackDefault, reply, "mood %s should have its own reply", mood)
		assert.False(t, seen[reply], "mood %s reuses another mood's reply", mood)
		seen[reply] = true
	}
}

func TestFallbackReplyUnknownMood(t *testing.T) {
	assert.Equal(t, fallbackDefault, FallbackReply("Confused"))
	assert.Equal(t, fallbackDefault, FallbackReply(""))
	// Labels are case-sensitive; lowercase falls through to the default.
	assert.Equal(t, fallbackDefault, FallbackReply("happy"))
}

func TestRespondToChatWithoutClient(t *testing.T) {
	// No API key configured: the responder must degrade to the canned reply
	// rather than erroring out of the user flow.
	chatModel = nil

	reply, source := RespondToChat(context.Background(), "everything is too much right now", MoodStressed)
	assert.Equal(t, models.ChatSourceFallback, source)
	assert.Equal(t, FallbackReply(MoodStressed), reply)

	reply, source = RespondToChat(context.Background(), "hello", "NotAMood")
	assert.Equal(t, models.ChatSourceFallback, source)
	assert.Equal(t, fallbackDefault, reply)
}
