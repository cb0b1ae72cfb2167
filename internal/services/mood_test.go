package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyMoodSingleMood(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantMood  string
		wantScore int
	}{
		{"happy", "I had such a happy and wonderful day, big smile", MoodHappy, 3},
		{"calm", "feeling calm and at peace, time to relax", MoodCalm, 1},
		{"motivated", "so motivated today, crushed my goal and stayed productive", MoodMotivated, 2},
		{"stressed", "the deadline pressure is giving me so much stress", MoodStressed, 4},
		{"lonely", "I feel so lonely and alone, like nobody cares", MoodLonely, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mood, score := ClassifyMood(tt.text)
			assert.Equal(t, tt.wantMood, mood)
			assert.Equal(t, tt.wantScore, score)
		})
	}
}

func TestClassifyMoodHighestCountWins(t *testing.T) {
	// One Happy keyword ("happy") against three Stressed keywords
	// ("exam", "stress", "deadline"): the higher count wins even though Happy
	// is declared first.
	mood, score := ClassifyMood("happy to be done but the exam stress and the deadline broke me")
	assert.Equal(t, MoodStressed, mood)
	assert.Equal(t, 4, score)

	// Reversed weighting: two Happy keywords beat one Lonely keyword.
	mood, score = ClassifyMood("a great day full of joy, though I miss home")
	assert.Equal(t, MoodHappy, mood)
	assert.Equal(t, 3, score)
}

func TestClassifyMoodTieKeepsDeclarationOrder(t *testing.T) {
	// One keyword each from Happy ("joy") and Lonely ("alone"): Happy is
	// earlier in the fixed order, so the tie goes to Happy.
	mood, _ := ClassifyMood("joy then alone")
	assert.Equal(t, MoodHappy, mood)

	// One each from Calm ("calm") and Stressed ("panic"): Calm is declared
	// before Stressed.
	mood, _ = ClassifyMood("calm outside but panic inside")
	assert.Equal(t, MoodCalm, mood)
}

func TestClassifyMoodDefaultsToCalm(t *testing.T) {
	for _, text := range []string{"", "   ", "\t\n", "the weather was grey today"} {
		mood, score := ClassifyMood(text)
		assert.Equal(t, MoodCalm, mood, "input %q", text)
		assert.Equal(t, 1, score, "input %q", text)
	}
}

func TestClassifyMoodRepeatedKeywordCountsOnce(t *testing.T) {
	// "sad" repeated three times still counts as one Lonely keyword, so two
	// distinct Happy keywords win.
	mood, _ := ClassifyMood("sad sad sad but also happy and glad")
	assert.Equal(t, MoodHappy, mood)
}

func TestClassifyMoodSubstringMatching(t *testing.T) {
	// No word-boundary check: "sad" inside "saddle" triggers Lonely. This is
	// knowingly preserved behavior.
	mood, score := ClassifyMood("polished the saddle all afternoon")
	assert.Equal(t, MoodLonely, mood)
	assert.Equal(t, 5, score)

	// Stems match conjugations: "motivat" inside "motivating".
	mood, _ = ClassifyMood("such a motivating lecture")
	assert.Equal(t, MoodMotivated, mood)
}

func TestClassifyMoodCaseInsensitive(t *testing.T) {
	mood, score := ClassifyMood("SO HAPPY AND EXCITED")
	assert.Equal(t, MoodHappy, mood)
	assert.Equal(t, 3, score)
}

func TestMoodMetadata(t *testing.T) {
	moods := Moods()
	assert.Len(t, moods, 5)

	// Fixed display order and fixed scores.
	wantOrder := []string{MoodHappy, MoodCalm, MoodMotivated, MoodStressed, MoodLonely}
	wantScores := map[string]int{
		MoodCalm: 1, MoodMotivated: 2, MoodHappy: 3, MoodStressed: 4, MoodLonely: 5,
	}
	for i, m := range moods {
		assert.Equal(t, wantOrder[i], m.Name)
		assert.Equal(t, wantScores[m.Name], m.Score)
		assert.NotEmpty(t, m.Color)
		assert.NotEmpty(t, m.Emoji)
	}
}

func TestMoodScoreAndValidity(t *testing.T) {
	assert.Equal(t, 1, MoodScore(MoodCalm))
	assert.Equal(t, 5, MoodScore(MoodLonely))
	assert.Equal(t, 0, MoodScore("Angry"))

	assert.True(t, IsValidMood(MoodHappy))
	assert.False(t, IsValidMood("happy")) // labels are case-sensitive
	assert.False(t, IsValidMood(""))
}
