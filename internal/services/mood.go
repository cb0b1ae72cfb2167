package services

import "strings"

// Mood labels for journal entries. Scores are fixed per label.
const (
	MoodHappy     = "Happy"
	MoodCalm      = "Calm"
	MoodMotivated = "Motivated"
	MoodStressed  = "Stressed"
	MoodLonely    = "Lonely"
)

// MoodInfo is the static metadata the dashboard renders for each mood.
type MoodInfo struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Color string `json:"color"`
	Emoji string `json:"emoji"`
}

// moodOrder fixes both the tie-break order of the classifier and the order the
// metadata endpoint lists moods in. Ties go to the earlier entry, so the order
// must never change once shipped.
var moodOrder = []string{MoodHappy, MoodCalm, MoodMotivated, MoodStressed, MoodLonely}

var moodScores = map[string]int{
	MoodCalm:      1,
	MoodMotivated: 2,
	MoodHappy:     3,
	MoodStressed:  4,
	MoodLonely:    5,
}

var moodColors = map[string]string{
	MoodHappy:     "#FBBF24",
	MoodCalm:      "#34D399",
	MoodMotivated: "#60A5FA",
	MoodStressed:  "#F87171",
	MoodLonely:    "#A78BFA",
}

var moodEmojis = map[string]string{
	MoodHappy:     "😊",
	MoodCalm:      "😌",
	MoodMotivated: "💪",
	MoodStressed:  "😰",
	MoodLonely:    "😔",
}

// Keyword stems per mood, all lowercase. Matching is plain substring matching
// with no word-boundary check, so "sad" also matches inside "saddle" — kept
// that way on purpose for parity with the shipped classifier.
var moodKeywords = map[string][]string{
	MoodHappy: {
		"happy", "joy", "glad", "great", "awesome",
		"excited", "smile", "fun", "wonderful", "amazing",
	},
	MoodCalm: {
		"calm", "peace", "relax", "quiet", "chill",
		"serene", "rest", "breathe", "settled", "content",
	},
	MoodMotivated: {
		"motivat", "driven", "focus", "goal", "productive",
		"energ", "determin", "ambiti", "inspir", "ready",
	},
	MoodStressed: {
		"stress", "anxi", "overwhelm", "pressure", "worr",
		"panic", "nervous", "tense", "exam", "deadline",
	},
	MoodLonely: {
		"lonely", "alone", "isolat", "sad", "empty",
		"miss", "nobody", "unloved", "abandon", "ignored",
	},
}

// ClassifyMood maps free-form journal text to a mood label and its fixed
// score. Per mood it counts how many of that mood's keywords occur in the
// lowercased text (one increment per keyword present, regardless of how often
// it repeats); the strictly highest count wins and ties keep the earlier mood
// in moodOrder. Text with no matches at all, including empty input, defaults
// to Calm with score 1.
func ClassifyMood(text string) (string, int) {
	lowered := strings.ToLower(text)

	bestMood := MoodCalm
	bestCount := 0
	for _, mood := range moodOrder {
		count := 0
		for _, kw := range moodKeywords[mood] {
			if strings.Contains(lowered, kw) {
				count++
			}
		}
		if count > bestCount {
			bestMood = mood
			bestCount = count
		}
	}

	if bestCount == 0 {
		return MoodCalm, moodScores[MoodCalm]
	}
	return bestMood, moodScores[bestMood]
}

// MoodScore returns the fixed score for a mood label, or 0 for unknown labels.
func MoodScore(mood string) int {
	return moodScores[mood]
}

// Moods returns the static mood metadata in display order.
func Moods() []MoodInfo {
	out := make([]MoodInfo, 0, len(moodOrder))
	for _, m := range moodOrder {
		out = append(out, MoodInfo{
			Name:  m,
			Score: moodScores[m],
			Color: moodColors[m],
			Emoji: moodEmojis[m],
		})
	}
	return out
}

// IsValidMood reports whether label is one of the five fixed moods.
func IsValidMood(label string) bool {
	_, ok := moodScores[label]
	return ok
}
