package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func floatPtr(f float64) *float64 { return &f }

func TestExamProgressBeforeScore(t *testing.T) {
	// No score yet: the bar shows how ambitious the target is.
	exam := Exam{MaxMarks: 100, TargetMarks: 80}
	assert.InDelta(t, 80.0, exam.Progress(), 0.001)

	exam = Exam{MaxMarks: 200, TargetMarks: 150}
	assert.InDelta(t, 75.0, exam.Progress(), 0.001)
}

func TestExamProgressAfterScore(t *testing.T) {
	tests := []struct {
		name     string
		obtained float64
		target   float64
		max      float64
		want     float64
	}{
		{"under target", 60, 80, 100, 75},
		{"exactly target", 80, 80, 100, 100},
		{"over target capped at 100", 95, 80, 100, 100},
		{"zero score", 0, 80, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exam := Exam{MaxMarks: tt.max, TargetMarks: tt.target, ObtainedMarks: floatPtr(tt.obtained)}
			assert.InDelta(t, tt.want, exam.Progress(), 0.001)
		})
	}
}

func TestExamProgressBranchesAreDistinct(t *testing.T) {
	// Same numbers, different metric: 80/100 target-progress vs a recorded 80
	// against target 80 (which hits 100%). The nil branch must not be unified
	// with the scored branch.
	unscored := Exam{MaxMarks: 100, TargetMarks: 80}
	scored := Exam{MaxMarks: 100, TargetMarks: 80, ObtainedMarks: floatPtr(80)}
	assert.InDelta(t, 80.0, unscored.Progress(), 0.001)
	assert.InDelta(t, 100.0, scored.Progress(), 0.001)
}

func TestValidateExam(t *testing.T) {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		subject string
		date    time.Time
		max     float64
		target  float64
		wantErr error
	}{
		{"valid", "Algorithms", date, 100, 80, nil},
		{"missing subject", "", date, 100, 80, ErrExamSubjectRequired},
		{"missing date", "Algorithms", time.Time{}, 100, 80, ErrExamDateRequired},
		{"zero max", "Algorithms", date, 0, 80, ErrExamMaxMarks},
		{"negative max", "Algorithms", date, -10, 80, ErrExamMaxMarks},
		{"zero target", "Algorithms", date, 100, 0, ErrExamTargetMarks},
		{"target over max", "Algorithms", date, 100, 120, ErrExamTargetOverMax},
		{"target equals max ok", "Algorithms", date, 100, 100, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateExam(tt.subject, tt.date, tt.max, tt.target)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateObtainedMarks(t *testing.T) {
	assert.NoError(t, ValidateObtainedMarks(0))
	assert.NoError(t, ValidateObtainedMarks(95.5))
	assert.ErrorIs(t, ValidateObtainedMarks(-1), ErrExamObtainedMarks)
}
