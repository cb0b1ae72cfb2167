package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Exam is an upcoming (or completed) exam with a target score. ObtainedMarks
// is nil until the user records a result; the schema allows re-recording even
// though the normal flow sets it exactly once.
type Exam struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Subject       string    `json:"subject"`
	Date          time.Time `json:"date"`
	MaxMarks      float64   `json:"max_marks"`
	TargetMarks   float64   `json:"target_marks"`
	ObtainedMarks *float64  `json:"obtained_marks"`
}

// Validation errors for exam submissions. Checked before any write happens.
var (
	ErrExamSubjectRequired = errors.New("subject is required")
	ErrExamDateRequired    = errors.New("exam date is required")
	ErrExamMaxMarks        = errors.New("max marks must be greater than zero")
	ErrExamTargetMarks     = errors.New("target marks must be greater than zero")
	ErrExamTargetOverMax   = errors.New("target marks cannot exceed max marks")
	ErrExamObtainedMarks   = errors.New("obtained marks cannot be negative")
)

// ValidateExam checks the fields of a new or edited exam. The target>max case
// must be rejected here, before anything is persisted.
func ValidateExam(subject string, date time.Time, maxMarks, targetMarks float64) error {
	if subject == "" {
		return ErrExamSubjectRequired
	}
	if date.IsZero() {
		return ErrExamDateRequired
	}
	if maxMarks <= 0 {
		return ErrExamMaxMarks
	}
	if targetMarks <= 0 {
		return ErrExamTargetMarks
	}
	if targetMarks > maxMarks {
		return ErrExamTargetOverMax
	}
	return nil
}

// ValidateObtainedMarks checks a score being recorded for an exam.
func ValidateObtainedMarks(obtained float64) error {
	if obtained < 0 {
		return ErrExamObtainedMarks
	}
	return nil
}

// Progress returns the percentage shown on the exam's progress bar.
//
// The two branches are intentionally different metrics sharing one bar:
// before a score is recorded the bar shows how ambitious the target is
// (target/max); after a score exists it shows performance against the target,
// capped at 100. Do not unify them.
func (e *Exam) Progress() float64 {
	if e.ObtainedMarks == nil {
		return e.TargetMarks / e.MaxMarks * 100
	}
	p := *e.ObtainedMarks / e.TargetMarks * 100
	if p > 100 {
		return 100
	}
	return p
}
