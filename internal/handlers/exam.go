package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/campuscalm/campuscalm-backend/internal/database"
	"github.com/campuscalm/campuscalm-backend/internal/models"
	"github.com/campuscalm/campuscalm-backend/internal/services"
	"github.com/google/uuid"
)

const examDateLayout = "2006-01-02"

type CreateExamRequest struct {
	Subject     string  `json:"subject"`
	Date        string  `json:"date"` // YYYY-MM-DD
	MaxMarks    float64 `json:"max_marks"`
	TargetMarks float64 `json:"target_marks"`
}

type UpdateExamRequest struct {
	ID          string  `json:"id"`
	Subject     string  `json:"subject"`
	Date        string  `json:"date"`
	MaxMarks    float64 `json:"max_marks"`
	TargetMarks float64 `json:"target_marks"`
}

type RecordScoreRequest struct {
	ExamID        string  `json:"exam_id"`
	ObtainedMarks float64 `json:"obtained_marks"`
}

// ExamView is an exam row plus the derived progress percentage the dashboard
// renders.
type ExamView struct {
	models.Exam
	Progress float64 `json:"progress"`
}

type ExamResponse struct {
	Success        bool      `json:"success"`
	Message        string    `json:"message"`
	Exam           *ExamView `json:"exam,omitempty"`
	WellnessPoints int       `json:"wellness_points,omitempty"`
}

type GetExamsResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message,omitempty"`
	Exams   []ExamView `json:"exams"`
}

func parseExamDate(s string) (time.Time, error) {
	return time.Parse(examDateLayout, s)
}

// CreateExam adds an exam with a target score. All validation — including
// target>max — happens before any write. On success awards +2 wellness points
// and writes a notification (best-effort, the exam stands either way).
func CreateExam(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateExamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	date, err := parseExamDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Date must be in YYYY-MM-DD format")
		return
	}
	if err := models.ValidateExam(req.Subject, date, req.MaxMarks, req.TargetMarks); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	exam := models.Exam{
		ID:          uuid.New(),
		UserID:      userID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
		Subject:     req.Subject,
		Date:        date,
		MaxMarks:    req.MaxMarks,
		TargetMarks: req.TargetMarks,
	}

	_, err = database.PostgresDB.ExecContext(ctx, `
		INSERT INTO exams (id, user_id, created_at, updated_at, subject, exam_date, max_marks, target_marks)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, exam.ID, exam.UserID, exam.CreatedAt, exam.UpdatedAt, exam.Subject, exam.Date, exam.MaxMarks, exam.TargetMarks)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save exam")
		return
	}

	newTotal, err := services.ApplyPointsDelta(ctx, userID, services.PointsExamAdded)
	if err != nil {
		log.Printf("[Exam] points update failed for user %s: %v", userID, err)
	}
	services.NotifyUser(userID,
		"Exam added",
		fmt.Sprintf("%s on %s is on your tracker. +%d wellness points!", exam.Subject, exam.Date.Format(examDateLayout), services.PointsExamAdded),
		models.NotificationExam)

	writeJSON(w, http.StatusCreated, ExamResponse{
		Success:        true,
		Message:        "Exam added",
		Exam:           &ExamView{Exam: exam, Progress: exam.Progress()},
		WellnessPoints: newTotal,
	})
}

// GetExams lists the user's exams soonest-first, each with its derived
// progress percentage.
func GetExams(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	rows, err := database.PostgresDB.QueryContext(ctx, `
		SELECT id, user_id, created_at, updated_at, subject, exam_date, max_marks, target_marks, obtained_marks
		FROM exams
		WHERE user_id = $1
		ORDER BY exam_date ASC, created_at ASC
	`, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load exams")
		return
	}
	defer rows.Close()

	exams := make([]ExamView, 0)
	for rows.Next() {
		var e models.Exam
		var obtained sql.NullFloat64
		if err := rows.Scan(&e.ID, &e.UserID, &e.CreatedAt, &e.UpdatedAt, &e.Subject, &e.Date, &e.MaxMarks, &e.TargetMarks, &obtained); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to load exams")
			return
		}
		if obtained.Valid {
			v := obtained.Float64
			e.ObtainedMarks = &v
		}
		exams = append(exams, ExamView{Exam: e, Progress: e.Progress()})
	}
	if err := rows.Err(); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load exams")
		return
	}

	writeJSON(w, http.StatusOK, GetExamsResponse{
		Success: true,
		Exams:   exams,
	})
}

// UpdateExam edits an exam's subject, date or marks with the same validation
// as creation. Owner-only via the WHERE clause.
func UpdateExam(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req UpdateExamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	examID, err := uuid.Parse(req.ID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "A valid exam id is required")
		return
	}
	date, err := parseExamDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Date must be in YYYY-MM-DD format")
		return
	}
	if err := models.ValidateExam(req.Subject, date, req.MaxMarks, req.TargetMarks); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := database.PostgresDB.ExecContext(ctx, `
		UPDATE exams
		SET subject = $1, exam_date = $2, max_marks = $3, target_marks = $4, updated_at = NOW()
		WHERE id = $5 AND user_id = $6
	`, req.Subject, date, req.MaxMarks, req.TargetMarks, examID, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update exam")
		return
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		writeError(w, http.StatusNotFound, "Exam not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Exam updated",
	})
}

// RecordScore stores the obtained marks for an exam. The normal flow records
// a score once, but re-recording is allowed: the schema doesn't forbid it and
// users do fix typos.
func RecordScore(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req RecordScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	examID, err := uuid.Parse(req.ExamID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "A valid exam id is required")
		return
	}
	if err := models.ValidateObtainedMarks(req.ObtainedMarks); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var e models.Exam
	var obtained sql.NullFloat64
	err = database.PostgresDB.QueryRowContext(ctx, `
		UPDATE exams
		SET obtained_marks = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
		RETURNING id, user_id, created_at, updated_at, subject, exam_date, max_marks, target_marks, obtained_marks
	`, req.ObtainedMarks, examID, userID).Scan(
		&e.ID, &e.UserID, &e.CreatedAt, &e.UpdatedAt, &e.Subject, &e.Date, &e.MaxMarks, &e.TargetMarks, &obtained)
	if err != nil {
		if err == sql.ErrNoRows {
			writeError(w, http.StatusNotFound, "Exam not found")
		} else {
			writeError(w, http.StatusInternalServerError, "Failed to record score")
		}
		return
	}
	if obtained.Valid {
		v := obtained.Float64
		e.ObtainedMarks = &v
	}

	services.NotifyUser(userID,
		"Score recorded",
		fmt.Sprintf("You scored %.0f/%.0f in %s.", req.ObtainedMarks, e.MaxMarks, e.Subject),
		models.NotificationScore)

	writeJSON(w, http.StatusOK, ExamResponse{
		Success: true,
		Message: "Score recorded",
		Exam:    &ExamView{Exam: e, Progress: e.Progress()},
	})
}

// DeleteExam removes one of the user's own exams (?id=...).
func DeleteExam(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	examID, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "A valid exam id is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := database.PostgresDB.ExecContext(ctx, `
		DELETE FROM exams WHERE id = $1 AND user_id = $2
	`, examID, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete exam")
		return
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		writeError(w, http.StatusNotFound, "Exam not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Exam deleted",
	})
}
