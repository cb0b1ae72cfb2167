package routes

import (
	"github.com/campuscalm/campuscalm-backend/internal/handlers"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(r *chi.Mux) {
	// Auth routes
	r.Post("/api/auth/signup", handlers.Signup)
	r.Post("/api/auth/signin", handlers.Signin)
	r.Get("/api/auth/me", handlers.GetMe)
	r.Post("/api/auth/signout", handlers.Signout)

	// Profile routes
	r.Get("/api/profile", handlers.GetProfile)
	r.Put("/api/profile", handlers.UpdateProfile)
	r.Post("/api/profile/avatar", handlers.UploadAvatar)

	// Journal routes
	r.Post("/api/journals", handlers.CreateJournal)
	r.Get("/api/journals", handlers.GetJournals)
	r.Delete("/api/journals", handlers.DeleteJournal)

	// Exam tracker routes
	r.Post("/api/exams", handlers.CreateExam)
	r.Get("/api/exams", handlers.GetExams)
	r.Put("/api/exams", handlers.UpdateExam)
	r.Put("/api/exams/score", handlers.RecordScore)
	r.Delete("/api/exams", handlers.DeleteExam)

	// Wellness points + quick actions
	r.Get("/api/points", handlers.GetPoints)
	r.Post("/api/activities", handlers.RecordActivity)

	// Mood metadata and insights
	r.Get("/api/moods", handlers.GetMoods)
	r.Get("/api/insights/moods", handlers.GetMoodInsights)

	// Supportive chat (completion API with canned fallback) + history
	r.Post("/api/chat", handlers.Chat)
	r.Get("/api/chat/history", handlers.GetChatHistory)

	// Notifications
	r.Get("/api/notifications", handlers.GetNotifications)
	r.Put("/api/notifications/read", handlers.MarkNotificationsRead)
}
