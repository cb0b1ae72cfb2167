package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/campuscalm/campuscalm-backend/pkg/clientip"
	"golang.org/x/time/rate"
)

// Chat rate limits: the completion call costs real money upstream, so
// POST /api/chat gets a tight per-IP limiter. History reads are cheap and get
// a looser one.

const (
	chatSendRPS      = 0.1 // 6/min
	chatSendBurst    = 3
	chatHistoryRPS   = 0.5 // 30/min
	chatHistoryBurst = 20
	chatCleanupMin   = 5 * time.Minute
	chatLimiterTTL   = 30 * time.Minute
	chatSendPath     = "/api/chat"
	chatHistoryPath  = "/api/chat/history"
)

type chatLimiterEntry struct {
	limiter *rate.Limiter
	lastUse time.Time
}

var (
	chatEntries   = make(map[string]*chatLimiterEntry)
	chatEntriesMu sync.Mutex
	chatCleanup   bool
)

func getChatLimiter(ip string, send bool) *rate.Limiter {
	key := "history:" + ip
	if send {
		key = "send:" + ip
	}

	chatEntriesMu.Lock()
	defer chatEntriesMu.Unlock()
	startChatCleanupOnce()

	e, ok := chatEntries[key]
	if !ok {
		if send {
			e = &chatLimiterEntry{
				limiter: rate.NewLimiter(rate.Limit(chatSendRPS), chatSendBurst),
				lastUse: time.Now(),
			}
		} else {
			e = &chatLimiterEntry{
				limiter: rate.NewLimiter(rate.Limit(chatHistoryRPS), chatHistoryBurst),
				lastUse: time.Now(),
			}
		}
		chatEntries[key] = e
	}
	e.lastUse = time.Now()
	return e.limiter
}

func startChatCleanupOnce() {
	if chatCleanup {
		return
	}
	chatCleanup = true
	go func() {
		ticker := time.NewTicker(chatCleanupMin)
		defer ticker.Stop()
		for range ticker.C {
			chatEntriesMu.Lock()
			now := time.Now()
			for k, e := range chatEntries {
				if now.Sub(e.lastUse) > chatLimiterTTL {
					delete(chatEntries, k)
				}
			}
			chatEntriesMu.Unlock()
		}
	}()
}

// ChatRateLimit applies per-IP rate limiting to the chat endpoints only.
// POST /api/chat: 6/min burst 3. GET /api/chat/history: 30/min burst 20.
// Returns 429 with headers when exceeded.
func ChatRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		send := r.Method == http.MethodPost && r.URL.Path == chatSendPath
		history := r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, chatHistoryPath)
		if !send && !history {
			next.ServeHTTP(w, r)
			return
		}

		ip := clientip.RealClientIP(r)
		limiter := getChatLimiter(ip, send)

		limit := chatHistoryBurst
		if send {
			limit = chatSendBurst
		}

		if !limiter.Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"success":false,"message":"Too many chat requests. Please slow down."}`))
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(limit-1)) // Best-effort for debugging
		next.ServeHTTP(w, r)
	})
}
