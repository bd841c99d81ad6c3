package rpc

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/unrolled/render"
	"golang.org/x/time/rate"
)

// limiterStore keeps one token bucket per remote host.
type limiterStore struct {
	sync.Mutex
	entries map[string]*limiterEntry
	rps     rate.Limit
	burst   int
	idleTTL time.Duration
}

type limiterEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func newLimiterStore(rps float64, burst int) *limiterStore {
	return &limiterStore{
		entries: make(map[string]*limiterEntry),
		rps:     rate.Limit(rps),
		burst:   burst,
		idleTTL: 15 * time.Minute,
	}
}

func (s *limiterStore) get(key string) *rate.Limiter {
	now := time.Now()

	s.Lock()
	defer s.Unlock()

	if ent, ok := s.entries[key]; ok {
		ent.lastSeen = now
		return ent.lim
	}
	if len(s.entries) > 4096 {
		s.cleanup(now)
	}
	lim := rate.NewLimiter(s.rps, s.burst)
	s.entries[key] = &limiterEntry{lim: lim, lastSeen: now}
	return lim
}

func (s *limiterStore) cleanup(now time.Time) {
	cutoff := now.Add(-s.idleTTL)
	for k, ent := range s.entries {
		if ent.lastSeen.Before(cutoff) {
			delete(s.entries, k)
		}
	}
}

func remoteHost(r *http.Request) string {
	addr := strings.TrimSpace(r.RemoteAddr)
	host, _, err := net.SplitHostPort(addr)
	if err == nil && host != "" {
		return host
	}
	if addr != "" {
		return addr
	}
	return "unknown"
}

func handleRateLimit(handler http.Handler, store *limiterStore) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !store.get(remoteHost(r)).Allow() {
			w.Header().Set("Retry-After", "1")
			render.New().JSON(w, http.StatusTooManyRequests, map[string]interface{}{"error": "too many requests"})
			return
		}
		handler.ServeHTTP(w, r)
	})
}
