package middlewares

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// GlobalRateLimit limits every client IP to MaxRequests per second.
func (m *Middlewares) GlobalRateLimit() func(next http.Handler) http.Handler {
	return httprate.LimitByIP(m.InternalConfig.App.MaxRequests, time.Second)
}
