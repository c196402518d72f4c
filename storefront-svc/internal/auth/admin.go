package auth

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

const AdminKeyHeader = "X-Admin-Key"

// AdminGuard protects dashboard routes with a shared key stored as a bcrypt
// hash. An empty hash disables the guard.
type AdminGuard struct {
	hash []byte
}

func NewAdminGuard(hash string) *AdminGuard {
	return &AdminGuard{hash: []byte(hash)}
}

func (g *AdminGuard) Enabled() bool {
	return len(g.hash) > 0
}

func (g *AdminGuard) Allow(key string) bool {
	if !g.Enabled() {
		return true
	}
	return key != "" && bcrypt.CompareHashAndPassword(g.hash, []byte(key)) == nil
}

func (g *AdminGuard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.Allow(r.Header.Get(AdminKeyHeader)) {
			writeMessage(w, http.StatusUnauthorized, "Not authorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
