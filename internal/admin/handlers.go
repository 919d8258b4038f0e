package admin

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/AgriVista/acreage-backend/internal/dashboard"
	"golang.org/x/crypto/bcrypt"
)

// ReloadHandler flushes the dataset cache so the next render cycle
// re-reads the input files. Guarded by an admin key checked against the
// bcrypt hash in ADMIN_KEY_HASH.
func ReloadHandler(w http.ResponseWriter, r *http.Request) {
	hash := os.Getenv("ADMIN_KEY_HASH")
	if hash == "" {
		http.Error(w, "Admin reload is not configured", http.StatusServiceUnavailable)
		return
	}

	key := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if key == "" {
		http.Error(w, "Missing admin key", http.StatusUnauthorized)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)); err != nil {
		http.Error(w, "Invalid admin key", http.StatusUnauthorized)
		return
	}

	dashboard.Loader.Flush()
	log.Println("[admin] dataset cache flushed")

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Cache flushed")
}
