package handlers

import (
	"log/slog"
	"net/http"
)

// Home is the landing endpoint; rendering proper is handled elsewhere.
func Home(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, logger, map[string]string{"message": "welcome to mediamaster"})
	}
}
