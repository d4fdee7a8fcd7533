package handlers

import "net/http"

func Home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Email triage API is up",
		"status":    "healthy",
		"endpoints": []string{"/api/classify", "/api/respostas", "/health"},
	})
}

func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
