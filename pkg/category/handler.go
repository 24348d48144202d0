package category

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

type CategoriesDTO struct {
	Kind       string   `json:"type"`
	Categories []string `json:"categories"`
}

type Handler struct {
	vocabulary Vocabulary
}

func NewHandler(vocabulary Vocabulary) *Handler {
	return &Handler{vocabulary: vocabulary}
}

// GetCategories serves the vocabulary list for one kind, for populating the
// category selector after the kind selector changes.
func (handler *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing categories")
	w.Header().Set("Content-Type", "application/json")

	kind := r.URL.Query().Get("type")
	categories, ok := handler.vocabulary.ForKind(kind)
	if !ok {
		http.Error(w, "unknown transaction type", http.StatusBadRequest)
		return
	}

	dto := CategoriesDTO{Kind: kind, Categories: categories}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
