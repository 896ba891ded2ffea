package symptoms

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, catalog *Catalog) {
	r.Get("/symptoms", listSymptomsHandler(catalog))
}

type symptomResponse struct {
	Name     string `json:"name"`
	Priority int    `json:"priority"`
}

// listSymptomsHandler godoc
// @Summary Vocabulario de síntomas
// @Description Síntomas reconocidos con su prioridad base (1-3). Los nombres fuera de esta lista se ignoran al registrar.
// @Tags symptoms
// @Produce json
// @Success 200 {array} symptomResponse
// @Router /symptoms [get]
func listSymptomsHandler(catalog *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all := catalog.All()
		out := make([]symptomResponse, 0, len(all))
		for _, s := range all {
			out = append(out, symptomResponse{Name: s.Name, Priority: s.Priority})
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(out)
	}
}
