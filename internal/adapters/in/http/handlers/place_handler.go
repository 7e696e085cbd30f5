// internal/adapters/in/http/handlers/place_handler.go
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Madman-dev/ZZin/internal/application/usecase"
	placedom "github.com/Madman-dev/ZZin/internal/domain/place"
)

type PlaceHandler struct {
	uc *usecase.CatalogUsecase
}

func NewPlaceHandler(uc *usecase.CatalogUsecase) *PlaceHandler {
	return &PlaceHandler{uc: uc}
}

// GET /places[?lenient=true]
// GET /places?companion=&condition=&kindOfFood=&city=&town=
//
// Any keyword switches to matching, which always reads fail-fast. town=전체
// matches every town of the city.
func (h *PlaceHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := placedom.Filter{
		Companion:  q.Get("companion"),
		Condition:  q.Get("condition"),
		KindOfFood: q.Get("kindOfFood"),
		City:       q.Get("city"),
		Town:       q.Get("town"),
	}
	if !f.IsZero() {
		items, err := h.uc.MatchPlaces(r.Context(), f)
		if err != nil {
			writeErr(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, listBody(items, nil))
		return
	}

	res, err := h.uc.ListPlaces(r.Context(), parseBool(q.Get("lenient")))
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listBody(res.Items, res.Skipped))
}

// GET /places/{pid}
func (h *PlaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.uc.GetPlace(r.Context(), chi.URLParam(r, "pid"))
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
