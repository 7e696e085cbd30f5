// internal/adapters/in/http/handlers/user_handler.go
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Madman-dev/ZZin/internal/application/usecase"
)

type UserHandler struct {
	uc *usecase.CatalogUsecase
}

func NewUserHandler(uc *usecase.CatalogUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// GET /users/{uid}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.uc.GetUser(r.Context(), chi.URLParam(r, "uid"))
	if err != nil {
		writeErr(w, r, err)
		return
	}
	// credentials never leave the server
	u.Password = nil
	writeJSON(w, http.StatusOK, u)
}

// GET /users/{uid}/exists
func (h *UserHandler) Exists(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	ok, err := h.uc.UserIDExists(r.Context(), uid)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"uid": uid, "exists": ok})
}
