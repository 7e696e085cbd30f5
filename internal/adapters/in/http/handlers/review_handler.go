// internal/adapters/in/http/handlers/review_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Madman-dev/ZZin/internal/adapters/in/http/middleware"
	"github.com/Madman-dev/ZZin/internal/application/usecase"
	"github.com/Madman-dev/ZZin/internal/domain/document"
)

// multipart overhead allowed on top of the image itself
const formSlack = 1 << 20

type ReviewHandler struct {
	catalog *usecase.CatalogUsecase
	submit  *usecase.ReviewSubmissionUsecase
}

func NewReviewHandler(catalog *usecase.CatalogUsecase, submit *usecase.ReviewSubmissionUsecase) *ReviewHandler {
	return &ReviewHandler{catalog: catalog, submit: submit}
}

// GET /reviews[?lenient=true]
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	res, err := h.catalog.ListReviews(r.Context(), parseBool(r.URL.Query().Get("lenient")))
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listBody(res.Items, res.Skipped))
}

// GET /reviews/{rid}
func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	rv, err := h.catalog.GetReview(r.Context(), chi.URLParam(r, "rid"))
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rv)
}

// GET /reviews/{rid}/image
func (h *ReviewHandler) Image(w http.ResponseWriter, r *http.Request) {
	url, err := h.catalog.ReviewImageURL(r.Context(), chi.URLParam(r, "rid"))
	if err != nil {
		writeErr(w, r, err)
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}

// POST /reviews
//
// multipart/form-data with an imgData file part and text fields, or a JSON
// object with imgData as base64.
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.CurrentUserUID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	raw, err := readSubmission(w, r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	in, err := usecase.ParseSubmissionFields(uid, raw)
	if err != nil {
		writeErr(w, r, err)
		return
	}

	res, err := h.submit.Submit(r.Context(), in)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	w.Header().Set("Location", "/reviews/"+res.RID)
	writeJSON(w, http.StatusCreated, res)
}

func readSubmission(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	r.Body = http.MaxBytesReader(w, r.Body, usecase.MaxImageBytes*2+formSlack)

	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mt {
	case "multipart/form-data":
		return readMultipart(r)
	case "application/json", "":
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		var raw map[string]any
		if err := dec.Decode(&raw); err != nil {
			return nil, errors.New("invalid json")
		}
		return raw, nil
	default:
		return nil, errors.New("unsupported content type " + mt)
	}
}

func readMultipart(r *http.Request) (map[string]any, error) {
	if err := r.ParseMultipartForm(usecase.MaxImageBytes + formSlack); err != nil {
		return nil, errors.New("invalid multipart form")
	}
	raw := make(map[string]any, len(r.MultipartForm.Value)+2)
	for k, vs := range r.MultipartForm.Value {
		if len(vs) > 0 {
			raw[k] = vs[0]
		}
	}

	f, hdr, err := r.FormFile(usecase.InputImgData)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return raw, nil
		}
		return nil, errors.New("invalid imgData part")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, usecase.MaxImageBytes+1))
	if err != nil {
		return nil, errors.New("read imgData part")
	}
	raw[usecase.InputImgData] = data
	if ct := strings.TrimSpace(hdr.Header.Get("Content-Type")); ct != "" {
		if _, set := raw[usecase.InputContentType]; !set {
			raw[usecase.InputContentType] = ct
		}
	}
	return raw, nil
}

type skippedDoc struct {
	ID    string `json:"id"`
	Field string `json:"field"`
	Error string `json:"error"`
}

func listBody[T any](items []T, skipped []*document.DecodeError) map[string]any {
	if items == nil {
		items = []T{}
	}
	body := map[string]any{"items": items}
	if len(skipped) > 0 {
		out := make([]skippedDoc, 0, len(skipped))
		for _, s := range skipped {
			out = append(out, skippedDoc{ID: s.ID, Field: s.Field, Error: s.Error()})
		}
		body["skipped"] = out
	}
	return body
}
