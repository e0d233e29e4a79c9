// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"hotel_search/internal/app"
	"hotel_search/internal/domain"
)

type Handlers struct {
	S        *app.SearchService
	validate *validator.Validate
}

func NewHandlers(s *app.SearchService) *Handlers {
	return &Handlers{S: s, validate: newValidator()}
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/hotels/search", h.search)
	s.mux.Get("/v1/hotels/{id}", h.getHotel)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETag hashes the marshalled form of v.
func calcETag(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag")
		return ""
	}
	sum := sha1.Sum(b)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`
}

// writeJSON sends v with a weak ETag computed over etagOf, answering 304
// when the client already holds that version.
func writeJSON(w http.ResponseWriter, r *http.Request, v, etagOf any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal response body")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	etag := calcETag(etagOf)
	if inm := r.Header.Get("If-None-Match"); inm != "" && etag != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	if etag != "" {
		w.Header().Set("ETag", etag)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func (h *Handlers) parse(w http.ResponseWriter, r *http.Request) (domain.SearchQuery, bool) {
	req, err := parseSearchRequest(r.URL.Query())
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid query", err.Error())
		return domain.SearchQuery{}, false
	}
	if err := h.validate.Struct(req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid query", describe(err))
		return domain.SearchQuery{}, false
	}
	return req.query(), true
}

func (h *Handlers) search(w http.ResponseWriter, r *http.Request) {
	q, ok := h.parse(w, r)
	if !ok {
		return
	}
	resp := h.S.Search(r.Context(), q)

	// searchId differs per call, so it is left out of the ETag
	stable := resp
	stable.SearchID = ""
	w.Header().Set("X-Search-Id", resp.SearchID)
	writeJSON(w, r, resp, stable)
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	q, ok := h.parse(w, r)
	if !ok {
		return
	}
	hotel, err := h.S.Hotel(r.Context(), id, q)
	if errors.Is(err, domain.ErrNotFound) {
		writeProblem(w, http.StatusNotFound, "Not Found", "hotel not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("hotel lookup failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	writeJSON(w, r, hotel, hotel)
}
