package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/zhuifan/internal/models"
	"github.com/desertthunder/zhuifan/internal/repositories"
	"github.com/desertthunder/zhuifan/internal/shared"
)

const maxBodyBytes = 1 << 20

// AnimeStore is the persistence the anime routes need. [repositories.AnimeRepository] implements it.
type AnimeStore interface {
	List() ([]models.Anime, error)
	ListReleasing(day models.Weekday) ([]models.Anime, error)
	Get(id int64) (*models.Anime, error)
	Create(d models.Draft) (*models.Anime, error)
	Update(id int64, d models.Draft) (*models.Anime, error)
	Delete(id int64) error
	Now() time.Time
}

var _ AnimeStore = (*repositories.AnimeRepository)(nil)

// AnimeHandler serves the /api/animes routes.
type AnimeHandler struct {
	store  AnimeStore
	logger *log.Logger
	mux    *http.ServeMux
}

// NewAnimeHandler creates an [AnimeHandler] backed by store.
func NewAnimeHandler(store AnimeStore, logger *log.Logger) *AnimeHandler {
	if logger == nil {
		logger = log.Default()
	}

	h := &AnimeHandler{store: store, logger: logger, mux: http.NewServeMux()}
	h.mux.HandleFunc("GET /api/animes", h.list)
	h.mux.HandleFunc("POST /api/animes", h.create)
	h.mux.HandleFunc("GET /api/animes/today", h.today)
	h.mux.HandleFunc("GET /api/animes/{id}", h.get)
	h.mux.HandleFunc("PUT /api/animes/{id}", h.update)
	h.mux.HandleFunc("DELETE /api/animes/{id}", h.delete)
	return h
}

// Routes returns the HTTP routes this handler serves.
func (h *AnimeHandler) Routes() []string {
	return []string{"/api/animes", "/api/animes/"}
}

// ServeHTTP dispatches to the route matching method and path.
func (h *AnimeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *AnimeHandler) list(w http.ResponseWriter, r *http.Request) {
	animes, err := h.store.List()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, animes)
}

func (h *AnimeHandler) today(w http.ResponseWriter, r *http.Request) {
	day := models.WeekdayOf(h.store.Now())
	animes, err := h.store.ListReleasing(day)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.TodayResponse{Today: day, Animes: animes})
}

func (h *AnimeHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	a, err := h.store.Get(id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *AnimeHandler) create(w http.ResponseWriter, r *http.Request) {
	draft, ok := decodeDraft(w, r)
	if !ok {
		return
	}
	a, err := h.store.Create(draft)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *AnimeHandler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	draft, ok := decodeDraft(w, r)
	if !ok {
		return
	}
	a, err := h.store.Update(id, draft)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *AnimeHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.store.Delete(id); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

// fail maps store errors onto status codes. Unexpected errors are logged and hidden from the client.
func (h *AnimeHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		writeError(w, http.StatusNotFound, "Anime not found")
	case errors.Is(err, shared.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, validationDetail(err))
	default:
		h.logger.Error("store error", "method", r.Method, "path", r.URL.Path, "request_id", RequestIDFrom(r.Context()), "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// validationDetail strips the wrapping context so the client sees only the field messages.
func validationDetail(err error) string {
	prefix := shared.ErrInvalidInput.Error() + ": "
	for e := err; e != nil; e = errors.Unwrap(e) {
		if detail, ok := strings.CutPrefix(e.Error(), prefix); ok {
			return detail
		}
	}
	return err.Error()
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusNotFound, "Anime not found")
		return 0, false
	}
	return id, true
}

func decodeDraft(w http.ResponseWriter, r *http.Request) (models.Draft, bool) {
	var d models.Draft
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return d, false
	}
	return d, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
