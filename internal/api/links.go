package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/linkdeck/linkdeck/internal/auth"
	"github.com/linkdeck/linkdeck/internal/ingest"
	"github.com/linkdeck/linkdeck/internal/metrics"
	"github.com/linkdeck/linkdeck/internal/store"
)

// linksAPIHandler provides REST handlers for saved links.
type linksAPIHandler struct {
	ingest *ingest.Service
	links  store.LinkStoreIface
}

// registerLinkRoutes registers link routes on r.
func registerLinkRoutes(r chi.Router, svc *ingest.Service, links store.LinkStoreIface) {
	h := &linksAPIHandler{ingest: svc, links: links}
	r.Get("/links", h.List)
	r.Post("/links", h.Create)
	r.Delete("/links/{id}", h.Delete)
}

// List returns the caller's links, newest first.
// GET /api/v1/links
//
// @Summary      List links
// @Description  Returns links owned by the caller, newest first. Paginated by opaque cursor.
// @Tags         Links
// @Accept       json
// @Produce      json
// @Param        cursor  query     string  false  "Opaque pagination cursor"
// @Param        limit   query     int     false  "Page size, default 50, max 200"
// @Success      200     {object}  LinkListResponse
// @Failure      401     {object}  ErrorResponse
// @Failure      500     {object}  ErrorResponse
// @Security     BearerToken
// @Router       /links [get]
func (h *linksAPIHandler) List(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "UNAUTHORIZED")
		return
	}

	cursor, limit := parsePagination(r)
	before := decodeCursor(cursor)

	links, err := h.links.ListByOwnerPage(r.Context(), user.ID, before, limit)
	if err != nil {
		log.Printf("api: list links for %s: %v", user.ID, err)
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	resp := &LinkListResponse{Links: make([]LinkResponse, 0, len(links))}
	for _, l := range links {
		resp.Links = append(resp.Links, toLinkResponse(l))
	}
	if len(links) == limit {
		c := encodeCursor(links[len(links)-1].CreatedAt)
		resp.NextCursor = &c
	}

	writeJSON(w, http.StatusOK, resp)
}

// Create saves a new link for the caller. Metadata resolution happens inline;
// a link whose metadata could not be resolved is still created.
// POST /api/v1/links
//
// @Summary      Save a link
// @Description  Saves a URL for the caller, enriching it with page metadata when available.
// @Tags         Links
// @Accept       json
// @Produce      json
// @Param        body  body      CreateLinkRequest  true  "Link to save"
// @Success      201   {object}  LinkResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      503   {object}  ErrorResponse
// @Security     BearerToken
// @Router       /links [post]
func (h *linksAPIHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "UNAUTHORIZED")
		return
	}

	var req CreateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	link, err := h.ingest.AddLink(r.Context(), req.URL, user.ID)
	if err != nil {
		if errors.Is(err, store.ErrURLInvalid) {
			writeError(w, http.StatusBadRequest, "url must be an absolute http or https URL", "INVALID_URL")
			return
		}
		log.Printf("api: create link %q: %v", req.URL, err)
		if isDBLockError(err) {
			writeError(w, http.StatusServiceUnavailable, "server is busy, please retry", "DB_BUSY")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	writeJSON(w, http.StatusCreated, toLinkResponse(link))
}

// Delete removes a link owned by the caller.
// DELETE /api/v1/links/{id}
//
// @Summary      Delete a link
// @Description  Deletes a link by ID. Links owned by other users appear as not found.
// @Tags         Links
// @Accept       json
// @Produce      json
// @Param        id   path  string  true  "Link ID"
// @Success      204
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /links/{id} [delete]
func (h *linksAPIHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "UNAUTHORIZED")
		return
	}

	id := chi.URLParam(r, "id")
	err := h.links.DeleteByIDAndOwner(r.Context(), id, user.ID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found", "NOT_FOUND")
		return
	}
	if err != nil {
		log.Printf("api: delete link %s: %v", id, err)
		if isDBLockError(err) {
			writeError(w, http.StatusServiceUnavailable, "server is busy, please retry", "DB_BUSY")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	metrics.LinksDeletedTotal.Inc()
	w.WriteHeader(http.StatusNoContent)
}

func toLinkResponse(l *store.Link) LinkResponse {
	return LinkResponse{
		ID:          l.ID,
		URL:         l.URL,
		Title:       l.Title,
		Description: l.Description,
		ImageURL:    l.ImageURL,
		CreatedAt:   l.CreatedAt,
	}
}
