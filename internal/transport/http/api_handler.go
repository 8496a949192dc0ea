package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"puzzle-service/internal/app"
	"puzzle-service/internal/domain"
)

// APIHandler serves identity, score and credential requests.
type APIHandler struct {
	service *app.PuzzleService
}

func NewAPIHandler(service *app.PuzzleService) *APIHandler {
	return &APIHandler{service: service}
}

type menuResponse struct {
	Kinds []domain.Kind `json:"kinds"`
}

type identityRequest struct {
	Name string `json:"name"`
}

type credentialRequest struct {
	Credential string `json:"credential"`
}

func (h *APIHandler) Menu(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, menuResponse{Kinds: h.service.Menu(r.URL.Query().Get("name"))})
}

func (h *APIHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req identityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid identity payload")
		return
	}
	profile, err := h.service.SignIn(r.Context(), req.Name)
	switch {
	case errors.Is(err, domain.ErrEmptyName):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		log.Warn().Err(err).Str("user", profile.UserName).Msg("identity not persisted")
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *APIHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.service.SignOut(r.Context()); err != nil {
		log.Warn().Err(err).Msg("sign out")
		writeError(w, http.StatusInternalServerError, "sign out failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *APIHandler) Score(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.Profile()
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *APIHandler) SetCredential(w http.ResponseWriter, r *http.Request) {
	var req credentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid credential payload")
		return
	}
	if err := h.service.SetCredential(r.Context(), req.Credential); err != nil {
		log.Warn().Err(err).Msg("set credential")
		writeError(w, http.StatusInternalServerError, "credential not stored")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *APIHandler) Session(w http.ResponseWriter, r *http.Request) {
	loop, ok := h.service.Session(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, loop.Snapshot())
}
