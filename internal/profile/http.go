package profile

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jedipath/quiz-api/internal/entitlement"
	"github.com/jedipath/quiz-api/internal/quiz"
	httperrors "github.com/jedipath/quiz-api/pkg/http/errors"
)

// SessionCookieName identifies the anonymous quiz session.
const SessionCookieName = "jedi_session"

const sessionMaxAge = 7 * 24 * 60 * 60

const lockNotice = "*Complete your purchase to unlock the rest of your destiny.*"

// HTTPHandlers exposes the quiz and profile endpoints.
type HTTPHandlers struct {
	svc    *Service
	store  Store
	gate   *entitlement.Gate
	logger zerolog.Logger
}

func NewHTTPHandlers(svc *Service, store Store, gate *entitlement.Gate, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		svc:    svc,
		store:  store,
		gate:   gate,
		logger: logger.With().Str("component", "profile_http").Logger(),
	}
}

// HandleQuestions handles GET /v1/questions.
func (h *HTTPHandlers) HandleQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"questions": quiz.Questions,
	})
}

type generateRequest struct {
	Name    string         `json:"name"`
	Answers quiz.AnswerSet `json:"answers"`
}

type profileResponse struct {
	Profile         string      `json:"profile"`
	Data            *Attributes `json:"data"`
	SubmissionToken int64       `json:"submission_token"`
	Locked          bool        `json:"locked"`
	// Claimed reports the legacy client-side payment signal. It is a
	// display hint only and never unlocks content; Locked stays the
	// authoritative flag.
	Claimed bool `json:"claimed"`
}

// HandleGenerate handles POST /v1/profiles. The full markdown is only
// returned to entitled sessions; everyone else gets a preview and the
// stored profile stays server-side until payment confirms.
func (h *HTTPHandlers) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if req.Answers == nil {
		httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidRequest, "Missing answers", "answers")
		return
	}
	if err := quiz.Validate(req.Answers, quiz.Questions); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeIncompleteAnswers, err.Error())
		return
	}

	sessionID := h.ensureSession(w, r)

	seq, err := h.store.NextSeq(r.Context(), sessionID)
	if err != nil {
		// Generation still proceeds; the result just won't be retained.
		h.logger.Warn().Err(err).Msg("submission seq unavailable, skipping store")
		seq = 0
	}

	result, err := h.svc.Generate(r.Context(), req.Name, req.Answers)
	if err != nil {
		h.logger.Error().Err(err).Msg("profile generation failed")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeGenerationFailed, "Failed to generate profile")
		return
	}

	if seq > 0 {
		applied, err := h.store.Put(r.Context(), sessionID, seq, result)
		if err != nil {
			h.logger.Warn().Err(err).Msg("failed to store profile")
		} else if !applied {
			h.logger.Debug().Int64("seq", seq).Msg("submission superseded by a newer one")
		}
	}

	entitled := h.gate.IsEntitled(r)
	resp := profileResponse{
		Data:            result.Data,
		SubmissionToken: seq,
		Locked:          !entitled,
		Claimed:         entitled || entitlement.Claimed(r),
	}
	if entitled {
		resp.Profile = result.Profile
	} else {
		resp.Profile = preview(result.Profile)
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// HandleGetProfile handles GET /v1/profiles/me.
func (h *HTTPHandlers) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	if !h.gate.IsEntitled(r) {
		httperrors.RespondForbidden(w, httperrors.ErrCodeEntitlementRequired, "Unlock your destiny to view the full profile")
		return
	}

	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "No profile for this session")
		return
	}

	stored, err := h.store.Get(r.Context(), cookie.Value)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load profile")
		httperrors.RespondInternalError(w, "Failed to load profile")
		return
	}
	if stored == nil {
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "No profile for this session")
		return
	}

	h.respondJSON(w, http.StatusOK, profileResponse{
		Profile:         stored.Result.Profile,
		Data:            stored.Result.Data,
		SubmissionToken: stored.Seq,
		Locked:          false,
		Claimed:         true,
	})
}

func (h *HTTPHandlers) ensureSession(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	sessionID := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sessionID
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
	}
}

// preview keeps the profile header and first section, replacing the
// rest with a lock notice. Profiles too short to split still lose
// everything past the first block so unpaid sessions never see a full
// result.
func preview(profile string) string {
	blocks := strings.SplitN(profile, "\n\n", 4)
	if len(blocks) > 3 {
		return strings.Join(blocks[:3], "\n\n") + "\n\n" + lockNotice
	}
	return blocks[0] + "\n\n" + lockNotice
}
