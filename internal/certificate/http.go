package certificate

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/jedipath/quiz-api/internal/entitlement"
	"github.com/jedipath/quiz-api/internal/metrics"
	httperrors "github.com/jedipath/quiz-api/pkg/http/errors"
)

// HTTPHandler serves certificate downloads to entitled sessions.
type HTTPHandler struct {
	gate   *entitlement.Gate
	logger zerolog.Logger
}

func NewHTTPHandler(gate *entitlement.Gate, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		gate:   gate,
		logger: logger.With().Str("component", "certificate_http").Logger(),
	}
}

type renderRequest struct {
	Name     string   `json:"name"`
	Color    string   `json:"color"`
	Forms    []string `json:"forms"`
	Portrait *string  `json:"portrait"`
}

// HandleRender handles POST /v1/certificates.
func (h *HTTPHandler) HandleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	if !h.gate.IsEntitled(r) {
		httperrors.RespondForbidden(w, httperrors.ErrCodeEntitlementRequired, "Unlock your destiny before downloading the certificate")
		return
	}

	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if req.Name == "" {
		req.Name = "Padawan"
	}
	if req.Color == "" {
		req.Color = "blue"
	}
	if len(req.Forms) == 0 {
		httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, "At least one form is required", "forms")
		return
	}

	pdfBytes, err := Render(req.Name, req.Color, req.Forms)
	if err != nil {
		h.logger.Error().Err(err).Msg("certificate rendering failed")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeCertificateFailed, "Failed to create certificate")
		return
	}

	metrics.CertificatesTotal.Inc()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="jedi-certificate.pdf"`)
	w.Header().Set("Content-Length", fmt.Sprint(len(pdfBytes)))
	w.Write(pdfBytes)
}
