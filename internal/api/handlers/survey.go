package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/shopbay/storefront-platform/internal/api/middleware"
	"github.com/shopbay/storefront-platform/internal/models"
	service "github.com/shopbay/storefront-platform/internal/services"
	"github.com/shopbay/storefront-platform/internal/utils"
	"github.com/shopbay/storefront-platform/internal/utils/response"
)

type SurveyHandler struct {
	surveyService service.SurveyService
	validator     *validator.Validate
}

func NewSurveyHandler(surveyService service.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveyService: surveyService, validator: validator.New()}
}

// Submit accepts one response per email; the first hundred get a discount
// code back in the payload.
func (h *SurveyHandler) Submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.SubmitSurveyRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		result, err := h.surveyService.Submit(r.Context(), &req)
		if err != nil {
			logger.Warn("Survey submission rejected", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		if result.Eligible {
			logger.Info("Survey discount code issued", slog.Int("sequence", result.Sequence))
		}

		response.Success(w, http.StatusCreated, result)
	}
}

func (h *SurveyHandler) Status() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		status, err := h.surveyService.Status(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, status)
	}
}
