package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ux-career-assessment/internal/app"
	"ux-career-assessment/internal/domain"
	"ux-career-assessment/internal/logger"
	"ux-career-assessment/internal/scoring"
)

type AssessmentHandler struct {
	service *app.AssessmentService
	loader  *app.ContentLoader
	logger  *zap.Logger
}

func NewAssessmentHandler(service *app.AssessmentService, loader *app.ContentLoader, log *zap.Logger) *AssessmentHandler {
	return &AssessmentHandler{service: service, loader: loader, logger: logger.OrNop(log)}
}

type answersRequest struct {
	Answers map[string]any `json:"answers"`
}

type completeResponse struct {
	ID      string             `json:"id"`
	Results domain.QuizResults `json:"results"`
}

// GET /api/questions
func (h *AssessmentHandler) Questions(c *gin.Context) {
	questions, err := h.service.Questions(c.Request.Context())
	if err != nil {
		h.logger.Error("load questions", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "questions_unavailable", domain.ErrQuestionBankNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

// POST /api/assessments
// body: { "answers": { "Q1": 4, ... } }
func (h *AssessmentHandler) Complete(c *gin.Context) {
	answers, ok := h.bindAnswers(c)
	if !ok {
		return
	}
	stored, err := h.service.Complete(c.Request.Context(), answers)
	if err != nil {
		h.scoringError(c, err)
		return
	}
	c.JSON(http.StatusCreated, completeResponse{ID: stored.ID, Results: stored.Results})
}

// POST /api/assessments/precompute
// body: { "answers": { ... } } with at least half of the questions answered.
func (h *AssessmentHandler) Precompute(c *gin.Context) {
	answers, ok := h.bindAnswers(c)
	if !ok {
		return
	}
	res, ready, err := h.service.Precompute(c.Request.Context(), answers)
	if err != nil {
		h.scoringError(c, err)
		return
	}
	if !ready {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"results": res})
}

// GET /api/results
func (h *AssessmentHandler) History(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"results": h.service.History(c.Request.Context())})
}

// GET /api/results/:id
func (h *AssessmentHandler) Restore(c *gin.Context) {
	stored, err := h.service.Restore(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "result_not_found", err)
		return
	}
	c.JSON(http.StatusOK, stored)
}

// GET /api/latest-result
func (h *AssessmentHandler) Latest(c *gin.Context) {
	stored, err := h.service.Latest(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusNotFound, "result_not_found", err)
		return
	}
	c.JSON(http.StatusOK, stored)
}

// DELETE /api/results/:id
func (h *AssessmentHandler) Forget(c *gin.Context) {
	if err := h.service.Forget(c.Request.Context(), c.Param("id")); err != nil {
		h.logger.Warn("delete result", zap.String("id", c.Param("id")), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "delete_failed", errors.New("failed to delete result"))
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/results/:id/content
func (h *AssessmentHandler) Content(c *gin.Context) {
	stored, err := h.service.Restore(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "result_not_found", err)
		return
	}
	sections, err := h.loader.LoadAll(c.Request.Context(), stored.Results)
	if err != nil {
		// Client went away.
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": stored.ID, "sections": sections})
}

func (h *AssessmentHandler) bindAnswers(c *gin.Context) (domain.Answers, bool) {
	var req answersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err)
		return nil, false
	}
	answers, err := scoring.ParseAnswers(req.Answers)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_answers", err)
		return nil, false
	}
	return answers, true
}

func (h *AssessmentHandler) scoringError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrInvalidAnswers) {
		respondError(c, http.StatusBadRequest, "invalid_answers", err)
		return
	}
	respondError(c, http.StatusInternalServerError, "calculation_failed", domain.ErrCalculationFailed)
}
