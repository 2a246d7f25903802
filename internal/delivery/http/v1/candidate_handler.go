package v1

import (
	"net/http"
	"time"

	"go-staffing-backend/internal/delivery/http/response"
	"go-staffing-backend/internal/domain"
	"go-staffing-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	candidateUC domain.CandidateUsecase
}

func NewCandidateHandler(r *gin.RouterGroup, candidateUC domain.CandidateUsecase) {
	handler := &CandidateHandler{candidateUC: candidateUC}

	candidates := r.Group("/candidates")
	{
		candidates.GET("", handler.List)
		candidates.POST("", handler.Create)
		candidates.POST("/import-cv", handler.ImportCV)
		candidates.GET("/:id", handler.Get)
		candidates.PUT("/:id", handler.Update)
		candidates.DELETE("/:id", handler.SoftDelete)
		candidates.POST("/:id/restore", handler.Restore)
		candidates.DELETE("/:id/permanent", handler.HardDelete)
		candidates.POST("/:id/interviews", handler.ScheduleInterview)
	}

	interviews := r.Group("/interviews")
	{
		interviews.POST("/:id/outcome", handler.RecordOutcome)
	}
}

func (h *CandidateHandler) List(c *gin.Context) {
	filter := domain.CandidateFilter{
		Skill:          c.Query("skill"),
		IncludeDeleted: c.Query("include_deleted") == "true",
	}
	candidates, err := h.candidateUC.List(c.Request.Context(), actorFrom(c), filter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidates", candidates)
}

func (h *CandidateHandler) Create(c *gin.Context) {
	var input domain.CreateCandidateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.Validation("Invalid request body"))
		return
	}
	candidate, err := h.candidateUC.Create(c.Request.Context(), actorFrom(c), input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Candidate created", candidate)
}

func (h *CandidateHandler) ImportCV(c *gin.Context) {
	var body struct {
		CVText string `json:"cv_text"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.Error(apperror.Validation("Invalid request body"))
		return
	}
	candidate, err := h.candidateUC.ImportFromCV(c.Request.Context(), actorFrom(c), body.CVText)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Candidate imported from CV", candidate)
}

func (h *CandidateHandler) Get(c *gin.Context) {
	candidate, err := h.candidateUC.Get(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate", candidate)
}

func (h *CandidateHandler) Update(c *gin.Context) {
	var input domain.CreateCandidateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.Validation("Invalid request body"))
		return
	}
	candidate, err := h.candidateUC.Update(c.Request.Context(), actorFrom(c), c.Param("id"), input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate updated", candidate)
}

func (h *CandidateHandler) SoftDelete(c *gin.Context) {
	if err := h.candidateUC.SoftDelete(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate deleted", nil)
}

func (h *CandidateHandler) Restore(c *gin.Context) {
	if err := h.candidateUC.Restore(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate restored", nil)
}

func (h *CandidateHandler) HardDelete(c *gin.Context) {
	if err := h.candidateUC.HardDelete(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate permanently deleted", nil)
}

func (h *CandidateHandler) ScheduleInterview(c *gin.Context) {
	var body struct {
		Stage       domain.InterviewStage `json:"stage" binding:"required"`
		ScheduledAt time.Time             `json:"scheduled_at"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.Error(apperror.Validation("Invalid request body"))
		return
	}
	iv, err := h.candidateUC.ScheduleInterview(c.Request.Context(), actorFrom(c), c.Param("id"), body.Stage, body.ScheduledAt)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Interview scheduled", iv)
}

func (h *CandidateHandler) RecordOutcome(c *gin.Context) {
	var body struct {
		Outcome domain.InterviewOutcome `json:"outcome" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.Error(apperror.Validation("Invalid request body"))
		return
	}
	iv, err := h.candidateUC.RecordInterviewOutcome(c.Request.Context(), actorFrom(c), c.Param("id"), body.Outcome)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview outcome recorded", iv)
}
