package v1

import (
	"net/http"

	"go-staffing-backend/internal/delivery/http/response"
	"go-staffing-backend/internal/domain"
	"go-staffing-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type RequirementHandler struct {
	requirementUC domain.RequirementUsecase
}

func NewRequirementHandler(r *gin.RouterGroup, requirementUC domain.RequirementUsecase) {
	handler := &RequirementHandler{requirementUC: requirementUC}

	requirements := r.Group("/requirements")
	{
		requirements.POST("", handler.Create)
		requirements.GET("/:id", handler.Get)
		requirements.POST("/:id/bid/advance", handler.AdvanceBid)
		requirements.POST("/:id/bid/score", handler.ScoreBid)
		requirements.POST("/:id/winner", handler.SetWinner)
		requirements.POST("/:id/won", handler.MarkWon)
		requirements.POST("/:id/lost", handler.MarkLost)
		requirements.POST("/:id/cancel", handler.Cancel)
		requirements.POST("/:id/project", handler.CreateProject)
		requirements.POST("/:id/mission", handler.CreateMission)
	}
}

func (h *RequirementHandler) Create(c *gin.Context) {
	var input domain.CreateRequirementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.Validation("Invalid request body"))
		return
	}
	req, err := h.requirementUC.Create(c.Request.Context(), actorFrom(c), input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Requirement created", req)
}

func (h *RequirementHandler) Get(c *gin.Context) {
	req, err := h.requirementUC.Get(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Requirement", req)
}

func (h *RequirementHandler) AdvanceBid(c *gin.Context) {
	var body struct {
		To                 domain.BidStatus `json:"to" binding:"required"`
		WinningCandidateID string           `json:"winning_candidate_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.Error(apperror.Validation("Invalid request body"))
		return
	}
	req, err := h.requirementUC.AdvanceBid(c.Request.Context(), actorFrom(c), c.Param("id"), body.To, body.WinningCandidateID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Bid advanced", req)
}

func (h *RequirementHandler) ScoreBid(c *gin.Context) {
	var scorecard domain.BidScorecard
	if err := c.ShouldBindJSON(&scorecard); err != nil {
		c.Error(apperror.Validation("Invalid request body"))
		return
	}
	score, err := h.requirementUC.ScoreBid(c.Request.Context(), actorFrom(c), c.Param("id"), scorecard)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Bid scored", gin.H{"score": score})
}

func (h *RequirementHandler) SetWinner(c *gin.Context) {
	var body struct {
		CandidateID string `json:"candidate_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.Error(apperror.Validation("Invalid request body"))
		return
	}
	req, err := h.requirementUC.SetWinningCandidate(c.Request.Context(), actorFrom(c), c.Param("id"), body.CandidateID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Winning candidate set", req)
}

func (h *RequirementHandler) MarkWon(c *gin.Context) {
	var body struct {
		WinningCandidateID string `json:"winning_candidate_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.Error(apperror.Validation("Invalid request body"))
		return
	}
	req, err := h.requirementUC.MarkWon(c.Request.Context(), actorFrom(c), c.Param("id"), body.WinningCandidateID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Requirement won", req)
}

func (h *RequirementHandler) MarkLost(c *gin.Context) {
	req, err := h.requirementUC.MarkLost(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Requirement lost", req)
}

func (h *RequirementHandler) Cancel(c *gin.Context) {
	req, err := h.requirementUC.Cancel(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Requirement cancelled", req)
}

func (h *RequirementHandler) CreateProject(c *gin.Context) {
	project, err := h.requirementUC.CreateProject(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Project created", project)
}

func (h *RequirementHandler) CreateMission(c *gin.Context) {
	var input domain.CreateMissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.Validation("Invalid request body"))
		return
	}
	mission, err := h.requirementUC.CreateMission(c.Request.Context(), actorFrom(c), c.Param("id"), input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Mission created", mission)
}
