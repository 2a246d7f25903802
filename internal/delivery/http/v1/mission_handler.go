package v1

import (
	"net/http"
	"time"

	"go-staffing-backend/internal/delivery/http/response"
	"go-staffing-backend/internal/domain"
	"go-staffing-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type MissionHandler struct {
	missionUC domain.MissionUsecase
}

func NewMissionHandler(r *gin.RouterGroup, missionUC domain.MissionUsecase) {
	handler := &MissionHandler{missionUC: missionUC}

	missions := r.Group("/missions")
	{
		missions.GET("/:id", handler.Get)
		missions.PUT("/:id", handler.Update)
		missions.POST("/:id/complete", handler.Complete)
		missions.POST("/:id/hold", handler.Hold)
		missions.POST("/:id/cancel", handler.Cancel)
		missions.POST("/:id/reopen", handler.Reopen)
	}
}

func (h *MissionHandler) Get(c *gin.Context) {
	mission, err := h.missionUC.Get(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Mission", mission)
}

func (h *MissionHandler) Update(c *gin.Context) {
	var input domain.UpdateMissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.Validation("Invalid request body"))
		return
	}
	mission, err := h.missionUC.Update(c.Request.Context(), actorFrom(c), c.Param("id"), input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Mission updated", mission)
}

func (h *MissionHandler) Complete(c *gin.Context) {
	var body struct {
		EndDate time.Time `json:"end_date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.Error(apperror.Validation("Invalid request body"))
		return
	}
	mission, err := h.missionUC.Complete(c.Request.Context(), actorFrom(c), c.Param("id"), body.EndDate)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Mission completed", mission)
}

func (h *MissionHandler) Hold(c *gin.Context) {
	mission, err := h.missionUC.Hold(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Mission on hold", mission)
}

func (h *MissionHandler) Cancel(c *gin.Context) {
	mission, err := h.missionUC.Cancel(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Mission cancelled", mission)
}

func (h *MissionHandler) Reopen(c *gin.Context) {
	mission, err := h.missionUC.Reopen(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Mission reopened", mission)
}
