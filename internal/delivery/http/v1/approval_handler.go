package v1

import (
	"net/http"

	"go-staffing-backend/internal/delivery/http/response"
	"go-staffing-backend/internal/domain"
	"go-staffing-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ApprovalHandler struct {
	approvalUC domain.ApprovalUsecase
}

func NewApprovalHandler(r *gin.RouterGroup, approvalUC domain.ApprovalUsecase) {
	handler := &ApprovalHandler{approvalUC: approvalUC}

	approvals := r.Group("/approvals")
	{
		approvals.POST("", handler.Submit)
		approvals.GET("/:id", handler.Get)
		approvals.POST("/:id/director-approve", handler.DirectorApprove)
		approvals.POST("/:id/hr-approve", handler.HRApprove)
		approvals.POST("/:id/reject", handler.Reject)
	}
}

func (h *ApprovalHandler) Submit(c *gin.Context) {
	var body struct {
		ConsultantID string                     `json:"consultant_id" binding:"required"`
		RequestType  domain.ApprovalRequestType `json:"request_type" binding:"required"`
		Payload      domain.ApprovalPayload     `json:"payload"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.Error(apperror.Validation("Invalid request body"))
		return
	}
	req, err := h.approvalUC.Submit(c.Request.Context(), actorFrom(c), body.ConsultantID, body.RequestType, body.Payload)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Approval request submitted", req)
}

func (h *ApprovalHandler) Get(c *gin.Context) {
	req, err := h.approvalUC.Get(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Approval request", req)
}

func (h *ApprovalHandler) DirectorApprove(c *gin.Context) {
	req, err := h.approvalUC.DirectorApprove(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Approval routed to HR", req)
}

func (h *ApprovalHandler) HRApprove(c *gin.Context) {
	req, err := h.approvalUC.HRApprove(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Approval granted", req)
}

func (h *ApprovalHandler) Reject(c *gin.Context) {
	var body struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.Error(apperror.Validation("A rejection reason is required"))
		return
	}
	req, err := h.approvalUC.Reject(c.Request.Context(), actorFrom(c), c.Param("id"), body.Reason)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Approval rejected", req)
}
