package v1

import (
	"net/http"

	"go-staffing-backend/internal/delivery/http/response"
	"go-staffing-backend/internal/domain"
	"go-staffing-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type OfferHandler struct {
	offerUC domain.OfferUsecase
}

func NewOfferHandler(r *gin.RouterGroup, offerUC domain.OfferUsecase) {
	handler := &OfferHandler{offerUC: offerUC}

	offers := r.Group("/offers")
	{
		offers.POST("", handler.Create)
		offers.GET("/:id", handler.Get)
		offers.POST("/:id/approve", handler.Approve)
		offers.POST("/:id/reject", handler.Reject)
		offers.POST("/:id/withdraw", handler.Withdraw)
		offers.POST("/:id/contract-sent", handler.ContractSent)
		offers.POST("/:id/contract-signed", handler.ContractSigned)
		offers.POST("/:id/convert", handler.Convert)
	}
}

func (h *OfferHandler) Create(c *gin.Context) {
	var input domain.CreateOfferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.Validation("Invalid request body"))
		return
	}
	offer, err := h.offerUC.Create(c.Request.Context(), actorFrom(c), input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Offer created", offer)
}

func (h *OfferHandler) Get(c *gin.Context) {
	offer, err := h.offerUC.Get(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Offer", offer)
}

func (h *OfferHandler) Approve(c *gin.Context) {
	offer, err := h.offerUC.Approve(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Offer approved", offer)
}

func (h *OfferHandler) Reject(c *gin.Context) {
	var body struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.Error(apperror.Validation("Invalid request body"))
		return
	}
	offer, err := h.offerUC.Reject(c.Request.Context(), actorFrom(c), c.Param("id"), body.Reason)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Offer rejected", offer)
}

func (h *OfferHandler) Withdraw(c *gin.Context) {
	offer, err := h.offerUC.Withdraw(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Offer withdrawn", offer)
}

func (h *OfferHandler) ContractSent(c *gin.Context) {
	offer, err := h.offerUC.MarkContractSent(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Contract marked as sent", offer)
}

func (h *OfferHandler) ContractSigned(c *gin.Context) {
	offer, err := h.offerUC.MarkContractSigned(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Contract marked as signed", offer)
}

func (h *OfferHandler) Convert(c *gin.Context) {
	consultant, err := h.offerUC.ConvertToConsultant(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Candidate converted to consultant", consultant)
}
