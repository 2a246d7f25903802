package v1

import (
	"net/http"

	"go-staffing-backend/internal/delivery/http/response"
	"go-staffing-backend/internal/usecase"
	"go-staffing-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	companyUC usecase.CompanyUsecase
}

func NewCompanyHandler(r *gin.RouterGroup, companyUC usecase.CompanyUsecase) {
	handler := &CompanyHandler{companyUC: companyUC}

	companies := r.Group("/companies")
	{
		companies.GET("", handler.List)
		companies.POST("", handler.Create)
		companies.GET("/:id", handler.Get)
		companies.PUT("/:id/financial-scoring", handler.SetFinancialScoring)
	}
}

func (h *CompanyHandler) List(c *gin.Context) {
	companies, err := h.companyUC.List(c.Request.Context(), actorFrom(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Companies", companies)
}

func (h *CompanyHandler) Get(c *gin.Context) {
	company, err := h.companyUC.Get(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company", company)
}

func (h *CompanyHandler) Create(c *gin.Context) {
	var body struct {
		Name             string  `json:"name" binding:"required"`
		ParentID         *string `json:"parent_id"`
		FinancialScoring *string `json:"financial_scoring"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.Error(apperror.Validation("Invalid request body"))
		return
	}
	company, err := h.companyUC.Create(c.Request.Context(), actorFrom(c), body.Name, body.ParentID, body.FinancialScoring)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Company created", company)
}

func (h *CompanyHandler) SetFinancialScoring(c *gin.Context) {
	var body struct {
		FinancialScoring string `json:"financial_scoring" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.Error(apperror.Validation("Invalid request body"))
		return
	}
	company, err := h.companyUC.SetFinancialScoring(c.Request.Context(), actorFrom(c), c.Param("id"), body.FinancialScoring)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Financial scoring updated", company)
}
