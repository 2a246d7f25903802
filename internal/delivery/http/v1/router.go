package v1

import (
	"net/http"
	"time"

	"go-staffing-backend/config"
	"go-staffing-backend/internal/delivery/http/middleware"
	"go-staffing-backend/internal/delivery/http/response"
	"go-staffing-backend/internal/domain"
	"go-staffing-backend/internal/usecase"
	"go-staffing-backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	CandidateUC   domain.CandidateUsecase
	OfferUC       domain.OfferUsecase
	RequirementUC domain.RequirementUsecase
	MissionUC     domain.MissionUsecase
	ApprovalUC    domain.ApprovalUsecase
	ReportUC      usecase.ReportUsecase
	CompanyUC     usecase.CompanyUsecase
	JWKSProvider  *auth.Provider
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Limit:  deps.Config.RateLimitGlobalThreshold,
		Window: time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second,
	}))

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWKSProvider, deps.Config))
	{
		NewCandidateHandler(protected, deps.CandidateUC)
		NewOfferHandler(protected, deps.OfferUC)
		NewRequirementHandler(protected, deps.RequirementUC)
		NewMissionHandler(protected, deps.MissionUC)
		NewApprovalHandler(protected, deps.ApprovalUC)
		NewReportHandler(protected, deps.ReportUC)
		NewCompanyHandler(protected, deps.CompanyUC)
	}

	return r
}
