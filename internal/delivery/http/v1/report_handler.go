package v1

import (
	"fmt"
	"net/http"

	"go-staffing-backend/internal/usecase"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	reportUC usecase.ReportUsecase
}

func NewReportHandler(r *gin.RouterGroup, reportUC usecase.ReportUsecase) {
	handler := &ReportHandler{reportUC: reportUC}

	reports := r.Group("/reports")
	{
		reports.GET("/consultant-roster", handler.ConsultantRoster)
	}
}

func (h *ReportHandler) ConsultantRoster(c *gin.Context) {
	content, filename, err := h.reportUC.ExportConsultantRoster(c.Request.Context(), actorFrom(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, content)
}
