package usecase

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"go-staffing-backend/internal/domain"
	"go-staffing-backend/pkg/apperror"

	"github.com/xuri/excelize/v2"
)

// ReportUsecase produces downloadable roster reports
type ReportUsecase interface {
	ExportConsultantRoster(ctx context.Context, actor domain.Actor) ([]byte, string, error)
}

type reportUsecase struct {
	consultantRepo domain.ConsultantRepository
	missionRepo    domain.MissionRepository
}

// NewReportUsecase creates the report exporter
func NewReportUsecase(consultantRepo domain.ConsultantRepository, missionRepo domain.MissionRepository) ReportUsecase {
	return &reportUsecase{consultantRepo: consultantRepo, missionRepo: missionRepo}
}

var rosterColumns = []string{
	"NAME", "STATUS", "ANNUAL SALARY", "DAILY RATE", "HIRED AT", "ACTIVE MISSIONS", "LAST BONUS",
}

// ExportConsultantRoster generates an Excel roster of every consultant with
// their deployment status and active mission count
func (uc *reportUsecase) ExportConsultantRoster(ctx context.Context, actor domain.Actor) ([]byte, string, error) {
	caps := actor.Capabilities()
	if !caps.CanExportReports {
		return nil, "", apperror.Permission("You are not allowed to export reports")
	}

	consultants, err := uc.consultantRepo.List(ctx, "")
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	f := excelize.NewFile()
	sheetName := "Consultants"
	f.SetSheetName("Sheet1", sheetName)

	for i, col := range rosterColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(rosterColumns), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, c := range consultants {
		missions, err := uc.missionRepo.ListByConsultant(ctx, c.ID)
		if err != nil {
			return nil, "", apperror.Internal(err)
		}
		active := 0
		for _, m := range missions {
			if m.Status == domain.MissionActive {
				active++
			}
		}

		lastBonus := ""
		if c.LastBonus != nil {
			lastBonus = fmt.Sprintf("%.2f", *c.LastBonus)
			if c.LastBonusAt != nil {
				lastBonus += " (" + c.LastBonusAt.Format("2006-01-02") + ")"
			}
		}

		values := []any{
			c.FirstName + " " + c.LastName,
			string(c.Status),
			c.AnnualSalary,
			c.DailyRate,
			c.HiredAt.Format("2006-01-02"),
			active,
			lastBonus,
		}
		for colIdx, value := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range rosterColumns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 20)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", apperror.Internal(fmt.Errorf("generate excel file: %w", err))
	}

	filename := fmt.Sprintf("consultant_roster_%s.xlsx", time.Now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}
