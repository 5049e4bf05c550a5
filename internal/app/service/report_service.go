package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/thekada/kada-backend/internal/app/repository"
	"github.com/thekada/kada-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

type ReportService interface {
	MonthlyPayoutReport(month time.Month, year int) (*bytes.Buffer, string, error)
}

type reportService struct {
	payoutRepo repository.PayoutRepository
}

func NewReportService(payoutRepo repository.PayoutRepository) ReportService {
	return &reportService{payoutRepo: payoutRepo}
}

var payoutReportHeader = []string{
	"Reference", "Franchise", "Zone", "Period", "Payout Date",
	"Revenue Reported", "Delivered Orders", "Share %", "Fee / Order",
	"Total Fee Deducted", "Net Payout",
}

// MonthlyPayoutReport renders the month's settled payouts as an XLSX
// workbook for the accounts team. Returns the file bytes and a suggested
// attachment filename.
func (s *reportService) MonthlyPayoutReport(month time.Month, year int) (*bytes.Buffer, string, error) {
	records, err := s.payoutRepo.FindByMonthYear(month, year)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := fmt.Sprintf("Payouts %04d-%02d", year, int(month))
	f.SetSheetName(f.GetSheetName(0), sheetName)

	for col, title := range payoutReportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, "", err
		}
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			return nil, "", err
		}
	}

	var totalPaid float64
	for i, record := range records {
		values := []interface{}{
			record.Reference,
			record.Franchise.Name,
			record.Franchise.ZoneID,
			record.Period,
			record.PayoutDate.Format("2006-01-02"),
			record.RevenueReported,
			record.OrdersCount,
			record.SharePercentage,
			record.PlatformFeePerOrder,
			record.TotalFeeDeducted,
			record.Amount,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, "", err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, "", err
			}
		}
		totalPaid += record.Amount
	}

	// Totals row below the data.
	totalRow := len(records) + 3
	labelCell, _ := excelize.CoordinatesToCellName(1, totalRow)
	valueCell, _ := excelize.CoordinatesToCellName(len(payoutReportHeader), totalRow)
	f.SetCellValue(sheetName, labelCell, "Total")
	f.SetCellValue(sheetName, valueCell, totalPaid)

	buf, err := f.WriteToBuffer()
	if err != nil {
		logger.Error("Failed to render payout report workbook", err, map[string]interface{}{
			"month": int(month),
			"year":  year,
		})
		return nil, "", err
	}

	logger.Info("Monthly payout report generated", map[string]interface{}{
		"month":   int(month),
		"year":    year,
		"records": len(records),
	})

	filename := fmt.Sprintf("payouts_%04d_%02d.xlsx", year, int(month))
	return buf, filename, nil
}
