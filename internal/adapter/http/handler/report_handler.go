package handler

import (
	"time"

	"bank-ledger/internal/adapter/http/dto"
	"bank-ledger/internal/core/ports"
	"bank-ledger/pkg/apperror"
	"bank-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// ReportHandler handles account report endpoints.
type ReportHandler struct {
	reportingSvc ports.ReportingService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportingSvc ports.ReportingService) *ReportHandler {
	return &ReportHandler{reportingSvc: reportingSvc}
}

// GetReport handles GET /api/v1/reports. Optional from/to query params
// (YYYY-MM-DD) select an inclusive date range; both days count in full.
func (h *ReportHandler) GetReport(c *gin.Context) {
	accountID, _, ok := callerAccount(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var from, to *time.Time
	if f := c.Query("from"); f != "" {
		v, err := time.Parse(dateLayout, f)
		if err != nil {
			response.Error(c, apperror.Validation("invalid from date, expected YYYY-MM-DD"))
			return
		}
		from = &v
	}
	if t := c.Query("to"); t != "" {
		v, err := time.Parse(dateLayout, t)
		if err != nil {
			response.Error(c, apperror.Validation("invalid to date, expected YYYY-MM-DD"))
			return
		}
		// The upper bound covers the whole day.
		v = v.Add(24*time.Hour - time.Nanosecond)
		to = &v
	}

	report, err := h.reportingSvc.GetReport(c.Request.Context(), accountID, from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.TransactionResponse, 0, len(report.Transactions))
	for i := range report.Transactions {
		items = append(items, toTransactionResponse(&report.Transactions[i]))
	}

	response.OK(c, dto.ReportResponse{
		Transactions: items,
		Total:        report.Total.String(),
		Ranged:       report.Ranged,
	})
}
