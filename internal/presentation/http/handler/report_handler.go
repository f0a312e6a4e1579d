package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/phonehub-pos/internal/application/service"
	"github.com/sangkips/phonehub-pos/internal/domain/repository"
	"github.com/sangkips/phonehub-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/phonehub-pos/internal/presentation/http/dto/response"
)

type ReportHandler struct {
	reportService *service.ReportService
}

func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// SessionToday reports the sales committed in one session
func (h *ReportHandler) SessionToday(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	summary, err := h.reportService.SessionToday(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Session report retrieved", response.NewReportResponse(summary))
}

// Summary reports the backend's sales for ?filter=today|week|month|all
func (h *ReportHandler) Summary(c *gin.Context) {
	var q request.ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid filter. Use today, week, month or all")
		return
	}
	filter, ok := repository.ParseTransactionFilter(q.Filter)
	if !ok {
		response.BadRequest(c, "Invalid filter. Use today, week, month or all")
		return
	}

	summary, err := h.reportService.Summary(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sales summary retrieved", response.NewReportResponse(summary))
}
