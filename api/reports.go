package api

import (
	"net/http"

	"github.com/Domenick1991/saraye/internal/service/report"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	service report.ReportUseCase
}

type resolveRequest struct {
	Action string `json:"action" binding:"required"`
}

func NewReportHandler(service report.ReportUseCase) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) Register(router *gin.RouterGroup) {
	router.POST("/reports", h.create)
	router.GET("/admin/reports", h.listOpen)
	router.POST("/admin/reports/:id/resolve", h.resolve)
}

func (h *ReportHandler) create(c *gin.Context) {
	var req report.ReportInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	r, err := h.service.CreateReport(c.Request.Context(), actor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toReportResponse(r))
}

func (h *ReportHandler) listOpen(c *gin.Context) {
	reports, err := h.service.ListOpenReports(c.Request.Context(), actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]reportResponse, len(reports))
	for i := range reports {
		out[i] = toReportResponse(&reports[i])
	}
	c.JSON(http.StatusOK, out)
}

func (h *ReportHandler) resolve(c *gin.Context) {
	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	r, err := h.service.ResolveReport(c.Request.Context(), actor(c), c.Param("id"), req.Action)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReportResponse(r))
}
