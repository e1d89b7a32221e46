package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/dockops-activity/internal/model"
	"github.com/nurpe/dockops-activity/internal/service"
)

type Handler struct {
	dock *service.DockService
	log  zerolog.Logger
}

func NewHandler(dock *service.DockService, log zerolog.Logger) *Handler {
	return &Handler{dock: dock, log: log}
}

func (h *Handler) Register(router *gin.Engine) {
	router.GET("/health", h.health)
	router.GET("/reference", h.reference)

	dispatch := router.Group("/dispatch")
	dispatch.POST("/dock-in", h.dispatchDockIn)
	dispatch.POST("/dock-out/:id", h.dispatchDockOut)
	dispatch.GET("/logs", h.dispatchLogs)
	dispatch.POST("/export", h.exportDispatch)

	receiving := router.Group("/receiving")
	receiving.POST("/dock-in", h.receivingDockIn)
	receiving.POST("/dock-out/:id", h.receivingDockOut)
	receiving.GET("/logs", h.receivingLogs)
	receiving.POST("/export", h.exportReceiving)

	downloads := router.Group("/downloads")
	downloads.GET("", h.listDownloads)
	downloads.GET("/stats", h.downloadStats)
	downloads.POST("/export-all", h.exportAll)
	downloads.POST("/:id/redownload", h.redownload)
	downloads.DELETE("", h.clearHistory)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) reference(c *gin.Context) {
	transporters, consignors, consignees := h.dock.ReferenceLists()
	c.JSON(http.StatusOK, gin.H{
		"transporters": transporters,
		"consignors":   consignors,
		"consignees":   consignees,
	})
}

type dispatchDockInRequest struct {
	VehicleNumber   string `json:"vehicle_number" binding:"required"`
	TransporterName string `json:"transporter_name" binding:"required"`
	Consignor       string `json:"consignor" binding:"required"`
	Consignee       string `json:"consignee" binding:"required"`
}

func (h *Handler) dispatchDockIn(c *gin.Context) {
	var req dispatchDockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log, err := h.dock.DockInDispatch(service.DispatchDockInInput{
		VehicleNumber:   req.VehicleNumber,
		TransporterName: req.TransporterName,
		Consignor:       req.Consignor,
		Consignee:       req.Consignee,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, log)
}

type receivingDockInRequest struct {
	VehicleNumber string `json:"vehicle_number" binding:"required"`
	VendorCode    string `json:"vendor_code" binding:"required"`
	SRVNumber     string `json:"srv_number" binding:"required"`
	PersonnelID   string `json:"personnel_id" binding:"required"`
}

func (h *Handler) receivingDockIn(c *gin.Context) {
	var req receivingDockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log, err := h.dock.DockInReceiving(service.ReceivingDockInInput{
		VehicleNumber: req.VehicleNumber,
		VendorCode:    req.VendorCode,
		SRVNumber:     req.SRVNumber,
		PersonnelID:   req.PersonnelID,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, log)
}

func (h *Handler) dispatchDockOut(c *gin.Context) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	log, err := h.dock.DockOutDispatch(id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

func (h *Handler) receivingDockOut(c *gin.Context) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	log, err := h.dock.DockOutReceiving(id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

func (h *Handler) dispatchLogs(c *gin.Context) {
	switch c.DefaultQuery("state", "active") {
	case "active":
		c.JSON(http.StatusOK, gin.H{"logs": h.dock.ActiveDispatch()})
	case "completed":
		filter, err := dispatchFilterFromQuery(c)
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"logs": h.dock.CompletedDispatch(filter)})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "state must be active or completed"})
	}
}

func (h *Handler) receivingLogs(c *gin.Context) {
	switch c.DefaultQuery("state", "active") {
	case "active":
		c.JSON(http.StatusOK, gin.H{"logs": h.dock.ActiveReceiving()})
	case "completed":
		filter, err := receivingFilterFromQuery(c)
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"logs": h.dock.CompletedReceiving(filter)})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "state must be active or completed"})
	}
}

type exportDispatchRequest struct {
	Transporter string `json:"transporter"`
	Consignor   string `json:"consignor"`
	Consignee   string `json:"consignee"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Format      string `json:"format"`
}

func (h *Handler) exportDispatch(c *gin.Context) {
	var req exportDispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dates, err := dateRange(req.StartDate, req.EndDate)
	if err != nil {
		h.handleError(c, err)
		return
	}
	format, err := service.ParseExportFormat(req.Format)
	if err != nil {
		h.handleError(c, err)
		return
	}

	result, err := h.dock.ExportDispatch(service.DispatchFilter{
		Transporter: normalizeChoice(req.Transporter),
		Consignor:   normalizeChoice(req.Consignor),
		Consignee:   normalizeChoice(req.Consignee),
		Dates:       dates,
	}, format)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.writeAttachment(c, result)
}

type exportReceivingRequest struct {
	VendorCode  string `json:"vendor_code"`
	SRVNumber   string `json:"srv_number"`
	PersonnelID string `json:"personnel_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Format      string `json:"format"`
}

func (h *Handler) exportReceiving(c *gin.Context) {
	var req exportReceivingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dates, err := dateRange(req.StartDate, req.EndDate)
	if err != nil {
		h.handleError(c, err)
		return
	}
	format, err := service.ParseExportFormat(req.Format)
	if err != nil {
		h.handleError(c, err)
		return
	}

	result, err := h.dock.ExportReceiving(service.ReceivingFilter{
		VendorCode:  strings.TrimSpace(req.VendorCode),
		SRVNumber:   strings.TrimSpace(req.SRVNumber),
		PersonnelID: strings.TrimSpace(req.PersonnelID),
		Dates:       dates,
	}, format)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.writeAttachment(c, result)
}

type exportAllRequest struct {
	Workflow string `json:"workflow" binding:"required"`
	Format   string `json:"format"`
}

func (h *Handler) exportAll(c *gin.Context) {
	var req exportAllRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	format, err := service.ParseExportFormat(req.Format)
	if err != nil {
		h.handleError(c, err)
		return
	}

	var result *service.ExportResult
	switch strings.ToUpper(strings.TrimSpace(req.Workflow)) {
	case string(model.WorkflowDispatch):
		result, err = h.dock.ExportAllDispatch(format)
	case string(model.WorkflowReceiving):
		result, err = h.dock.ExportAllReceiving(format)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "workflow must be DISPATCH or RECEIVING"})
		return
	}
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.writeAttachment(c, result)
}

func (h *Handler) listDownloads(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"downloads": h.dock.Downloads()})
}

func (h *Handler) downloadStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.dock.CountDownloads())
}

func (h *Handler) redownload(c *gin.Context) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	result, err := h.dock.Redownload(id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.writeAttachment(c, result)
}

func (h *Handler) clearHistory(c *gin.Context) {
	h.dock.ClearHistory()
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeAttachment(c *gin.Context, result *service.ExportResult) {
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Header("X-Record-Count", strconv.Itoa(result.RecordCount))
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNoMatchingData):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func dispatchFilterFromQuery(c *gin.Context) (service.DispatchFilter, error) {
	dates, err := dateRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return service.DispatchFilter{}, err
	}
	return service.DispatchFilter{
		Transporter: normalizeChoice(c.Query("transporter")),
		Consignor:   normalizeChoice(c.Query("consignor")),
		Consignee:   normalizeChoice(c.Query("consignee")),
		Dates:       dates,
	}, nil
}

func receivingFilterFromQuery(c *gin.Context) (service.ReceivingFilter, error) {
	dates, err := dateRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return service.ReceivingFilter{}, err
	}
	return service.ReceivingFilter{
		VendorCode:  strings.TrimSpace(c.Query("vendor_code")),
		SRVNumber:   strings.TrimSpace(c.Query("srv_number")),
		PersonnelID: strings.TrimSpace(c.Query("personnel_id")),
		Dates:       dates,
	}, nil
}

// normalizeChoice maps the form's "All Transporters" style sentinel options
// to the unconstrained empty value.
func normalizeChoice(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(strings.ToLower(raw), "all ") {
		return ""
	}
	return raw
}

func dateRange(start, end string) (service.DateRange, error) {
	result := service.DateRange{}
	if strings.TrimSpace(start) != "" {
		parsed, err := parseDate(start)
		if err != nil {
			return service.DateRange{}, err
		}
		result.Start = &parsed
	}
	if strings.TrimSpace(end) != "" {
		parsed, err := parseDate(end)
		if err != nil {
			return service.DateRange{}, err
		}
		result.End = &parsed
	}
	return result, nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	layouts := []string{
		"2006-01-02",
		time.RFC3339,
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}
