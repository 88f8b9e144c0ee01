package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"AIOverview_Analysis/internal/export"
	"AIOverview_Analysis/internal/logger"
	"AIOverview_Analysis/internal/models"
	"AIOverview_Analysis/internal/overviewAnalysis"
	"AIOverview_Analysis/internal/recordSource"
	"AIOverview_Analysis/internal/report"
)

// Output formats selected with ?format=
const (
	FormatJSON           = "json"
	FormatKeywordsCSV    = "keywords_csv"
	FormatCompetitorsCSV = "competitors_csv"
	FormatSummary        = "summary"
)

// Handler contains the HTTP handlers for the API
type Handler struct {
	analysisService overviewAnalysis.AnalysisService
	logger          logger.Service
	maxUploadBytes  int64
}

// NewHandler creates a new HTTP handler
func NewHandler(
	analysisService overviewAnalysis.AnalysisService,
	logger logger.Service,
	maxUploadBytes int64,
) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 32 << 20
	}
	return &Handler{
		analysisService: analysisService,
		logger:          logger,
		maxUploadBytes:  maxUploadBytes,
	}
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// writeJSONResponse writes a JSON response with standard headers including X-Request-ID
func (h *Handler) writeJSONResponse(w http.ResponseWriter, r *http.Request, statusCode int, data interface{}) error {
	logEvent := logger.GetLogEvent(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", logEvent.ProcessID)
	w.WriteHeader(statusCode)

	return json.NewEncoder(w).Encode(data)
}

// Analyze handles POST /api/analyze with already fetched result records
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	format, ok := h.requestFormat(w, r)
	if !ok {
		return
	}

	var request models.AnalyzeRequest
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.logger.LogError(ctx, logger.OpAnalyze, "", "Invalid request body", err, models.LogSeverityLow, nil)
		h.writeErrorReport(w, r, bodyErrorStatus(err), fmt.Errorf("invalid request body: %w", err))
		return
	}

	records := make([]models.RawResultRecord, 0, len(request.Records))
	for _, payload := range request.Records {
		records = append(records, models.RawResultRecord{Payload: payload})
	}

	target := models.Target{BrandName: request.BrandName, BrandDomain: request.BrandDomain}
	result, err := h.analysisService.Analyze(ctx, records, target)
	h.respond(w, r, logger.OpAnalyze, format, result, err)
}

// FetchAnalysis handles POST /api/fetch-analysis: fetch keywords live, then analyze
func (h *Handler) FetchAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	format, ok := h.requestFormat(w, r)
	if !ok {
		return
	}

	var request models.FetchAnalysisRequest
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.logger.LogError(ctx, logger.OpFetchAnalysis, "", "Invalid request body", err, models.LogSeverityLow, nil)
		h.writeErrorReport(w, r, bodyErrorStatus(err), fmt.Errorf("invalid request body: %w", err))
		return
	}

	result, err := h.analysisService.FetchAndAnalyze(ctx, request)
	h.respond(w, r, logger.OpFetchAnalysis, format, result, err)
}

// UploadAnalysis handles POST /api/upload-analysis with a multipart record file
func (h *Handler) UploadAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	format, ok := h.requestFormat(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		h.logger.LogError(ctx, logger.OpUploadAnalysis, "", "Invalid multipart form", err, models.LogSeverityLow, nil)
		h.writeErrorReport(w, r, bodyErrorStatus(err), fmt.Errorf("invalid upload: %w", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeErrorReport(w, r, http.StatusBadRequest, fmt.Errorf("file is required: %w", err))
		return
	}
	defer file.Close()

	records, err := recordSource.Load(file)
	if err != nil {
		h.logger.LogError(ctx, logger.OpLoadRecords, header.Filename, "Failed to load record file", err, models.LogSeverityLow, map[string]interface{}{
			"size": header.Size,
		})
		h.writeErrorReport(w, r, statusForError(err), err)
		return
	}

	h.logger.LogInfo(ctx, logger.OpLoadRecords, fmt.Sprintf("Loaded %d records from %s", len(records), header.Filename), map[string]interface{}{
		"records_count": len(records),
		"size":          header.Size,
	})

	target := models.Target{
		BrandName:   r.FormValue("brand_name"),
		BrandDomain: r.FormValue("brand_domain"),
	}
	result, err := h.analysisService.Analyze(ctx, records, target)
	h.respond(w, r, logger.OpUploadAnalysis, format, result, err)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   "1.0.0",
	}

	if err := h.writeJSONResponse(w, r, http.StatusOK, response); err != nil {
		h.logger.LogError(ctx, logger.OpHealthCheck, "", "Failed to encode health response", err, models.LogSeverityLow, nil)
		return
	}

	h.logger.LogInfo(ctx, logger.OpHealthCheck, "Health check performed successfully", nil)
}

// respond writes a finished analysis in the requested format; error reports are always JSON
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, operation, format string, result *models.AnalysisReport, err error) {
	ctx := r.Context()

	if err != nil {
		h.logger.LogError(ctx, operation, "", "Analysis failed", err, models.LogSeverityMedium, nil)
		if result == nil {
			result = report.Failed(err)
		}
		if result.Timestamp.IsZero() {
			result.Timestamp = time.Now().UTC()
		}
		if err := h.writeJSONResponse(w, r, statusForError(err), result); err != nil {
			h.logger.LogError(ctx, logger.OpResponseEncoding, "", "Failed to encode error report", err, models.LogSeverityLow, nil)
		}
		return
	}

	if err := h.writeFormatted(w, r, format, result); err != nil {
		h.logger.LogError(ctx, logger.OpExport, "", "Failed to write analysis report", err, models.LogSeverityLow, map[string]interface{}{
			"format": format,
		})
		return
	}

	h.logger.LogSuccess(ctx, operation, result.TargetBrand, "Served analysis report", map[string]interface{}{
		"format":            format,
		"keywords_analyzed": result.KeywordsAnalyzed,
	})
}

func (h *Handler) writeFormatted(w http.ResponseWriter, r *http.Request, format string, result *models.AnalysisReport) error {
	logEvent := logger.GetLogEvent(r.Context())

	switch format {
	case FormatKeywordsCSV:
		setAttachment(w, logEvent.ProcessID, "text/csv", "keywords_analysis.csv")
		return export.WriteKeywordsCSV(w, result)
	case FormatCompetitorsCSV:
		setAttachment(w, logEvent.ProcessID, "text/csv", "comprehensive_competitor_analysis.csv")
		return export.WriteCompetitorsCSV(w, result)
	case FormatSummary:
		text, err := export.Summary(result)
		if err != nil {
			return err
		}
		setAttachment(w, logEvent.ProcessID, "text/plain; charset=utf-8", "analysis_summary.txt")
		_, err = w.Write([]byte(text))
		return err
	default:
		return h.writeJSONResponse(w, r, http.StatusOK, result)
	}
}

func setAttachment(w http.ResponseWriter, requestID, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("X-Request-ID", requestID)
	w.WriteHeader(http.StatusOK)
}

// requestFormat validates ?format= before any work is done
func (h *Handler) requestFormat(w http.ResponseWriter, r *http.Request) (string, bool) {
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	switch format {
	case "":
		return FormatJSON, true
	case FormatJSON, FormatKeywordsCSV, FormatCompetitorsCSV, FormatSummary:
		return format, true
	default:
		h.writeErrorReport(w, r, http.StatusBadRequest, fmt.Errorf("unsupported format %q", format))
		return "", false
	}
}

// writeErrorReport writes the error report for a request that never reached the analysis
func (h *Handler) writeErrorReport(w http.ResponseWriter, r *http.Request, statusCode int, err error) {
	failed := report.Failed(err)
	failed.Timestamp = time.Now().UTC()
	if err := h.writeJSONResponse(w, r, statusCode, failed); err != nil {
		h.logger.LogError(r.Context(), logger.OpResponseEncoding, "", "Failed to encode error response", err, models.LogSeverityLow, nil)
	}
}

// bodyErrorStatus is 413 for a body over the size limit and 400 for any other unreadable body
func bodyErrorStatus(err error) int {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// statusForError maps engine and fetch errors to HTTP status codes
func statusForError(err error) int {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.Is(err, models.ErrInvalidBrandInput),
		errors.Is(err, models.ErrUnrecognizedShape),
		errors.Is(err, models.ErrNoKeywords):
		return http.StatusBadRequest
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, models.ErrFetchTimeout), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, models.ErrProviderStatus), errors.Is(err, models.ErrFetchFailed):
		return http.StatusBadGateway
	case errors.Is(err, models.ErrMissingAPIKey):
		return http.StatusServiceUnavailable
	case errors.Is(err, models.ErrRateLimitExceeded):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
