package overviewAnalysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"AIOverview_Analysis/internal/aggregator"
	"AIOverview_Analysis/internal/extractor"
	"AIOverview_Analysis/internal/fetcher"
	"AIOverview_Analysis/internal/logger"
	"AIOverview_Analysis/internal/metrics"
	"AIOverview_Analysis/internal/models"
	"AIOverview_Analysis/internal/normalizer"
	"AIOverview_Analysis/internal/report"
)

// Service implements the AnalysisService interface
type Service struct {
	extractor       extractor.Service
	fetcher         fetcher.BatchService
	logger          logger.Service
	defaultLocation string
	defaultLanguage string
}

// NewService creates a new analysis service. fetcher may be nil when only Analyze is used.
func NewService(
	extractor extractor.Service,
	fetcher fetcher.BatchService,
	logger logger.Service,
	defaultLocation string,
	defaultLanguage string,
) AnalysisService {
	return &Service{
		extractor:       extractor,
		fetcher:         fetcher,
		logger:          logger,
		defaultLocation: defaultLocation,
		defaultLanguage: defaultLanguage,
	}
}

// Analyze extracts every record, folds keyword rows into competitor rows and builds the report
func (s *Service) Analyze(ctx context.Context, records []models.RawResultRecord, target models.Target) (*models.AnalysisReport, error) {
	start := time.Now()

	if err := validateTarget(target); err != nil {
		s.logger.LogError(ctx, logger.OpValidateTarget, target.BrandName, "Rejected analysis target", err, models.LogSeverityLow, map[string]interface{}{
			"brand_domain": target.BrandDomain,
		})
		metrics.AnalysesTotal.WithLabelValues(models.StatusError).Inc()
		return s.stamp(report.Failed(err), target), err
	}

	s.logger.LogInfo(ctx, logger.OpAnalyze, fmt.Sprintf("Starting analysis of %d records", len(records)), map[string]interface{}{
		"records_count": len(records),
		"brand_name":    target.BrandName,
		"brand_domain":  target.BrandDomain,
	})

	rows := make([]models.KeywordRow, 0, len(records))
	malformed := 0
	for i, record := range records {
		overview, err := s.extractor.Extract(record)
		if err != nil || overview == nil {
			malformed++
			recordErr := models.NewRecordError(i, record.Keyword, describe(err))
			s.logger.LogError(ctx, logger.OpExtractOverview, record.Keyword, "Malformed result record", recordErr, models.LogSeverityLow, map[string]interface{}{
				"index": i,
			})
			// keeps keywords_analyzed equal to the number of records
			overview = &models.OverviewRecord{Keyword: strings.TrimSpace(record.Keyword)}
		}
		rows = append(rows, aggregator.AggregateKeyword(*overview, target))
	}

	competitors := aggregator.AggregateCompetitors(rows, len(rows), target)

	result := report.Build(rows, competitors)
	result.MalformedRecords = malformed
	s.stamp(result, target)

	metrics.AnalysesTotal.WithLabelValues(models.StatusSuccess).Inc()
	metrics.KeywordsAnalyzed.Add(float64(result.KeywordsAnalyzed))
	metrics.OverviewsFound.Add(float64(result.AIOverviewsFound))
	metrics.MalformedRecords.Add(float64(malformed))
	metrics.AnalysisDuration.Observe(time.Since(start).Seconds())

	s.logger.LogSuccess(ctx, logger.OpAnalyze, target.BrandName, "Completed analysis", map[string]interface{}{
		"keywords_analyzed":      result.KeywordsAnalyzed,
		"ai_overviews_found":     result.AIOverviewsFound,
		"competitors_identified": result.CompetitorsIdentified,
		"malformed_records":      malformed,
		"duration_ms":            time.Since(start).Milliseconds(),
	})

	return result, nil
}

// FetchAndAnalyze resolves the keyword list, fetches it and analyzes the records.
// The target is validated before any provider call is made.
func (s *Service) FetchAndAnalyze(ctx context.Context, req models.FetchAnalysisRequest) (*models.AnalysisReport, error) {
	target := req.Target()
	if err := validateTarget(target); err != nil {
		return s.Analyze(ctx, nil, target)
	}

	keywords := mergeKeywords(req.Keywords, ParseKeywords(req.KeywordsText))
	if len(keywords) == 0 {
		return s.Analyze(ctx, nil, target)
	}

	if s.fetcher == nil {
		err := fmt.Errorf("%w: no SERP fetcher configured", models.ErrFetchFailed)
		return s.stamp(report.Failed(err), target), err
	}

	location := firstNonEmpty(req.LocationCode, s.defaultLocation)
	language := firstNonEmpty(req.LanguageCode, s.defaultLanguage)

	s.logger.LogInfo(ctx, logger.OpFetchAnalysis, fmt.Sprintf("Fetching %d keywords for analysis", len(keywords)), map[string]interface{}{
		"keywords_count": len(keywords),
		"location_code":  location,
		"language_code":  language,
	})

	records, err := s.fetcher.FetchAll(ctx, keywords, location, language, nil)
	if err != nil {
		s.logger.LogError(ctx, logger.OpFetchAnalysis, target.BrandName, "Failed to fetch SERP results", err, models.LogSeverityHigh, nil)
		metrics.AnalysesTotal.WithLabelValues(models.StatusError).Inc()
		return s.stamp(report.Failed(err), target), err
	}

	return s.Analyze(ctx, records, target)
}

func (s *Service) stamp(r *models.AnalysisReport, target models.Target) *models.AnalysisReport {
	r.TargetBrand = target.BrandName
	r.TargetDomain = target.BrandDomain
	r.Timestamp = time.Now().UTC()
	return r
}

// validateTarget rejects a brand name or domain that is empty after normalization
func validateTarget(target models.Target) error {
	if normalizer.Normalize(target.BrandName) == "" {
		return models.NewBrandInputError("brand_name", target.BrandName)
	}
	if normalizer.Normalize(target.BrandDomain) == "" {
		return models.NewBrandInputError("brand_domain", target.BrandDomain)
	}
	return nil
}

func describe(err error) string {
	if err == nil {
		return "no result decoded"
	}
	return err.Error()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
