package models

import (
	"encoding/json"
	"time"
)

// Report status values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// RawResultRecord is one keyword's raw SERP result as delivered by the provider or a saved file.
// Keyword is the caller-known keyword and may be empty, in which case it is read from the payload.
type RawResultRecord struct {
	Keyword string          `json:"keyword,omitempty"`
	Payload json.RawMessage `json:"payload"`
}

// Reference is a single cited source of an AI Overview
type Reference struct {
	Rank   int    `json:"rank"`
	Domain string `json:"domain"`
}

// Overview holds the citation list and narrative of an AI Overview block
type Overview struct {
	References    []Reference `json:"references"`
	NarrativeText string      `json:"narrative_text"`
}

// OverviewRecord is the extracted view of one keyword's result.
// A nil Overview means the result carried no AI Overview.
type OverviewRecord struct {
	Keyword  string    `json:"keyword"`
	Overview *Overview `json:"overview,omitempty"`
}

// HasOverview reports whether an AI Overview block was found
func (o OverviewRecord) HasOverview() bool {
	return o.Overview != nil
}

// References returns the ordered references, empty when there is no overview
func (o OverviewRecord) References() []Reference {
	if o.Overview == nil {
		return []Reference{}
	}
	return o.Overview.References
}

// NarrativeText returns the overview text, empty when there is no overview
func (o OverviewRecord) NarrativeText() string {
	if o.Overview == nil {
		return ""
	}
	return o.Overview.NarrativeText
}

// Target identifies the brand the caller wants dedicated metrics for
type Target struct {
	BrandName   string `json:"brand_name"`
	BrandDomain string `json:"brand_domain"`
}

// KeywordRow is the per-keyword analysis output
type KeywordRow struct {
	Keyword                   string      `json:"keyword"`
	HasOverview               bool        `json:"has_overview"`
	TargetBrandCited          bool        `json:"target_brand_cited"`
	TargetBrandRank           *int        `json:"target_brand_rank"`
	TargetBrandMentionedCount int         `json:"target_brand_mentioned_count"`
	AllReferencesDisplay      []string    `json:"all_references_display"`
	RawReferences             []Reference `json:"raw_references"`

	// NarrativeText is kept for the competitor fold and never serialized
	NarrativeText string `json:"-"`
}

// CompetitorRow is the per-brand engagement output across all keywords
type CompetitorRow struct {
	Brand           string  `json:"brand"`
	CitedCount      int     `json:"cited_count"`
	Mentioned       int     `json:"mentioned"`
	PromptCitedRate float64 `json:"prompt_cited_rate"`
	MentionRate     float64 `json:"mention_rate"`
}

// Engagement is the combined citation and mention total used for ranking
func (c CompetitorRow) Engagement() int {
	return c.CitedCount + c.Mentioned
}

// AnalysisReport is the single return contract of an analysis run
type AnalysisReport struct {
	Status                string          `json:"status"`
	Message               string          `json:"message,omitempty"`
	TargetBrand           string          `json:"target_brand,omitempty"`
	TargetDomain          string          `json:"target_domain,omitempty"`
	KeywordsAnalyzed      int             `json:"keywords_analyzed"`
	AIOverviewsFound      int             `json:"ai_overviews_found"`
	CompetitorsIdentified int             `json:"competitors_identified"`
	MalformedRecords      int             `json:"malformed_records"`
	KeywordsTable         []KeywordRow    `json:"keywords_table"`
	CompetitorsTable      []CompetitorRow `json:"competitors_table"`
	Timestamp             time.Time       `json:"timestamp"`
}

// Succeeded reports whether the analysis produced tables
func (r *AnalysisReport) Succeeded() bool {
	return r != nil && r.Status == StatusSuccess
}

// MarshalJSON omits both tables from an error report; a success keeps them even when empty
func (r AnalysisReport) MarshalJSON() ([]byte, error) {
	type plain AnalysisReport
	if r.Status != StatusError {
		return json.Marshal(plain(r))
	}
	return json.Marshal(struct {
		plain
		KeywordsTable    []KeywordRow    `json:"keywords_table,omitempty"`
		CompetitorsTable []CompetitorRow `json:"competitors_table,omitempty"`
	}{plain: plain(r)})
}

// AnalyzeRequest is the body of POST /api/analyze
type AnalyzeRequest struct {
	BrandName   string            `json:"brand_name"`
	BrandDomain string            `json:"brand_domain"`
	Records     []json.RawMessage `json:"records"`
}

// FetchAnalysisRequest is the body of POST /api/fetch-analysis
type FetchAnalysisRequest struct {
	Keywords     []string `json:"keywords"`
	KeywordsText string   `json:"keywords_text,omitempty"`
	LocationCode string   `json:"location_code"`
	LanguageCode string   `json:"language_code"`
	BrandName    string   `json:"brand_name"`
	BrandDomain  string   `json:"brand_domain"`
}

// Target returns the brand target carried by the request
func (r FetchAnalysisRequest) Target() Target {
	return Target{BrandName: r.BrandName, BrandDomain: r.BrandDomain}
}

// ProgressFunc is invoked after each keyword's record resolves
type ProgressFunc func(completed, total int)

// LogSeverity represents the severity level of a log entry
type LogSeverity string

const (
	LogSeverityLow    LogSeverity = "low"
	LogSeverityMedium LogSeverity = "medium"
	LogSeverityHigh   LogSeverity = "high"
)

// ProcessType represents the type of process that created the log
type ProcessType string

const (
	ProcessTypeRequest  ProcessType = "request"
	ProcessTypeInternal ProcessType = "internal"
)

// LogEvent represents a process-specific logging context
type LogEvent struct {
	ProcessID   string      `json:"process_id"`
	ProcessType ProcessType `json:"process_type"`
	StartTime   time.Time   `json:"start_time"`
	ClientIP    string      `json:"client_ip,omitempty"`
}

// LogEntry represents a structured log entry for database storage
type LogEntry struct {
	ID          string                 `json:"id"`
	Timestamp   time.Time              `json:"timestamp"`
	Severity    LogSeverity            `json:"severity,omitempty"`
	Message     string                 `json:"message"`
	Operation   string                 `json:"operation"`
	TargetName  string                 `json:"target_name,omitempty"`
	ProcessID   string                 `json:"process_id"`
	ProcessType ProcessType            `json:"process_type"`
	ClientIP    string                 `json:"client_ip,omitempty"`
	Error       string                 `json:"error,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}
