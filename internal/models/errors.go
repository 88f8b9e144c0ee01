package models

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRecord indicates that a raw result record is not a decodable result structure
	ErrMalformedRecord = errors.New("malformed result record")

	// ErrInvalidBrandInput indicates that the target brand name or domain is empty
	ErrInvalidBrandInput = errors.New("invalid brand input")

	// ErrUnrecognizedShape indicates that an uploaded record file has an unknown layout
	ErrUnrecognizedShape = errors.New("unrecognized record file shape")

	// ErrNoKeywords indicates that a fetch was requested without any keyword
	ErrNoKeywords = errors.New("no keywords supplied")

	// ErrMissingAPIKey indicates that the SERP provider credentials are not configured
	ErrMissingAPIKey = errors.New("serp api key not configured")

	// ErrFetchFailed indicates that the SERP provider request could not be completed
	ErrFetchFailed = errors.New("serp fetch failed")

	// ErrProviderStatus indicates that the SERP provider answered with a non-success status
	ErrProviderStatus = errors.New("serp provider returned an error status")

	// ErrFetchTimeout indicates that fetching a keyword timed out
	ErrFetchTimeout = errors.New("timeout while fetching serp results")

	// ErrRateLimitExceeded indicates that rate limit has been exceeded
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// ErrCacheMiss indicates that the key is not cached or has expired
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable indicates that cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")
)

// RecordError describes a single record that could not be decoded
type RecordError struct {
	Index   int
	Keyword string
	Message string
	Err     error
}

func (e *RecordError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("record %d (%q): %s: %v", e.Index, e.Keyword, e.Message, e.Err)
	}
	return fmt.Sprintf("record %d (%q): %s", e.Index, e.Keyword, e.Message)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// NewRecordError creates a malformed-record error
func NewRecordError(index int, keyword, message string) *RecordError {
	return &RecordError{
		Index:   index,
		Keyword: keyword,
		Message: message,
		Err:     ErrMalformedRecord,
	}
}

// BrandInputError reports which target field failed validation
type BrandInputError struct {
	Field string
	Value string
}

func (e *BrandInputError) Error() string {
	return fmt.Sprintf("%s: %s must not be empty (got %q)", ErrInvalidBrandInput, e.Field, e.Value)
}

func (e *BrandInputError) Unwrap() error {
	return ErrInvalidBrandInput
}

// NewBrandInputError creates a brand input validation error
func NewBrandInputError(field, value string) *BrandInputError {
	return &BrandInputError{Field: field, Value: value}
}

// KeywordError represents an error specific to fetching one keyword
type KeywordError struct {
	Keyword string
	Message string
	Err     error
}

func (e *KeywordError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("keyword %s: %s: %v", e.Keyword, e.Message, e.Err)
	}
	return fmt.Sprintf("keyword %s: %s", e.Keyword, e.Message)
}

func (e *KeywordError) Unwrap() error {
	return e.Err
}

// NewKeywordError creates a new keyword-specific error
func NewKeywordError(keyword, message string, err error) *KeywordError {
	return &KeywordError{
		Keyword: keyword,
		Message: message,
		Err:     err,
	}
}
