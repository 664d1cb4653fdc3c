// Package errors provides structured error handling for mandex.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: IO errors (source text, cache files)
//   - 3XX: External tool errors (extractor, viewer)
//   - 4XX: Validation errors
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryIO indicates file and disk I/O errors.
	CategoryIO Category = "IO"
	// CategoryTool indicates failures of external tools (pdftotext, viewers).
	CategoryTool Category = "TOOL"
	// CategoryValidation indicates input validation errors.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates unrecoverable error, must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates operation failed but can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "ERR_102_CONFIG_INVALID"

	// IO errors (200-299)
	ErrCodeSourceUnavailable = "ERR_201_SOURCE_UNAVAILABLE"
	ErrCodeFilePermission    = "ERR_202_FILE_PERMISSION"
	ErrCodeCacheCorrupt      = "ERR_205_CACHE_CORRUPT"
	ErrCodeCacheWriteFailed  = "ERR_206_CACHE_WRITE_FAILED"

	// External tool errors (300-399)
	ErrCodeExtractFailed     = "ERR_301_EXTRACT_FAILED"
	ErrCodeViewerUnavailable = "ERR_302_VIEWER_UNAVAILABLE"
	ErrCodeViewerFailed      = "ERR_303_VIEWER_FAILED"

	// Validation errors (400-499)
	ErrCodeMnemonicNotFound = "ERR_401_MNEMONIC_NOT_FOUND"
	ErrCodeInvalidInput     = "ERR_402_INVALID_INPUT"
	ErrCodeInvalidRule      = "ERR_403_INVALID_RULE"

	// Internal errors (500-599)
	ErrCodeInternal = "ERR_501_INTERNAL"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// Extract the leading digit of the numeric portion
	// (e.g., '2' from "ERR_201_SOURCE_UNAVAILABLE").
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryIO
	case '3':
		return CategoryTool
	case '4':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
func severityFromCode(code string) Severity {
	switch code {
	// Cache-layer failures degrade to a rebuild, never abort.
	case ErrCodeCacheCorrupt, ErrCodeCacheWriteFailed:
		return SeverityWarning
	// A missing source text cannot be recovered from.
	case ErrCodeSourceUnavailable:
		return SeverityFatal
	default:
		return SeverityError
	}
}
