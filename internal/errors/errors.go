// Package errors provides the typed error taxonomy of the pricing engine.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeUnknownTier indicates a tier that is not offered for the requested category
	TypeUnknownTier Type = "UNKNOWN_TIER"

	// TypeInvalidDuration indicates a duration outside the catalog's duration schedule
	TypeInvalidDuration Type = "INVALID_DURATION"

	// TypeInvariant indicates a computed quote broke a pricing invariant.
	// This always means the rate catalog is misconfigured.
	TypeInvariant Type = "PRICING_INVARIANT_VIOLATION"

	// TypeUnsupportedAddon indicates an add-on the category does not offer
	TypeUnsupportedAddon Type = "UNSUPPORTED_ADDON"

	// TypeInput indicates any other malformed request
	TypeInput Type = "INVALID_INPUT"

	// TypeConfig indicates a configuration error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeCatalog indicates a rate catalog that cannot be parsed or fails validation
	TypeCatalog Type = "CATALOG_ERROR"

	// TypeNotFound indicates a resource not found error
	TypeNotFound Type = "NOT_FOUND"

	// TypeQuoteMismatch indicates a quote id no longer matches a recomputed quote
	TypeQuoteMismatch Type = "QUOTE_MISMATCH"

)

// Error represents a pricing error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(errType Type, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// TypeOf returns the type of the first *Error in err's chain, or "" if there is none
func TypeOf(err error) Type {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	return ""
}

// IsType checks if an error, or anything it wraps, is of a specific type
func IsType(err error, t Type) bool {
	return err != nil && TypeOf(err) == t
}

// UnknownTier creates an unknown tier error
func UnknownTier(category, tier string) *Error {
	return Newf(TypeUnknownTier, "tier %q is not offered for category %q", tier, category).
		WithContext("category", category).
		WithContext("tier", tier)
}

// InvalidDuration creates an invalid duration error
func InvalidDuration(months int, allowed []int) *Error {
	return Newf(TypeInvalidDuration, "duration of %d months is not one of %v", months, allowed).
		WithContext("duration_months", months)
}

// UnsupportedAddon creates an unsupported add-on error
func UnsupportedAddon(category, addon string) *Error {
	return Newf(TypeUnsupportedAddon, "add-on %q is not offered for category %q", addon, category).
		WithContext("category", category).
		WithContext("addon", addon)
}

// Invariant creates a pricing invariant violation
func Invariant(message string) *Error {
	return New(TypeInvariant, message)
}

// Input creates an input error
func Input(message string) *Error {
	return New(TypeInput, message)
}

// Catalog creates a catalog error
func Catalog(message string, cause error) *Error {
	return Wrap(TypeCatalog, message, cause)
}

// Config creates a configuration error
func Config(message string, cause error) *Error {
	return Wrap(TypeConfig, message, cause)
}

// NotFound creates a not found error
func NotFound(resourceType, identifier string) *Error {
	return Newf(TypeNotFound, "%s not found: %s", resourceType, identifier)
}

// QuoteMismatch creates a stale quote error
func QuoteMismatch(expected, actual string) *Error {
	return Newf(TypeQuoteMismatch, "quote %s no longer matches the current price (now %s)", expected, actual).
		WithContext("quote_id", expected)
}
