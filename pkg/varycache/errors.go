package varycache

import "errors"

var (
	// ErrInvalidGroupName is returned when a group name fails validation.
	// It wraps the codec-level sentinel describing the exact violation.
	ErrInvalidGroupName = errors.New("varycache.invalid_vary_group_name")

	// ErrInvalidGroupSegment is returned when a segment value fails validation.
	ErrInvalidGroupSegment = errors.New("varycache.invalid_vary_group_segment")

	// ErrDelimiterInToken indicates a name or value contains one of the
	// reserved cookie delimiters.
	ErrDelimiterInToken = errors.New("varycache.group_cannot_use_delimiter")

	// ErrInvalidTokenChars indicates a name or value contains characters
	// outside the [A-Za-z0-9_-] whitelist.
	ErrInvalidTokenChars = errors.New("varycache.group_invalid_chars")

	// ErrDidSendHeaders is returned by every mutating operation invoked
	// after the response headers have been emitted.
	ErrDidSendHeaders = errors.New("varycache.did_send_headers")
)
