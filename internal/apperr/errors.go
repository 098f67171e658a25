// Package apperr holds the error taxonomy of the outreach engine.
package apperr

import "errors"

var (
	ErrNoProviderConfigured = errors.New("no mail provider configured")
	ErrTransportRejected    = errors.New("transport rejected message")
	ErrNotFound             = errors.New("not found")
	ErrValidation           = errors.New("validation failed")
	ErrDuplicate            = errors.New("duplicate message")
	ErrUnrecordedSend       = errors.New("message sent but not recorded")
	ErrImportInProgress     = errors.New("reply import already in progress")
	ErrIllegalTransition    = errors.New("illegal status transition")
)

const (
	CodeNoProviderConfigured = "NO_PROVIDER_CONFIGURED"
	CodeTransportRejected    = "TRANSPORT_REJECTED"
	CodeNotFound             = "NOT_FOUND"
	CodeValidation           = "VALIDATION"
	CodeDuplicate            = "DUPLICATE"
	CodeUnrecordedSend       = "UNRECORDED_SEND"
	CodeImportInProgress     = "IMPORT_IN_PROGRESS"
	CodeIllegalTransition    = "ILLEGAL_TRANSITION"
	CodeInternal             = "INTERNAL_ERROR"
)

var codes = []struct {
	err  error
	code string
}{
	// An unrecorded send wraps its storage cause, so it is matched first.
	{ErrUnrecordedSend, CodeUnrecordedSend},
	{ErrNoProviderConfigured, CodeNoProviderConfigured},
	{ErrTransportRejected, CodeTransportRejected},
	{ErrNotFound, CodeNotFound},
	{ErrValidation, CodeValidation},
	{ErrDuplicate, CodeDuplicate},
	{ErrImportInProgress, CodeImportInProgress},
	{ErrIllegalTransition, CodeIllegalTransition},
}

// Code maps an error chain to its taxonomy code.
func Code(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return CodeInternal
}
