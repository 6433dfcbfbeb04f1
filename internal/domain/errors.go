package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeUnavailable   = "UPSTREAM_UNAVAILABLE"
	ErrCodeOverloaded    = "OVERLOADED"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// Validation errors
var (
	ErrMissingRequiredField = NewDomainError(ErrCodeValidation, "missing required field")
	ErrInvalidTicketType    = NewDomainError(ErrCodeValidation, "invalid ticket type")
	ErrInvalidTicketStatus  = NewDomainError(ErrCodeValidation, "invalid ticket status")
	ErrInvalidBucket        = NewDomainError(ErrCodeValidation, "invalid lifecycle bucket")
	ErrInvalidMobileNumber  = NewDomainError(ErrCodeValidation, "invalid mobile number")
)

// Not found errors
var (
	ErrTicketNotFound = NewDomainError(ErrCodeNotFound, "ticket not found")
	ErrOTPNotFound    = NewDomainError(ErrCodeNotFound, "no pending verification code")
)

// Pipeline errors. Each maps to one stage of the chat pipeline so the
// orchestrator can decide what degrades and what fails the request.
var (
	ErrEmptyAudio             = NewDomainError(ErrCodeValidation, "audio clip is empty")
	ErrAudioTooLarge          = NewDomainError(ErrCodeValidation, "audio clip exceeds size limit")
	ErrUnintelligibleAudio    = NewDomainError(ErrCodeValidation, "could not recognize any speech in the audio")
	ErrTranscriberUnavailable = NewDomainError(ErrCodeUnavailable, "speech recognition is unavailable")
	ErrCorpusUnavailable      = NewDomainError(ErrCodeUnavailable, "knowledge corpus is unavailable")
	ErrGenerationFailed       = NewDomainError(ErrCodeUnavailable, "answer generation failed")
	ErrSynthesisFailed        = NewDomainError(ErrCodeUnavailable, "speech synthesis failed")
	ErrPipelineBusy           = NewDomainError(ErrCodeOverloaded, "assistant is busy, please retry shortly")
)
