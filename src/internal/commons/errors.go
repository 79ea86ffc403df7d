package commons

import "errors"

var (
	ErrRecordNotFound   = errors.New("record not found")
	ErrDuplicateRecord  = errors.New("duplicate record")
	ErrInvalidStep      = errors.New("operation not allowed at current step")
	ErrSubmitInProgress = errors.New("submission already in progress")
	ErrInvalidStatus    = errors.New("status transition not allowed")
	ErrIncorrectPin     = errors.New("incorrect pin")
	ErrNothingToExport  = errors.New("no data to export")
	ErrNoPhoneNumber    = errors.New("no phone number on record")
)

// Response messages shared between services and the controllers that map them to status codes.
const (
	MessageValidationFailed = "validation failed"
	MessageSessionNotFound  = "Session not found"
	MessageInvalidStep      = "Step not allowed"
	MessageNotFound         = "Transaction not found"
	MessageIncorrectPin     = "Incorrect PIN"
	MessageNothingToExport  = "No data to export"
	MessageAlreadyFinal     = "Transaction cannot be approved"
	MessageInProgress       = "Submission already in progress"
)
