package workflow

import "errors"

// Client-side validation errors. Their text is shown to the user as is.
var (
	ErrFileTooLarge    = errors.New("File is too large. Maximum allowed size is 10 MB.")
	ErrUnsupportedType = errors.New("Unsupported file type. Please upload a PDF, PowerPoint (.pptx / .ppt), or plain text file.")
	ErrEmptyContent    = errors.New("Please add some text before running the integrity check.")
	ErrNoExtractedText = errors.New("No text could be extracted from this file. It may be empty or contain only images.")
	ErrInvalidLanguage = errors.New("Feedback language must be en or hi.")
	ErrBusy            = errors.New("another action is already in progress")
	ErrReportOpen      = errors.New("a report is open; reset to start a new draft")
	ErrSegmentIndex    = errors.New("no such segment")
)

// Fallback messages used when a collaborator failure carries no message.
const (
	fallbackUploadMessage = "Failed to process the document. Please try again."
	fallbackCheckMessage  = "Something went wrong. Please try again."
)
