package textsource

import "errors"

var (
	// ErrUnreadable marks sources that do not exist or cannot be opened.
	ErrUnreadable = errors.New("source unreadable")
	// ErrExternalTool marks failures of tesseract, pdftotext or pdftoppm.
	ErrExternalTool = errors.New("external tool failed")
	// ErrTimeout marks tool invocations that exceeded the configured timeout.
	ErrTimeout = errors.New("external tool timed out")
)
