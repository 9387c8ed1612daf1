package extractor

import "fmt"

// ExtractionError indicates the source document does not contain the expected
// statistics table structure, so no country data could be extracted.
type ExtractionError struct {
	Reason string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("statistics table extraction failed: %s", e.Reason)
}

// NewExtractionError creates a new extraction error
func NewExtractionError(reason string) *ExtractionError {
	return &ExtractionError{Reason: reason}
}
