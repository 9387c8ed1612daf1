package notifier

import "fmt"

// MissingCountryError indicates a watched country has no entry in the
// extracted statistics, i.e. the source table dropped or renamed it.
type MissingCountryError struct {
	Country string
}

func (e *MissingCountryError) Error() string {
	return fmt.Sprintf("watched country %q not present in extracted statistics", e.Country)
}

// DeliveryError indicates the webhook answered a delivery attempt with a
// non-200 status. The webhook was reachable, so the attempt is not retried.
type DeliveryError struct {
	StatusCode int
	Body       string
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("slack webhook rejected report with status %d: %s", e.StatusCode, e.Body)
}

// TimeoutExceededError indicates every delivery attempt timed out.
type TimeoutExceededError struct {
	Attempts int
}

func (e *TimeoutExceededError) Error() string {
	return fmt.Sprintf("slack delivery timed out on all %d attempts", e.Attempts)
}
