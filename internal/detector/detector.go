package detector

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"covidbot/internal/config"
)

// MarkerNotFoundError indicates the freshness marker element is missing from
// the source document, meaning the page layout changed and the rest of the
// document can no longer be trusted.
type MarkerNotFoundError struct {
	Selector string
	Label    string
}

func (e *MarkerNotFoundError) Error() string {
	return fmt.Sprintf("freshness marker not found: no '%s' element carries label %q", e.Selector, e.Label)
}

// MarkerDetector extracts the source page's freshness marker and remembers
// the last one committed. The zero value of the marker (empty string) acts as
// the "no previous update" sentinel, so the first extracted marker always
// counts as new.
type MarkerDetector struct {
	selector   string
	label      string
	lastMarker string
	logger     zerolog.Logger
}

// NewMarkerDetector creates a new MarkerDetector.
func NewMarkerDetector(cfg *config.SourceConfig, logger zerolog.Logger) *MarkerDetector {
	return &MarkerDetector{
		selector: cfg.MarkerSelector,
		label:    cfg.MarkerLabel,
		logger:   logger.With().Str("component", "MarkerDetector").Logger(),
	}
}

// ExtractMarker locates the innermost element matching the configured
// selector whose text contains the marker label, and returns the trimmed text
// after the first ":". Matching innermost keeps enclosing page containers,
// whose text also contains the label, from hijacking the match.
func (md *MarkerDetector) ExtractMarker(doc *goquery.Document) (string, error) {
	element := doc.Find(md.selector).FilterFunction(func(_ int, sel *goquery.Selection) bool {
		if !strings.Contains(sel.Text(), md.label) {
			return false
		}
		labeledChildren := sel.Children().FilterFunction(func(_ int, child *goquery.Selection) bool {
			return strings.Contains(child.Text(), md.label)
		})
		return labeledChildren.Length() == 0
	}).First()

	if element.Length() == 0 {
		return "", &MarkerNotFoundError{Selector: md.selector, Label: md.label}
	}

	_, rest, found := strings.Cut(element.Text(), ":")
	marker := strings.TrimSpace(rest)
	if !found || marker == "" {
		return "", &MarkerNotFoundError{Selector: md.selector, Label: md.label}
	}
	return marker, nil
}

// Commit compares marker against the last committed one and reports whether
// it is new. A new marker is stored before reporting true, so a failure later
// in the cycle cannot cause the same marker to be processed twice.
func (md *MarkerDetector) Commit(marker string) bool {
	if marker == md.lastMarker {
		return false
	}
	md.lastMarker = marker
	return true
}

// LastMarker returns the most recently committed marker.
func (md *MarkerDetector) LastMarker() string {
	return md.lastMarker
}
