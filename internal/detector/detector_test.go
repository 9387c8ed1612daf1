package detector

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"covidbot/internal/config"
)

func newTestDetector(t *testing.T) *MarkerDetector {
	t.Helper()
	cfg := config.NewDefaultSourceConfig()
	return NewMarkerDetector(&cfg, zerolog.Nop())
}

func parseDoc(t *testing.T, htmlContent string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	require.NoError(t, err)
	return doc
}

func TestExtractMarker(t *testing.T) {
	doc := parseDoc(t, `
<html><body>
<div id="page">
  <div id="nav">Coronavirus Cases</div>
  <div style="font-size:13px">Last updated: March 1, 2020, 09:00 GMT</div>
</div>
</body></html>`)

	marker, err := newTestDetector(t).ExtractMarker(doc)
	require.NoError(t, err)
	assert.Equal(t, "March 1, 2020, 09:00 GMT", marker)
}

func TestExtractMarker_PicksInnermostElement(t *testing.T) {
	// The enclosing containers' text also contains the label; the match must
	// be the innermost element so sibling text cannot leak into the marker.
	doc := parseDoc(t, `
<html><body>
<div id="outer">
  <div id="middle">
    <div id="inner">Last updated: March 1, 2020, 09:00 GMT</div>
    <div id="sibling">Countries: 210</div>
  </div>
</div>
</body></html>`)

	marker, err := newTestDetector(t).ExtractMarker(doc)
	require.NoError(t, err)
	assert.Equal(t, "March 1, 2020, 09:00 GMT", marker)
}

func TestExtractMarker_CutsAtFirstColon(t *testing.T) {
	doc := parseDoc(t, `<html><body><div>Last updated: March 1, 2020, 09:00 GMT</div></body></html>`)

	marker, err := newTestDetector(t).ExtractMarker(doc)
	require.NoError(t, err)
	assert.Equal(t, "March 1, 2020, 09:00 GMT", marker)
}

func TestExtractMarker_Missing(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{
			name: "label absent",
			html: `<html><body><div>Something else entirely</div></body></html>`,
		},
		{
			name: "label without colon",
			html: `<html><body><div>Last updated March 2020</div></body></html>`,
		},
		{
			name: "colon with empty remainder",
			html: `<html><body><div>Last updated:   </div></body></html>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestDetector(t).ExtractMarker(parseDoc(t, tt.html))
			require.Error(t, err)

			var markerErr *MarkerNotFoundError
			assert.True(t, errors.As(err, &markerErr))
		})
	}
}

func TestCommit(t *testing.T) {
	detector := newTestDetector(t)

	assert.Empty(t, detector.LastMarker())
	assert.True(t, detector.Commit("March 1, 2020, 09:00 GMT"), "first marker is always new")
	assert.Equal(t, "March 1, 2020, 09:00 GMT", detector.LastMarker())

	assert.False(t, detector.Commit("March 1, 2020, 09:00 GMT"), "unchanged marker is not new")
	assert.Equal(t, "March 1, 2020, 09:00 GMT", detector.LastMarker())

	assert.True(t, detector.Commit("March 2, 2020, 09:00 GMT"))
	assert.Equal(t, "March 2, 2020, 09:00 GMT", detector.LastMarker())

	// Commit stores before reporting, so repeating the same marker after an
	// interleaved failure stays quiet.
	assert.False(t, detector.Commit("March 2, 2020, 09:00 GMT"))
}
