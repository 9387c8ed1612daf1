package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"covidbot/internal/config"
	"covidbot/internal/models"
)

// TableExtractor turns the source document's per-country statistics table
// into a CountryStats mapping.
type TableExtractor struct {
	tableSelector string
	locale        NumberLocale
	logger        zerolog.Logger
}

// NewTableExtractor creates a new TableExtractor.
func NewTableExtractor(cfg *config.SourceConfig, locale NumberLocale, logger zerolog.Logger) *TableExtractor {
	return &TableExtractor{
		tableSelector: cfg.TableSelector,
		locale:        locale,
		logger:        logger.With().Str("component", "TableExtractor").Logger(),
	}
}

// Extract walks the configured table and returns one record per body row,
// keyed by the whitespace-normalized text of the row's first cell. Numeric
// cells are paired positionally with the header columns; cells past the
// header length are dropped, and a row shorter than the header simply has no
// entries for the trailing columns.
func (te *TableExtractor) Extract(doc *goquery.Document) (models.CountryStats, error) {
	table := doc.Find(te.tableSelector).First()
	if table.Length() == 0 {
		return nil, NewExtractionError("no table matches selector '" + te.tableSelector + "'")
	}

	fields := headerFields(table)
	if len(fields) == 0 {
		return nil, NewExtractionError("table has no recognizable header row")
	}

	stats := make(models.CountryStats)
	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		name, record, ok := te.extractRow(row, fields)
		if !ok {
			return
		}
		stats[name] = record
	})

	if len(stats) == 0 {
		return nil, NewExtractionError("table has no data rows")
	}

	te.logger.Debug().Int("countries", len(stats)).Int("columns", len(fields)).Msg("Statistics table extracted")
	return stats, nil
}

// extractRow parses one body row into its country name and record.
func (te *TableExtractor) extractRow(row *goquery.Selection, fields []string) (string, models.CountryRecord, bool) {
	cells := row.ChildrenFiltered("td, th")
	if cells.Length() == 0 {
		return "", models.CountryRecord{}, false
	}

	name := combinedText(cells.First())
	if name == "" {
		return "", models.CountryRecord{}, false
	}

	record := models.CountryRecord{Fields: make(map[string]float64)}
	dataCells := cells.Slice(1, cells.Length())
	dataCells.EachWithBreak(func(col int, cell *goquery.Selection) bool {
		if col >= len(fields) {
			return false
		}
		num, err := ParseNumber(cell.Text(), te.locale)
		if err != nil {
			te.logger.Warn().
				Str("country", name).
				Str("field", fields[col]).
				Str("cell", strings.TrimSpace(cell.Text())).
				Msg("Skipping unparsable table cell")
			record.Values = append(record.Values, models.FieldValue{})
			return true
		}
		record.Values = append(record.Values, models.FieldValue{Num: num, Valid: true})
		record.Fields[fields[col]] = num
		return true
	})

	return name, record, true
}

// headerFields returns the header cell texts in column order, skipping the
// first (country name) column.
func headerFields(table *goquery.Selection) []string {
	headerRow := table.Find("thead tr").First()

	var fields []string
	headerRow.ChildrenFiltered("th, td").Each(func(i int, cell *goquery.Selection) {
		if i == 0 {
			return
		}
		fields = append(fields, combinedText(cell))
	})
	return fields
}

// combinedText joins every text node under the selection with single spaces
// and collapses internal whitespace. The source splits some country names
// across nested elements, so plain text concatenation could fuse adjacent
// words.
func combinedText(sel *goquery.Selection) string {
	var parts []string
	for _, node := range sel.Nodes {
		collectText(node, &parts)
	}
	return strings.Join(parts, " ")
}

// collectText walks node depth-first and appends its whitespace-split text
// chunks to parts.
func collectText(node *html.Node, parts *[]string) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		*parts = append(*parts, strings.Fields(node.Data)...)
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, parts)
	}
}
