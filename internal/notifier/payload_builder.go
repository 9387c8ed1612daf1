package notifier

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"covidbot/internal/config"
	"covidbot/internal/models"
)

const (
	// summaryTemplate heads every report and doubles as the plain-text
	// notification fallback.
	summaryTemplate = ":chart_with_upwards_trend: *COVID-19 situation report* (Last updated: %s)"

	// labelValueSeparator sits between a field label and its backticked
	// value. It is a fixed run of twelve spaces, not alignment padding.
	labelValueSeparator = "            "
)

// PayloadBuilder projects extracted statistics for the watched countries into
// a Slack message payload. Building is pure: the same statistics and marker
// always produce the same payload.
type PayloadBuilder struct {
	watched []config.WatchedCountry
	channel string
	printer *message.Printer
}

// NewPayloadBuilder creates a new PayloadBuilder rendering numbers for the
// given locale.
func NewPayloadBuilder(watched []config.WatchedCountry, channel string, locale language.Tag) *PayloadBuilder {
	return &PayloadBuilder{
		watched: watched,
		channel: channel,
		printer: message.NewPrinter(locale),
	}
}

// BuildReport assembles the outbound message: a summary section first, then
// one divider and one context block per watched country in configured order.
// Every watched country must be present in stats.
func (pb *PayloadBuilder) BuildReport(stats models.CountryStats, marker string) (models.SlackMessagePayload, error) {
	summary := fmt.Sprintf(summaryTemplate, marker)

	blocks := make([]models.SlackBlock, 0, 1+2*len(pb.watched))
	blocks = append(blocks, models.NewSectionBlock(summary))

	for _, country := range pb.watched {
		record, ok := stats[country.Name]
		if !ok {
			return models.SlackMessagePayload{}, &MissingCountryError{Country: country.Name}
		}
		blocks = append(blocks, models.NewDividerBlock())
		blocks = append(blocks, pb.countryBlock(country, record))
	}

	return models.SlackMessagePayload{
		Text:    summary,
		Blocks:  blocks,
		Channel: pb.channel,
	}, nil
}

// countryBlock renders one watched country: the configured intro text
// followed by the fixed field groups formatted against the country's values.
func (pb *PayloadBuilder) countryBlock(country config.WatchedCountry, record models.CountryRecord) models.SlackBlock {
	elements := make([]string, 0, 1+len(reportFieldGroups))
	elements = append(elements, country.Intro)
	for _, group := range reportFieldGroups {
		if text := pb.formatGroup(group, record); text != "" {
			elements = append(elements, text)
		}
	}
	return models.NewContextBlock(elements...)
}

// formatGroup renders a group as newline-joined "Label:            `value`"
// lines. Fields whose value is unavailable contribute no line; a group with
// no lines left renders no element.
func (pb *PayloadBuilder) formatGroup(group FieldGroup, record models.CountryRecord) string {
	lines := make([]string, 0, len(group.Fields))
	for _, field := range group.Fields {
		value, ok := field.Selector.SelectValue(record.Values)
		if !ok {
			continue
		}
		lines = append(lines, field.Label+labelValueSeparator+"`"+pb.formatValue(field, value)+"`")
	}
	return strings.Join(lines, "\n")
}

// formatValue renders a number with locale-aware grouping at the field's
// fixed decimal count.
func (pb *PayloadBuilder) formatValue(field ReportField, value float64) string {
	text := pb.printer.Sprint(number.Decimal(value,
		number.MinFractionDigits(field.Decimals),
		number.MaxFractionDigits(field.Decimals)))
	if field.Percent {
		text = stripTrailingZeros(text) + "%"
	}
	if field.Signed && value > 0 {
		text = "+" + text
	}
	return text
}

// stripTrailingZeros removes trailing fraction zeros and a dangling decimal
// separator, e.g. "2.00" -> "2" and "3.50" -> "3.5". Integer zeros are safe
// because the separator terminates the trim.
func stripTrailingZeros(s string) string {
	if !strings.ContainsAny(s, ".,") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".,")
}
