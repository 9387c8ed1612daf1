package notifier

import "covidbot/internal/models"

// Column indices into a country's extracted values, following the source
// table's column order. Header wording may drift; positions are the contract.
const (
	colTotalCases = iota
	colNewCases
	colTotalDeaths
	colNewDeaths
	colActiveCases
	colSerious
	colCasesPerMillion
)

// ValueSelector resolves one report field against a country's ordered values.
// The bool result is false when the value is unavailable for this country,
// in which case the field renders no line at all.
type ValueSelector interface {
	SelectValue(values []models.FieldValue) (float64, bool)
}

// DirectField selects the value at a fixed column index.
type DirectField int

func (d DirectField) SelectValue(values []models.FieldValue) (float64, bool) {
	i := int(d)
	if i < 0 || i >= len(values) {
		return 0, false
	}
	v := values[i]
	return v.Num, v.Valid
}

// DerivedField computes a value from other columns.
type DerivedField func(values []models.FieldValue) (float64, bool)

func (d DerivedField) SelectValue(values []models.FieldValue) (float64, bool) {
	return d(values)
}

// ReportField is one labeled line in a country's report block.
type ReportField struct {
	Label    string
	Selector ValueSelector
	Decimals int
	Signed   bool // render an explicit "+" on positive values (delta columns)
	Percent  bool // strip trailing fraction zeros and append "%"
}

// FieldGroup is a set of report fields rendered as one context element.
type FieldGroup struct {
	Fields []ReportField
}

// reportFieldGroups is the fixed projection of a country's values into the
// three display elements of its report block: case counts, death counts, and
// population-relative rates.
var reportFieldGroups = []FieldGroup{
	{Fields: []ReportField{
		{Label: "Total Cases:", Selector: DirectField(colTotalCases)},
		{Label: "New Cases:", Selector: DirectField(colNewCases), Signed: true},
		{Label: "Active Cases:", Selector: DirectField(colActiveCases)},
	}},
	{Fields: []ReportField{
		{Label: "Total Deaths:", Selector: DirectField(colTotalDeaths)},
		{Label: "New Deaths:", Selector: DirectField(colNewDeaths), Signed: true},
		{Label: "Serious:", Selector: DirectField(colSerious)},
	}},
	{Fields: []ReportField{
		{Label: "Cases/1M:", Selector: DirectField(colCasesPerMillion), Decimals: 1},
		{Label: "Death Rate:", Selector: DerivedField(deathRate), Decimals: 2, Percent: true},
	}},
}

// deathRate derives total deaths as a percentage of total cases. It is
// unavailable when either input is, or when a zero case count would force a
// division by zero.
func deathRate(values []models.FieldValue) (float64, bool) {
	deaths, ok := DirectField(colTotalDeaths).SelectValue(values)
	if !ok {
		return 0, false
	}
	cases, ok := DirectField(colTotalCases).SelectValue(values)
	if !ok || cases == 0 {
		return 0, false
	}
	return deaths / cases * 100, true
}
