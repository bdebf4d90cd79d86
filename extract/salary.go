package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/poiesic/jobwire/core"
)

// currencyRules is evaluated in order; a salary is only reported when one of
// these matches, no matter what numbers the text contains.
var currencyRules = []struct {
	pattern *regexp.Regexp
	code    string
}{
	{regexp.MustCompile(`(?i)€|\beuros?\b|\beur\b`), "EUR"},
	{regexp.MustCompile(`(?i)\$|\busd\b|\bdollars?\b`), "USD"},
	{regexp.MustCompile(`(?i)£|\bgbp\b|\bpounds?\b`), "GBP"},
	{regexp.MustCompile(`(?i)\bchf\b|francs? suisses?`), "CHF"},
}

// unitRules is evaluated in order: year before month before week before day.
// Hour is the default when nothing matches.
var unitRules = []struct {
	pattern *regexp.Regexp
	unit    core.SalaryUnit
}{
	{regexp.MustCompile(`(?i)par an\b|/\s*an\b|annuels?|annuelles?|annual|per year|yearly|jährlich|pro jahr`), core.SalaryPerYear},
	{regexp.MustCompile(`(?i)par mois|/\s*mois|mensuels?|mensuelles?|monthly|per month|pro monat`), core.SalaryPerMonth},
	{regexp.MustCompile(`(?i)par semaine|/\s*semaine|hebdomadaires?|weekly|per week|pro woche`), core.SalaryPerWeek},
	{regexp.MustCompile(`(?i)par jour|/\s*jour|journaliers?|journalières?|daily|per day|pro tag`), core.SalaryPerDay},
}

// number matches an integer amount, either separator-grouped (space, narrow
// space, dot, or comma between three-digit groups) or a plain digit run. The
// grouped alternative requires at least one separator: alternation is
// leftmost-first, and an optional group would let it stop after the first
// three digits of a plain number like 28000.
const number = `\d{1,3}(?:[ .,\x{00a0}\x{202f}]\d{3})+|\d+`

var (
	rangePattern = regexp.MustCompile(`(?i)(` + number + `)\s*(?:[-–—]|à)\s*(` + number + `)`)
	floorPattern = regexp.MustCompile(`(?i)(?:from|starting at|à partir de|dès|up to|jusqu'à|jusqu’à)\s*(` + number + `)`)
)

// Salary recovers a salary statement from free text. It returns nil unless a
// currency token was found and at least one amount was parsed.
func Salary(text string) *core.SalaryFact {
	currency := ""
	for _, rule := range currencyRules {
		if rule.pattern.MatchString(text) {
			currency = rule.code
			break
		}
	}
	if currency == "" {
		return nil
	}

	unit := core.SalaryPerHour
	for _, rule := range unitRules {
		if rule.pattern.MatchString(text) {
			unit = rule.unit
			break
		}
	}

	if m := rangePattern.FindStringSubmatch(text); m != nil {
		min, okMin := parseAmount(m[1])
		max, okMax := parseAmount(m[2])
		if okMin && okMax {
			return &core.SalaryFact{
				Currency: currency,
				Unit:     unit,
				Min:      min,
				Max:      max,
				HasMin:   true,
				HasMax:   true,
			}
		}
	}

	// Single-bound phrasing yields a minimum only.
	if m := floorPattern.FindStringSubmatch(text); m != nil {
		if min, ok := parseAmount(m[1]); ok {
			return &core.SalaryFact{
				Currency: currency,
				Unit:     unit,
				Min:      min,
				HasMin:   true,
			}
		}
	}

	return nil
}

// parseAmount strips thousands separators and parses the remaining digits.
func parseAmount(s string) (int64, bool) {
	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
