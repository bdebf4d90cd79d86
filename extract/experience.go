package extract

import (
	"fmt"
	"regexp"
)

var (
	yearsPattern      = regexp.MustCompile(`(?i)(\d+)\s*\+?\s*(?:ans?|years?|jahren?)\s*(?:de\s+|d['’]\s*|of\s+)?exp[ée]rience|(\d+)\s*\+?\s*(?:years?|jahren?)\s+(?:of\s+)?experience`)
	genericPattern    = regexp.MustCompile(`(?i)exp[ée]rience\s+(?:exig[ée]e|requise|demand[ée]e|souhait[ée]e|indispensable)|experience\s+(?:required|needed|essential)|erfahrung erforderlich`)
	equivalentPattern = regexp.MustCompile(`(?i)exp[ée]rience\s+[ée]quivalente|equivalent (?:work )?experience|ou exp[ée]rience professionnelle`)
)

// Experience recovers the stated experience requirement as a sentence, or an
// empty string when none is stated. The second result reports whether the
// text allows equivalent experience to substitute for formal education.
func Experience(text string) (string, bool) {
	equivalent := equivalentPattern.MatchString(text)

	if m := yearsPattern.FindStringSubmatch(text); m != nil {
		years := m[1]
		if years == "" {
			years = m[2]
		}
		return fmt.Sprintf("At least %s years of experience in a similar role.", years), equivalent
	}
	if genericPattern.MatchString(text) {
		return "Prior experience in a similar role is required.", equivalent
	}
	return "", equivalent
}
