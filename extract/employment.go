package extract

import (
	"regexp"

	"github.com/poiesic/jobwire/core"
)

// employmentRules is evaluated in order; the first matching rule wins and no
// later rule is consulted. Part-time phrasing must outrank contract, which
// outranks internship, which outranks seasonal.
var employmentRules = []struct {
	pattern *regexp.Regexp
	result  core.EmploymentType
}{
	{regexp.MustCompile(`(?i)temps[ -]partiel|mi[ -]temps|part[ -]time|teilzeit`), core.EmploymentPartTime},
	{regexp.MustCompile(`(?i)\bcdd\b|dur[ée]e d[ée]termin[ée]e|fixed[ -]term|\bcontract(or|ing)?\b|freelance|ind[ée]pendant|befristet`), core.EmploymentContractor},
	{regexp.MustCompile(`(?i)\bstage\b|stagiaire|alternance|apprentissage|apprenti|internship|\bintern\b|praktikum`), core.EmploymentIntern},
	{regexp.MustCompile(`(?i)saisonni[eè]re?|seasonal|int[ée]rim|temporaire|temporary|saisonarbeit`), core.EmploymentTemporary},
}

// Employment classifies how the position is held, defaulting to full time.
func Employment(text string) core.EmploymentType {
	for _, rule := range employmentRules {
		if rule.pattern.MatchString(text) {
			return rule.result
		}
	}
	return core.EmploymentFullTime
}
