package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/jobwire/core"
)

func TestEmployment(t *testing.T) {
	tests := []struct {
		name string
		text string
		want core.EmploymentType
	}{
		{"default", "Chauffeur SPL pour tournée régionale", core.EmploymentFullTime},
		{"part time french", "Poste à temps partiel, 24h par semaine", core.EmploymentPartTime},
		{"part time english", "Part-time position available immediately", core.EmploymentPartTime},
		{"contract", "CDD de 6 mois renouvelable", core.EmploymentContractor},
		{"intern", "Stage de fin d'études en logistique", core.EmploymentIntern},
		{"seasonal", "Travail saisonnier pour la récolte", core.EmploymentTemporary},
		// Part-time phrasing outranks the contract rule.
		{"part time wins over contract", "CDD à temps partiel", core.EmploymentPartTime},
		// Contract outranks internship.
		{"contract wins over intern", "CDD avec possibilité de stage", core.EmploymentContractor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Employment(tt.text))
		})
	}
}

func TestSalaryRange(t *testing.T) {
	fact := Salary("Salaire de 28000 à 35000 € par an")
	require.NotNil(t, fact)
	assert.Equal(t, "EUR", fact.Currency)
	assert.Equal(t, core.SalaryPerYear, fact.Unit)
	assert.Equal(t, int64(28000), fact.Min)
	assert.Equal(t, int64(35000), fact.Max)
	assert.True(t, fact.HasMin)
	assert.True(t, fact.HasMax)
}

func TestSalaryThousandsSeparators(t *testing.T) {
	fact := Salary("Rémunération 28 000 - 35 000 EUR par mois")
	require.NotNil(t, fact)
	assert.Equal(t, core.SalaryPerMonth, fact.Unit)
	assert.Equal(t, int64(28000), fact.Min)
	assert.Equal(t, int64(35000), fact.Max)
}

func TestSalaryUnseparatedAmountsNotTruncated(t *testing.T) {
	// Plain digit runs must be consumed whole: a grouped-number alternative
	// matching only the leading three digits would report 350 for 35000.
	fact := Salary("Salaire de 28000 à 35000 € par an")
	require.NotNil(t, fact)
	assert.Equal(t, int64(28000), fact.Min)
	assert.Equal(t, int64(35000), fact.Max)

	fact = Salary("À partir de 28000 € par an")
	require.NotNil(t, fact)
	assert.Equal(t, int64(28000), fact.Min)
	assert.False(t, fact.HasMax)

	// Four digits, no separator.
	fact = Salary("De 1900 à 2350 € par mois")
	require.NotNil(t, fact)
	assert.Equal(t, int64(1900), fact.Min)
	assert.Equal(t, int64(2350), fact.Max)
}

func TestSalarySingleBound(t *testing.T) {
	fact := Salary("À partir de 12 € de l'heure")
	require.NotNil(t, fact)
	assert.Equal(t, "EUR", fact.Currency)
	// No unit phrase matched: hour is the default.
	assert.Equal(t, core.SalaryPerHour, fact.Unit)
	assert.Equal(t, int64(12), fact.Min)
	assert.True(t, fact.HasMin)
	assert.False(t, fact.HasMax)
}

func TestSalaryRequiresCurrency(t *testing.T) {
	// Numbers without any currency token report no salary at all.
	assert.Nil(t, Salary("De 28000 à 35000 par an selon profil"))
	// Currency without any parsable amount reports nothing either.
	assert.Nil(t, Salary("Salaire en euros selon profil"))
}

func TestExperience(t *testing.T) {
	sentence, equivalent := Experience("3 ans d'expérience exigée sur poste similaire")
	assert.Equal(t, "At least 3 years of experience in a similar role.", sentence)
	assert.False(t, equivalent)

	sentence, _ = Experience("Une expérience requise dans le transport")
	assert.Equal(t, "Prior experience in a similar role is required.", sentence)

	sentence, equivalent = Experience("Diplôme ou expérience équivalente acceptée")
	assert.Empty(t, sentence)
	assert.True(t, equivalent)

	sentence, equivalent = Experience("Débutant accepté")
	assert.Empty(t, sentence)
	assert.False(t, equivalent)
}

func TestRemote(t *testing.T) {
	assert.True(t, Remote("Télétravail partiel possible"))
	assert.True(t, Remote("Fully remote position"))
	assert.False(t, Remote("Présence sur site obligatoire"))
}

func TestLocation(t *testing.T) {
	e := New("https://www.exemple.fr")
	fact := e.Location("Poste basé à Lyon, déplacements régionaux")
	assert.Equal(t, "FR", fact.Country)
	assert.Equal(t, "Lyon", fact.City)

	// No city match still yields a country: the fact is never empty.
	fact = e.Location("Secteur grand ouest")
	assert.Equal(t, "FR", fact.Country)
	assert.Empty(t, fact.City)
}

func TestLocationCountryFromTLD(t *testing.T) {
	assert.Equal(t, "BE", New("https://jobs.exemple.be").Location("").Country)
	assert.Equal(t, "DE", New("https://jobs.beispiel.de").Location("").Country)
	// Generic and unparsable hosts fall back to the default.
	assert.Equal(t, "FR", New("https://example.com").Location("").Country)
	assert.Equal(t, "FR", New("not a url").Location("").Country)
}

func TestFactsBundle(t *testing.T) {
	e := New("https://www.exemple.fr")
	facts := e.Facts(
		"Chauffeur SPL",
		"CDI temps plein basé à Lille. Salaire de 2200 à 2500 € par mois. 2 ans d'expérience exigée. Télétravail impossible, désolé.",
	)
	assert.Equal(t, core.EmploymentFullTime, facts.Employment)
	require.NotNil(t, facts.Salary)
	assert.Equal(t, int64(2200), facts.Salary.Min)
	assert.Equal(t, core.SalaryPerMonth, facts.Salary.Unit)
	assert.Equal(t, "Lille", facts.Location.City)
	assert.NotEmpty(t, facts.Experience)
	// "Télétravail" appears even though negated: the flag is a recall-biased
	// phrase test, not sentiment analysis.
	assert.True(t, facts.Remote)
}
