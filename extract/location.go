package extract

import (
	"strings"

	"github.com/poiesic/jobwire/core"
)

const defaultCountry = "FR"

// tldCountries maps a site's top-level domain to the country its postings
// are assumed to be in. Generic TLDs fall through to the default.
var tldCountries = map[string]string{
	"fr": "FR",
	"be": "BE",
	"ch": "CH",
	"lu": "LU",
	"de": "DE",
	"at": "AT",
	"nl": "NL",
	"es": "ES",
	"it": "IT",
	"pt": "PT",
	"uk": "GB",
	"ie": "IE",
	"ca": "CA",
	"us": "US",
}

// knownCities is a priority-ordered list: the first city whose name appears
// in the text wins. Larger metropolitan areas come first so "Boulogne" next
// to "Paris" resolves to the bigger market.
var knownCities = []string{
	"Paris",
	"Marseille",
	"Lyon",
	"Toulouse",
	"Nice",
	"Nantes",
	"Montpellier",
	"Strasbourg",
	"Bordeaux",
	"Lille",
	"Rennes",
	"Reims",
	"Toulon",
	"Grenoble",
	"Dijon",
	"Angers",
	"Nîmes",
	"Clermont-Ferrand",
	"Le Mans",
	"Aix-en-Provence",
	"Brest",
	"Tours",
	"Amiens",
	"Limoges",
	"Annecy",
	"Perpignan",
	"Metz",
	"Besançon",
	"Orléans",
	"Rouen",
	"Mulhouse",
	"Caen",
	"Nancy",
}

// Location reports where the posting is. The country comes from the site's
// own domain, never from the text; the city is the first known city name the
// text contains. The result is never empty.
func (e *Extractor) Location(text string) core.LocationFact {
	fact := core.LocationFact{Country: e.country}
	lower := strings.ToLower(text)
	for _, city := range knownCities {
		if strings.Contains(lower, strings.ToLower(city)) {
			fact.City = city
			break
		}
	}
	return fact
}
