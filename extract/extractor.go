// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package extract recovers structured facts (employment type, salary,
// remote flag, experience requirement, location) from free posting text.
// Every function is total: unmatched input yields a documented default,
// never an error. The same functions run at enrichment time and at serving
// time, so they must stay cheap and deterministic.
package extract

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/poiesic/jobwire/core"
)

var remotePattern = regexp.MustCompile(`(?i)télétravail|tele-?travail|remote|home[ -]?office|travail à distance|distanciel`)

// Remote reports whether the text mentions remote work.
func Remote(text string) bool {
	return remotePattern.MatchString(text)
}

// Extractor bundles the pure extraction functions with the one piece of
// per-process state: the country inferred from the site's own domain.
type Extractor struct {
	country string
}

// New builds an Extractor whose country is inferred once from the site URL's
// top-level domain.
func New(siteURL string) *Extractor {
	return &Extractor{country: countryFromSite(siteURL)}
}

// Facts runs every extractor over the posting's title and plain text.
func (e *Extractor) Facts(title, text string) core.Facts {
	combined := title + "\n" + text
	experience, equivalent := Experience(combined)
	return core.Facts{
		Employment:           Employment(combined),
		Remote:               Remote(combined),
		Salary:               Salary(combined),
		Experience:           experience,
		ExperienceEquivalent: equivalent,
		Location:             e.Location(combined),
	}
}

func countryFromSite(siteURL string) string {
	parsed, err := url.Parse(siteURL)
	if err != nil || parsed.Host == "" {
		return defaultCountry
	}
	host := strings.ToLower(parsed.Hostname())
	labels := strings.Split(host, ".")
	tld := labels[len(labels)-1]
	if country, ok := tldCountries[tld]; ok {
		return country
	}
	return defaultCountry
}
