package enhance

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"
)

// sectionNames is the fixed body structure both enrichment paths produce, in
// order.
var sectionNames = []string{
	"About the role",
	"Responsibilities",
	"Candidate profile",
	"Benefits",
	"Compensation",
	"Location & Hours",
	"How to apply",
}

// Fallback is the deterministic enrichment path. It is always available and
// never fails: identical input yields identical output, which is what makes
// AI degradation safe.
type Fallback struct {
	profession string
	logger     *slog.Logger
}

var _ Enhancer = (*Fallback)(nil)

// NewFallback creates the deterministic enhancer for a profession.
func NewFallback(profession string) *Fallback {
	return &Fallback{
		profession: strings.ToLower(strings.TrimSpace(profession)),
		logger:     slog.Default().With("component", "fallback-enhancer"),
	}
}

// Enhance builds a summary, a seven-section body, and a tag set from the raw
// description alone. The error result is always nil.
func (f *Fallback) Enhance(ctx context.Context, req Request) (*Result, error) {
	text := PlainText(req.DescriptionHTML)

	summary := TruncateWords(text, 60)
	if summary == "" {
		summary = strings.TrimSpace(fmt.Sprintf("%s %s", req.Title, req.Company))
	}

	return &Result{
		Summary:  summary,
		BodyHTML: SanitizeBody(f.buildBody(req, text)),
		Tags:     ExtractTags(req.Title, req.Company, text, f.profession),
		UsedAI:   false,
	}, nil
}

// Close releases resources. The fallback holds none.
func (f *Fallback) Close() error {
	return nil
}

// buildBody synthesizes the fixed seven-section structure, spending the
// description's first paragraphs on the opening sections and generic
// boilerplate where content runs out.
func (f *Fallback) buildBody(req Request, text string) string {
	paragraphs := Paragraphs(text)

	content := map[string]string{
		"About the role":    genericAbout(req),
		"Responsibilities":  "The day-to-day responsibilities are described in the posting above and will be detailed during the interview.",
		"Candidate profile": "Candidates should bring the qualifications and certifications customary for this kind of position.",
		"Benefits":          "Benefits follow the employer's current collective agreements and company policy.",
		"Compensation":      "Compensation is discussed directly with the employer and depends on profile and experience.",
		"Location & Hours":  "Work location and schedule are specified by the employer in the posting details.",
		"How to apply":      "Follow the posting's application link to submit your candidacy directly to the employer.",
	}
	for i, section := range sectionNames[:3] {
		if i < len(paragraphs) {
			content[section] = TruncateWords(paragraphs[i], 120)
		}
	}

	var b strings.Builder
	for _, section := range sectionNames {
		// Headings are escaped too: "Location & Hours" must read the same
		// before and after sanitization.
		fmt.Fprintf(&b, "<h3>%s</h3>\n<p>%s</p>\n", html.EscapeString(section), html.EscapeString(content[section]))
	}
	return b.String()
}

func genericAbout(req Request) string {
	switch {
	case req.Title != "" && req.Company != "":
		return fmt.Sprintf("%s is looking for a %s.", req.Company, req.Title)
	case req.Title != "":
		return fmt.Sprintf("An employer is looking for a %s.", req.Title)
	default:
		return "See the posting details below."
	}
}
