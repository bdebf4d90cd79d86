package openai

import (
	"fmt"
	"strings"
)

const (
	summaryDelimiter = "===SUMMARY==="
	bodyDelimiter    = "===BODY==="
	tagsDelimiter    = "===TAGS==="
)

// buildSystemPrompt describes the strict three-block output contract. The
// delimiters are what parsing keys on, so the prompt repeats them verbatim.
func buildSystemPrompt(profession string) string {
	var b strings.Builder
	b.WriteString("You rewrite raw job postings into clean, publishable form. ")
	fmt.Fprintf(&b, "The postings target the %s profession. ", profession)
	b.WriteString("Answer in the language of the posting.\n\n")
	b.WriteString("Your answer MUST contain exactly three blocks, in this order, each introduced by its delimiter on its own line:\n\n")

	b.WriteString(summaryDelimiter + "\n")
	b.WriteString("A plain-text summary of the posting, 35 to 60 words, no markup.\n\n")

	b.WriteString(bodyDelimiter + "\n")
	b.WriteString("An HTML fragment with exactly these seven sections, each as an <h3> heading followed by content: ")
	b.WriteString("About the role, Responsibilities, Candidate profile, Benefits, Compensation, Location & Hours, How to apply. ")
	b.WriteString("Use only <h3>, <p>, <ul>, <ol>, <li>, <strong>, <em>, <br> and <a href> tags. ")
	b.WriteString("No <html>, <head>, <body> or <script> elements, no inline styles, no attributes other than href.\n\n")

	b.WriteString(tagsDelimiter + "\n")
	b.WriteString("A JSON array of 3 to 8 lowercase tags describing the posting, for example [\"spl\", \"permis ce\", \"cdi\"].\n\n")

	b.WriteString("Output nothing before the first delimiter and nothing after the tag array.")
	return b.String()
}

// buildUserPrompt packages one posting for the model.
func buildUserPrompt(title, company, plainText string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", title)
	if company != "" {
		fmt.Fprintf(&b, "Company: %s\n", company)
	}
	b.WriteString("\nPosting text:\n")
	b.WriteString(plainText)
	return b.String()
}
