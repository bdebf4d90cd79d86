package openai

import (
	"encoding/json"
	"strings"

	"github.com/poiesic/jobwire/enhance"
)

// parsed is the model output after block extraction and salvage. Tags may be
// nil, meaning the caller must fall back to the keyword extractor.
type parsed struct {
	summary string
	body    string
	tags    []string
}

// minBodyLength is the threshold under which a returned body block is
// considered junk rather than a usable fragment.
const minBodyLength = 50

// parseResponse cuts the model's answer into its three delimited blocks,
// salvaging each independently:
//   - missing summary: truncate the raw answer itself
//   - missing or suspiciously short body: a single section wrapping the summary
//   - missing or malformed tag array: nil, caller falls back to keywords
func parseResponse(raw string) parsed {
	summary := extractBlock(raw, summaryDelimiter)
	body := extractBlock(raw, bodyDelimiter)
	tagBlock := extractBlock(raw, tagsDelimiter)

	if summary == "" {
		summary = enhance.TruncateWords(enhance.PlainText(raw), 60)
	}
	if len(body) < minBodyLength {
		body = "<h3>About the role</h3>\n<p>" + summary + "</p>"
	}

	var tags []string
	if tagBlock != "" {
		if err := json.Unmarshal([]byte(extractJSONArray(tagBlock)), &tags); err != nil {
			tags = nil
		}
	}

	return parsed{summary: summary, body: body, tags: tags}
}

// extractBlock returns the trimmed text between a delimiter and the next
// delimiter (or end of input), or "" when the delimiter is absent.
func extractBlock(raw, delimiter string) string {
	_, after, found := strings.Cut(raw, delimiter)
	if !found {
		return ""
	}
	if next := strings.Index(after, "==="); next >= 0 {
		after = after[:next]
	}
	return strings.TrimSpace(after)
}

// extractJSONArray trims chatter around the bracketed array a model tends to
// add despite instructions.
func extractJSONArray(block string) string {
	start := strings.Index(block, "[")
	end := strings.LastIndex(block, "]")
	if start < 0 || end <= start {
		return block
	}
	return block[start : end+1]
}
