package feed

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/jobwire/core"
)

// feedTimeLayouts are tried in order when parsing pubdate/date_updated.
var feedTimeLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Parser turns a feed byte stream into a lazy, forward-only sequence of raw
// records. It is single-pass and never buffers the whole document: feeds can
// carry tens of thousands of records.
type Parser struct {
	decoder *xml.Decoder
	logger  *slog.Logger
	now     func() time.Time
}

// NewParser wraps a feed byte stream. Pass nil to use the default logger.
func NewParser(r io.Reader, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	decoder := xml.NewDecoder(r)
	// Feeds declare legacy encodings; pass raw bytes through rather than fail.
	decoder.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		return input, nil
	}
	return &Parser{
		decoder: decoder,
		logger:  logger.With("component", "feed-parser"),
		now:     time.Now,
	}
}

// recordState accumulates one record's fields. First occurrence wins for the
// url/link pair; first non-empty wins for the guid/referencenumber pair.
type recordState struct {
	rec      core.RawRecord
	hasTitle bool
	hasCo    bool
	hasDesc  bool
	hasDate  bool
}

func (s *recordState) set(name, value string) {
	switch name {
	case "title":
		if !s.hasTitle {
			s.rec.Title = value
			s.hasTitle = true
		}
	case "company":
		if !s.hasCo {
			s.rec.Company = value
			s.hasCo = true
		}
	case "description":
		if !s.hasDesc {
			s.rec.Description = value
			s.hasDesc = true
		}
	case "url", "link":
		if s.rec.Link == "" {
			s.rec.Link = value
		}
	case "guid", "referencenumber":
		if s.rec.GUID == "" && value != "" {
			s.rec.GUID = value
		}
	case "pubdate", "date_updated":
		if s.hasDate {
			return
		}
		for _, layout := range feedTimeLayouts {
			if t, err := time.Parse(layout, value); err == nil {
				s.rec.PublishedAt = t.UTC().Unix()
				s.hasDate = true
				return
			}
		}
	}
}

// Each walks the stream, invoking fn once per record. A malformed document
// ends the sequence early without error (records already emitted stand); a
// broken transport or an error returned by fn is propagated.
func (p *Parser) Each(fn func(core.RawRecord) error) error {
	var (
		inRecord  bool
		recordTag string
		field     string
		text      strings.Builder
		state     *recordState
		emitted   int
	)

	for {
		tok, err := p.decoder.Token()
		if err == io.EOF {
			p.logger.Debug("feed stream ended", "records", emitted)
			return nil
		}
		if err != nil {
			var syntaxErr *xml.SyntaxError
			if errors.As(err, &syntaxErr) {
				// Partial feeds are tolerated: log and end the sequence.
				p.logger.Warn("malformed feed element, ending stream early",
					"line", syntaxErr.Line, "error", syntaxErr.Msg, "records", emitted)
				return nil
			}
			return fmt.Errorf("%w: %v", ErrStreamFailed, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := strings.ToLower(t.Name.Local)
			if !inRecord {
				if name == "job" || name == "item" {
					inRecord = true
					recordTag = name
					state = &recordState{}
				}
				continue
			}
			if field == "" {
				field = name
				text.Reset()
			}
			// Nested markup inside a field keeps feeding the same field.

		case xml.CharData:
			if inRecord && field != "" {
				text.Write(t)
			}

		case xml.EndElement:
			if !inRecord {
				continue
			}
			name := strings.ToLower(t.Name.Local)
			if name == field {
				state.set(field, strings.TrimSpace(text.String()))
				field = ""
				continue
			}
			if name == recordTag && field == "" {
				if !state.hasDate {
					state.rec.PublishedAt = p.now().UTC().Unix()
				}
				if err := fn(state.rec); err != nil {
					return err
				}
				emitted++
				inRecord = false
				state = nil
			}
		}
	}
}
