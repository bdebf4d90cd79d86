package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/jobwire/core"
)

func collect(t *testing.T, doc string) []core.RawRecord {
	t.Helper()
	parser := NewParser(strings.NewReader(doc), nil)
	var records []core.RawRecord
	err := parser.Each(func(rec core.RawRecord) error {
		records = append(records, rec)
		return nil
	})
	require.NoError(t, err)
	return records
}

func TestParserItemDialect(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<rss><channel>
  <item>
    <guid>A1</guid>
    <title> Chauffeur SPL </title>
    <company>Transports Nord</company>
    <link>https://example.test/a1</link>
    <description><![CDATA[<p>Conduite régionale</p>]]></description>
    <pubDate>Mon, 02 Jan 2006 15:04:05 +0100</pubDate>
  </item>
  <item>
    <guid>A2</guid>
    <title>Cariste</title>
  </item>
</channel></rss>`

	records := collect(t, doc)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "A1", first.GUID)
	assert.Equal(t, "Chauffeur SPL", first.Title, "child text is trimmed")
	assert.Equal(t, "Transports Nord", first.Company)
	assert.Equal(t, "https://example.test/a1", first.Link)
	assert.Equal(t, "<p>Conduite régionale</p>", first.Description)

	want, _ := time.Parse(time.RFC1123Z, "Mon, 02 Jan 2006 15:04:05 +0100")
	assert.Equal(t, want.UTC().Unix(), first.PublishedAt)

	assert.Equal(t, "A2", records[1].GUID)
}

func TestParserJobDialect(t *testing.T) {
	doc := `<source>
  <job>
    <referencenumber>R-77</referencenumber>
    <title>Magasinier</title>
    <url>https://example.test/r77</url>
    <date_updated>2024-03-01 08:30:00</date_updated>
  </job>
</source>`

	records := collect(t, doc)
	require.Len(t, records, 1)
	assert.Equal(t, "R-77", records[0].GUID, "referencenumber serves as identity")
	assert.Equal(t, "https://example.test/r77", records[0].Link)

	want, _ := time.Parse("2006-01-02 15:04:05", "2024-03-01 08:30:00")
	assert.Equal(t, want.UTC().Unix(), records[0].PublishedAt)
}

func TestParserFirstWins(t *testing.T) {
	doc := `<rss><item>
  <url>https://example.test/first</url>
  <link>https://example.test/second</link>
  <guid></guid>
  <referencenumber>R-1</referencenumber>
  <title>One</title>
  <title>Two</title>
</item></rss>`

	records := collect(t, doc)
	require.Len(t, records, 1)
	assert.Equal(t, "https://example.test/first", records[0].Link)
	assert.Equal(t, "R-1", records[0].GUID, "empty guid yields to referencenumber")
	assert.Equal(t, "One", records[0].Title)
}

func TestParserDefaultsPubDateToNow(t *testing.T) {
	parser := NewParser(strings.NewReader(`<rss><item><title>X</title><pubDate>not a date</pubDate></item></rss>`), nil)
	frozen := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	parser.now = func() time.Time { return frozen }

	var records []core.RawRecord
	err := parser.Each(func(rec core.RawRecord) error {
		records = append(records, rec)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, frozen.Unix(), records[0].PublishedAt)
}

func TestParserToleratesTruncatedDocument(t *testing.T) {
	// The second record is cut off mid-element: the first record stands and
	// the sequence ends without error.
	doc := `<rss>
  <item><guid>A1</guid><title>Chauffeur SPL</title></item>
  <item><guid>A2</guid><title>Cari`

	records := collect(t, doc)
	require.Len(t, records, 1)
	assert.Equal(t, "A1", records[0].GUID)
}

func TestParserPropagatesCallbackError(t *testing.T) {
	doc := `<rss><item><guid>A1</guid></item><item><guid>A2</guid></item></rss>`
	parser := NewParser(strings.NewReader(doc), nil)

	calls := 0
	err := parser.Each(func(core.RawRecord) error {
		calls++
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 1, calls)
}

func TestParserStreamsLargeFeeds(t *testing.T) {
	var doc strings.Builder
	doc.WriteString("<rss>")
	for i := 0; i < 5000; i++ {
		doc.WriteString("<item><guid>G")
		doc.WriteString(strings.Repeat("x", i%7))
		doc.WriteString("</guid><title>Role</title></item>")
	}
	doc.WriteString("</rss>")

	count := 0
	parser := NewParser(strings.NewReader(doc.String()), nil)
	err := parser.Each(func(core.RawRecord) error {
		count++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 5000, count)
}
