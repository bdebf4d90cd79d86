package ingestion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/jobwire/enhance"
	"github.com/poiesic/jobwire/enhance/mock"
	"github.com/poiesic/jobwire/feed"
	"github.com/poiesic/jobwire/storage"
	"github.com/poiesic/jobwire/storage/badger"
)

const splFeed = `<rss><channel>
<item>
  <guid>A1</guid>
  <title>Chauffeur SPL</title>
  <company>Transports Nord</company>
  <link>https://example.test/a1</link>
  <description><![CDATA[<p>Conduite SPL en régional, permis CE exigé.</p>]]></description>
  <pubDate>Mon, 02 Jan 2006 15:04:05 +0000</pubDate>
</item>
<item>
  <guid>B2</guid>
  <title>Comptable</title>
  <company>Cabinet Durand</company>
  <description>Tenue de comptabilité générale.</description>
</item>
</channel></rss>`

func feedFetch(doc string) FetchFunc {
	return func(ctx context.Context) (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(doc)), nil
	}
}

func newTestRepos(t *testing.T) storage.PostingRepository {
	t.Helper()
	postingRepo, tagRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { tagRepo.Close(); postingRepo.Close(); backend.Close() })
	return postingRepo
}

func TestRunMatchesAndPersists(t *testing.T) {
	postings := newTestRepos(t)
	fallback := enhance.NewFallback("chauffeur")

	pipeline, err := NewPipeline(feedFetch(splFeed), feed.NewFilter("spl"), fallback, fallback, postings)
	require.NoError(t, err)

	stats, err := pipeline.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Seen)
	assert.Equal(t, 1, stats.Matched, "only the SPL posting is relevant")
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 1, stats.Inserted)
	assert.Equal(t, 0, stats.Enhanced)
	assert.Equal(t, 1, stats.Fallback)

	posting, err := postings.GetByGUID(context.Background(), "A1")
	require.NoError(t, err)
	assert.Equal(t, "Chauffeur SPL", posting.Title)
	assert.Contains(t, posting.BodyHTML, "<h3>How to apply</h3>")
	assert.Contains(t, posting.TagLine, "chauffeur")
	assert.NotEmpty(t, posting.Slug)

	total, err := postings.Count(context.Background(), time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total, "run refreshes the count cache")
}

func TestSecondRunSkipsStoredIdentity(t *testing.T) {
	postings := newTestRepos(t)
	fallback := enhance.NewFallback("chauffeur")
	enhancer := mock.NewMockEnhancer()

	pipeline, err := NewPipeline(feedFetch(splFeed), feed.NewFilter("spl"), enhancer, fallback, postings)
	require.NoError(t, err)

	first, err := pipeline.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, first.Inserted)
	require.Equal(t, 1, enhancer.CallCount())

	second, err := pipeline.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, second.Matched)
	assert.Equal(t, 2, second.Skipped, "stored identity joins the irrelevant record")
	assert.Equal(t, 0, second.Inserted)
	assert.Equal(t, 1, enhancer.CallCount(), "no enrichment is re-spent on a stored record")

	total, err := postings.Count(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestConcurrentRunIsNoOp(t *testing.T) {
	postings := newTestRepos(t)
	fallback := enhance.NewFallback("chauffeur")

	release := make(chan struct{})
	blockingFetch := func(ctx context.Context) (io.ReadCloser, error) {
		<-release
		return io.NopCloser(strings.NewReader(splFeed)), nil
	}

	pipeline, err := NewPipeline(blockingFetch, feed.NewFilter("spl"), fallback, fallback, postings)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := pipeline.Run(context.Background())
		assert.NoError(t, err)
	}()

	require.Eventually(t, pipeline.Running, time.Second, time.Millisecond)

	stats, err := pipeline.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Stats{}, stats, "a concurrent trigger is an empty no-op")

	close(release)
	<-done
	assert.False(t, pipeline.Running(), "flag is cleared once the run exits")
}

func TestAIBudgetCap(t *testing.T) {
	var docs strings.Builder
	docs.WriteString("<rss>")
	for i := 0; i < 5; i++ {
		fmt.Fprintf(&docs, "<item><guid>G%d</guid><title>Chauffeur SPL %d</title><pubDate>2024-01-0%d</pubDate></item>", i, i, i+1)
	}
	docs.WriteString("</rss>")

	postings := newTestRepos(t)
	enhancer := mock.NewMockEnhancer()
	fallback := enhance.NewFallback("chauffeur")

	pipeline, err := NewPipeline(feedFetch(docs.String()), feed.NewFilter("spl"), enhancer, fallback, postings,
		WithAILimit(2))
	require.NoError(t, err)

	stats, err := pipeline.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, stats.Matched)
	assert.Equal(t, 2, stats.Enhanced, "AI path stops at the cap")
	assert.Equal(t, 3, stats.Fallback)
	assert.Equal(t, 2, enhancer.CallCount())
	assert.Equal(t, 5, stats.Inserted)
}

func TestRunPrunesBeyondMax(t *testing.T) {
	var docs strings.Builder
	docs.WriteString("<rss>")
	for i := 1; i <= 3; i++ {
		fmt.Fprintf(&docs, "<item><guid>G%d</guid><title>Chauffeur SPL %d</title><pubDate>2024-01-0%d</pubDate></item>", i, i, i)
	}
	docs.WriteString("</rss>")

	postings := newTestRepos(t)
	fallback := enhance.NewFallback("chauffeur")

	pipeline, err := NewPipeline(feedFetch(docs.String()), feed.NewFilter("spl"), fallback, fallback, postings,
		WithMaxPostings(2))
	require.NoError(t, err)

	stats, err := pipeline.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Inserted)

	remaining, err := postings.List(context.Background(), nil, 10)
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	assert.Equal(t, "G3", remaining[0].GUID, "newest rows survive pruning")
	assert.Equal(t, "G2", remaining[1].GUID)
}

func TestRunPropagatesFetchError(t *testing.T) {
	postings := newTestRepos(t)
	fallback := enhance.NewFallback("chauffeur")

	failing := func(ctx context.Context) (io.ReadCloser, error) {
		return nil, errors.New("connection refused")
	}

	pipeline, err := NewPipeline(failing, feed.NewFilter("spl"), fallback, fallback, postings)
	require.NoError(t, err)

	_, err = pipeline.Run(context.Background())
	assert.Error(t, err)
	assert.False(t, pipeline.Running(), "flag is cleared on failure")
}

func TestBatchedFlush(t *testing.T) {
	var docs strings.Builder
	docs.WriteString("<rss>")
	for i := 0; i < 5; i++ {
		fmt.Fprintf(&docs, "<item><guid>H%d</guid><title>Chauffeur SPL %d</title></item>", i, i)
	}
	docs.WriteString("</rss>")

	postings := newTestRepos(t)
	fallback := enhance.NewFallback("chauffeur")

	// Batch size 2: two full batches plus a final partial flush.
	pipeline, err := NewPipeline(feedFetch(docs.String()), feed.NewFilter("spl"), fallback, fallback, postings,
		WithBatchSize(2))
	require.NoError(t, err)

	stats, err := pipeline.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Inserted)
}
