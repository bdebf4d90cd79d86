package search

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/jobwire/core"
	"github.com/poiesic/jobwire/extract"
	"github.com/poiesic/jobwire/storage"
	"github.com/poiesic/jobwire/storage/badger"
)

func newTestSearcher(t *testing.T) (*Searcher, storage.PostingRepository) {
	t.Helper()
	postingRepo, tagRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { tagRepo.Close(); postingRepo.Close(); backend.Close() })

	searcher, err := NewSearcher(postingRepo, tagRepo, extract.New("https://www.exemple.fr"))
	require.NoError(t, err)
	return searcher, postingRepo
}

func seedPostings(t *testing.T, repo storage.PostingRepository, n int) {
	t.Helper()
	var batch []storage.PostingInsert
	for i := 0; i < n; i++ {
		guid := fmt.Sprintf("S%d", i)
		title := fmt.Sprintf("Chauffeur SPL %d", i)
		batch = append(batch, storage.PostingInsert{
			Posting: &core.Posting{
				Id:          core.IDFromContent(guid),
				GUID:        guid,
				Source:      "test-feed",
				Title:       title,
				Company:     "Transports Nord",
				Summary:     "Poste basé à Lyon, CDI à temps plein.",
				BodyHTML:    "<p>Salaire de 2200 à 2500 € par mois.</p>",
				URL:         "https://example.test/" + guid,
				PublishedAt: 1700000000 + int64(i*60),
				Slug:        core.PostingSlug(title, "Transports Nord"),
			},
			Tags: []string{"spl", "cdi"},
		})
	}
	inserted, err := repo.InsertBatch(context.Background(), batch)
	require.NoError(t, err)
	require.Equal(t, n, inserted)
}

func TestPageComputesFacts(t *testing.T) {
	searcher, repo := newTestSearcher(t)
	seedPostings(t, repo, 1)

	page, err := searcher.Page(context.Background(), nil, 10)
	require.NoError(t, err)
	require.Len(t, page, 1)

	view := page[0]
	assert.Equal(t, "FR", view.Facts.Location.Country)
	assert.Equal(t, "Lyon", view.Facts.Location.City)
	require.NotNil(t, view.Facts.Salary)
	assert.Equal(t, int64(2200), view.Facts.Salary.Min)
	assert.Equal(t, core.SalaryPerMonth, view.Facts.Salary.Unit)
}

func TestPageKeysetWalk(t *testing.T) {
	searcher, repo := newTestSearcher(t)
	seedPostings(t, repo, 7)

	var seen []core.ID
	var cursor *storage.Cursor
	for {
		page, err := searcher.Page(context.Background(), cursor, 3)
		require.NoError(t, err)
		if len(page) == 0 {
			break
		}
		for _, view := range page {
			seen = append(seen, view.Posting.Id)
		}
		pubAt, id := page[len(page)-1].Posting.Cursor()
		cursor = &storage.Cursor{PublishedAt: pubAt, Id: id}
	}

	require.Len(t, seen, 7)
	unique := map[core.ID]bool{}
	for _, id := range seen {
		unique[id] = true
	}
	assert.Len(t, unique, 7, "every row exactly once")
}

func TestByTagAndLookups(t *testing.T) {
	searcher, repo := newTestSearcher(t)
	seedPostings(t, repo, 3)

	page, err := searcher.ByTag(context.Background(), "spl", nil, 10)
	require.NoError(t, err)
	assert.Len(t, page, 3)

	_, err = searcher.ByTag(context.Background(), "absente", nil, 10)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	bySlug, err := searcher.BySlug(context.Background(), page[0].Posting.Slug)
	require.NoError(t, err)
	assert.Equal(t, page[0].Posting.Id, bySlug.Posting.Id)

	byGUID, err := searcher.ByGUID(context.Background(), "S1")
	require.NoError(t, err)
	assert.Equal(t, "S1", byGUID.Posting.GUID)
}

func TestFindAndPopularAndTotal(t *testing.T) {
	searcher, repo := newTestSearcher(t)
	seedPostings(t, repo, 3)

	found, err := searcher.Find(context.Background(), "chauffeur", 10)
	require.NoError(t, err)
	assert.Len(t, found, 3)

	popular, err := searcher.PopularTags(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, popular, 2)
	assert.Equal(t, 3, popular[0].Count)

	total, err := searcher.Total(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}
