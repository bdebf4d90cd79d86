package jobwire

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/jobwire/retag"
)

func TestNewDatabase(t *testing.T) {
	t.Run("create new database", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		db, err := NewDatabase(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, db)
		defer db.Close()

		// Verify components are initialized
		assert.NotNil(t, db.PostingRepository())
		assert.NotNil(t, db.TagRepository())
		assert.NotNil(t, db.backend)
		assert.NotNil(t, db.enhancer)
		assert.NotNil(t, db.extractor)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// Try to create a database at a file path instead of directory
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		db, err := NewDatabase(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("in-memory store needs no path", func(t *testing.T) {
		db, err := NewDatabase("", WithInMemoryStore())
		require.NoError(t, err)
		require.NotNil(t, db)
		assert.NoError(t, db.Close())
	})
}

func TestDatabase_Close(t *testing.T) {
	db, err := NewDatabase("", WithInMemoryStore())
	require.NoError(t, err)
	require.NotNil(t, db)

	err = db.Close()
	assert.NoError(t, err)
}

func TestDatabase_FactoryMethods(t *testing.T) {
	db, err := NewDatabase("", WithInMemoryStore(), WithProfession("chauffeur"))
	require.NoError(t, err)
	require.NotNil(t, db)
	defer db.Close()

	t.Run("can create pipeline", func(t *testing.T) {
		pipeline, err := db.NewPipeline("http://example.com/feed.xml", "chauffeur, spl")
		require.NoError(t, err)
		require.NotNil(t, pipeline)
	})

	t.Run("can create searcher", func(t *testing.T) {
		searcher, err := db.NewSearcher()
		require.NoError(t, err)
		require.NotNil(t, searcher)
	})

	t.Run("can create retagger", func(t *testing.T) {
		retagger, err := db.NewRetagger(retag.DefaultConfig())
		require.NoError(t, err)
		require.NotNil(t, retagger)
		retagger.Close()
	})
}

func TestDatabase_PipelineEndToEnd(t *testing.T) {
	const sample = `<?xml version="1.0" encoding="UTF-8"?>
<source>
  <job>
    <title><![CDATA[Chauffeur SPL H/F]]></title>
    <company><![CDATA[Transports Durand]]></company>
    <guid>guid-e2e-1</guid>
    <url>http://example.com/jobs/1</url>
    <pubdate>Mon, 02 Jan 2023 15:04:05 +0100</pubdate>
    <description><![CDATA[Permis CE exigé. CDI temps plein, 2200 € par mois. Poste basé à Lyon.]]></description>
  </job>
  <job>
    <title><![CDATA[Comptable]]></title>
    <company><![CDATA[Cabinet Martin]]></company>
    <guid>guid-e2e-2</guid>
    <url>http://example.com/jobs/2</url>
    <pubdate>Tue, 03 Jan 2023 09:00:00 +0100</pubdate>
    <description><![CDATA[Tenue de la comptabilité générale.]]></description>
  </job>
</source>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.Write([]byte(sample))
	}))
	defer server.Close()

	db, err := NewDatabase("", WithInMemoryStore(), WithProfession("chauffeur"))
	require.NoError(t, err)
	defer db.Close()

	pipeline, err := db.NewPipeline(server.URL, "chauffeur, spl")
	require.NoError(t, err)

	stats, err := pipeline.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Seen)
	assert.Equal(t, 1, stats.Matched)
	assert.Equal(t, 1, stats.Inserted)

	searcher, err := db.NewSearcher()
	require.NoError(t, err)

	views, err := searcher.Page(context.Background(), nil, 10)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Chauffeur SPL H/F", views[0].Posting.Title)
	assert.Equal(t, "Lyon", views[0].Facts.Location.City)
}
