package retag

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/poiesic/jobwire/core"
	"github.com/poiesic/jobwire/storage"
	"github.com/poiesic/jobwire/storage/badger"
)

func seedStore(t *testing.T, n int, tags []string) (storage.PostingRepository, storage.TagRepository, func()) {
	t.Helper()
	postingRepo, tagRepo, backend, err := badger.NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}

	var batch []storage.PostingInsert
	for i := 0; i < n; i++ {
		guid := fmt.Sprintf("R%d", i)
		title := fmt.Sprintf("Chauffeur SPL %d", i)
		batch = append(batch, storage.PostingInsert{
			Posting: &core.Posting{
				Id:          core.IDFromContent(guid),
				GUID:        guid,
				Source:      "test-feed",
				Title:       title,
				Company:     "Transports Nord",
				Summary:     "Permis CE et FIMO exigés.",
				BodyHTML:    "<p>Permis CE et FIMO exigés, tournée frigorifique.</p>",
				PublishedAt: 1700000000 + int64(i*60),
				Slug:        core.PostingSlug(title, "Transports Nord"),
				TagLine:     core.TagLine(tags),
			},
			Tags: tags,
		})
	}
	if _, err := postingRepo.InsertBatch(context.Background(), batch); err != nil {
		t.Fatalf("Failed to seed store: %v", err)
	}
	return postingRepo, tagRepo, func() { tagRepo.Close(); postingRepo.Close(); backend.Close() }
}

func TestRetaggerAppendsNewTags(t *testing.T) {
	// Seeded with a single stale tag; the vocabulary pass should add the
	// keywords the body actually carries.
	postingRepo, tagRepo, cleanup := seedStore(t, 5, []string{"ancien"})
	defer cleanup()

	retagger, err := NewRetagger(postingRepo, "chauffeur", &Config{
		PageSize:   2,
		Workers:    2,
		MaxRetries: 3,
		RetryDelay: time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Failed to create retagger: %v", err)
	}
	defer retagger.Close()

	added, err := retagger.Run(context.Background())
	if err != nil {
		t.Fatalf("Retagging failed: %v", err)
	}
	if added == 0 {
		t.Fatal("Expected new associations")
	}

	tag, err := tagRepo.GetTagByName(context.Background(), "permis ce")
	if err != nil {
		t.Fatalf("Expected tag to exist: %v", err)
	}
	postings, err := postingRepo.ListByTag(context.Background(), tag.Id, nil, 10)
	if err != nil {
		t.Fatalf("Failed to list by tag: %v", err)
	}
	if len(postings) != 5 {
		t.Fatalf("Expected all 5 postings tagged, got %d", len(postings))
	}

	// The old association survives: retagging is append-only.
	old, err := tagRepo.GetTagByName(context.Background(), "ancien")
	if err != nil {
		t.Fatalf("Expected stale tag to survive: %v", err)
	}
	oldPostings, err := postingRepo.ListByTag(context.Background(), old.Id, nil, 10)
	if err != nil {
		t.Fatalf("Failed to list by stale tag: %v", err)
	}
	if len(oldPostings) != 5 {
		t.Fatalf("Expected stale associations intact, got %d", len(oldPostings))
	}

	// Tag lines were refreshed on the stored rows.
	posting, err := postingRepo.GetByGUID(context.Background(), "R0")
	if err != nil {
		t.Fatalf("Failed to get posting: %v", err)
	}
	if !strings.Contains(posting.TagLine, "permis ce") {
		t.Fatalf("Expected refreshed tag line, got '%s'", posting.TagLine)
	}
}

func TestRetaggerIdempotent(t *testing.T) {
	postingRepo, _, cleanup := seedStore(t, 3, []string{"spl"})
	defer cleanup()

	retagger, err := NewRetagger(postingRepo, "chauffeur", &Config{
		PageSize:   10,
		Workers:    1,
		MaxRetries: 3,
		RetryDelay: time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Failed to create retagger: %v", err)
	}
	defer retagger.Close()

	if _, err := retagger.Run(context.Background()); err != nil {
		t.Fatalf("First pass failed: %v", err)
	}
	added, err := retagger.Run(context.Background())
	if err != nil {
		t.Fatalf("Second pass failed: %v", err)
	}
	if added != 0 {
		t.Fatalf("Expected second pass to add nothing, got %d", added)
	}
}

func TestRetaggerEmptyStore(t *testing.T) {
	postingRepo, _, cleanup := seedStore(t, 0, nil)
	defer cleanup()

	retagger, err := NewRetagger(postingRepo, "chauffeur", nil)
	if err != nil {
		t.Fatalf("Failed to create retagger: %v", err)
	}
	defer retagger.Close()

	added, err := retagger.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected clean run on empty store, got %v", err)
	}
	if added != 0 {
		t.Fatalf("Expected 0 added, got %d", added)
	}
}

func TestRetaggerValidation(t *testing.T) {
	if _, err := NewRetagger(nil, "chauffeur", nil); err != ErrRepositoryRequired {
		t.Fatalf("Expected ErrRepositoryRequired, got %v", err)
	}
	postingRepo, _, cleanup := seedStore(t, 0, nil)
	defer cleanup()
	if _, err := NewRetagger(postingRepo, "", nil); err != ErrProfessionRequired {
		t.Fatalf("Expected ErrProfessionRequired, got %v", err)
	}
}
