package store

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"gramsetu/internal/content"
	"gramsetu/internal/models"
)

// seedContent inserts one content row for tests and registers cleanup.
func seedContent(t *testing.T, db *sql.DB, s *ContentStore, c *models.Content) *models.Content {
	t.Helper()
	created, err := s.Create(c)
	if err != nil {
		t.Fatalf("seed Create: %v", err)
	}
	t.Cleanup(func() { cleanContent(t, db, created.Slug) })
	return created
}

func TestContentStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db)

	slug := "test-create-" + uuid.NewString()[:8]
	created := seedContent(t, db, s, &models.Content{
		Kind:     models.KindNews,
		Title:    "Gram Sabha Meeting",
		Slug:     slug,
		Body:     "Meeting details",
		Category: "Announcements",
		Status:   models.StatusDraft,
	})

	if created.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}
	if created.PublishedAt != nil {
		t.Error("expected nil published_at for draft")
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil || found.Title != "Gram Sabha Meeting" {
		t.Fatalf("FindByID: got %+v", found)
	}

	found, err = s.FindBySlug(models.KindNews, slug)
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if found == nil || found.ID != created.ID {
		t.Fatalf("FindBySlug: got %+v", found)
	}

	// Same slug under a different kind is a different namespace.
	found, err = s.FindBySlug(models.KindEvent, slug)
	if err != nil {
		t.Fatalf("FindBySlug other kind: %v", err)
	}
	if found != nil {
		t.Error("slug should not resolve under another kind")
	}

	exists, err := s.SlugExists(models.KindNews, slug)
	if err != nil || !exists {
		t.Errorf("SlugExists: got %v, %v", exists, err)
	}
}

func TestContentStoreFindMissingReturnsNil(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db)

	found, err := s.FindByID(uuid.New())
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found != nil {
		t.Errorf("expected nil for missing row, got %+v", found)
	}
}

func TestContentStoreListFilter(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db)

	marker := uuid.NewString()[:8]
	now := time.Now().UTC().Truncate(time.Second)
	hi := "टीकाकरण शिविर"

	published := seedContent(t, db, s, &models.Content{
		Kind: models.KindNews, Title: "Vaccination camp " + marker,
		TitleHi: &hi, Slug: "vaccination-camp-" + marker, Body: "details",
		Category: "Health", Status: models.StatusPublished,
		PublishedAt: &now, FirstPublishedAt: &now,
	})
	seedContent(t, db, s, &models.Content{
		Kind: models.KindNews, Title: "Road work " + marker,
		Slug: "road-work-" + marker, Body: "details",
		Category: "Infrastructure", Status: models.StatusDraft,
	})

	f := content.Filter{
		Kind:             models.KindNews,
		Status:           models.StatusPublished,
		Category:         "Health",
		Search:           marker,
		OrderByPublished: true,
	}
	items, err := s.List(f, 10, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 || items[0].ID != published.ID {
		t.Fatalf("List: got %+v", items)
	}

	n, err := s.Count(f)
	if err != nil || n != 1 {
		t.Errorf("Count: got %d, %v", n, err)
	}

	// Search matches the Hindi title too.
	f.Search = "टीकाकरण"
	f.Category = ""
	n, err = s.Count(f)
	if err != nil || n != 1 {
		t.Errorf("Count by Hindi title: got %d, %v", n, err)
	}

	// Month window around the publish date.
	f.Search = marker
	f.From = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	f.Until = f.From.AddDate(0, 1, 0)
	n, err = s.Count(f)
	if err != nil || n != 1 {
		t.Errorf("Count in month window: got %d, %v", n, err)
	}
}

func TestContentStoreSetPublishedKeepsFirstTimestamp(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db)

	marker := uuid.NewString()[:8]
	created := seedContent(t, db, s, &models.Content{
		Kind: models.KindJob, Title: "Clerk opening " + marker,
		Slug: "clerk-opening-" + marker, Body: "details",
		Category: "Government", Status: models.StatusDraft,
	})

	first := time.Now().UTC().Truncate(time.Second)
	affected, err := s.SetPublished(models.KindJob, []uuid.UUID{created.ID}, true, first)
	if err != nil || affected != 1 {
		t.Fatalf("publish: affected %d, err %v", affected, err)
	}

	affected, err = s.SetPublished(models.KindJob, []uuid.UUID{created.ID}, false, time.Now())
	if err != nil || affected != 1 {
		t.Fatalf("unpublish: affected %d, err %v", affected, err)
	}

	again, err := s.SetPublished(models.KindJob, []uuid.UUID{created.ID}, true, first.Add(48*time.Hour))
	if err != nil || again != 1 {
		t.Fatalf("republish: affected %d, err %v", again, err)
	}

	found, err := s.FindByID(created.ID)
	if err != nil || found == nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.PublishedAt == nil || !found.PublishedAt.Equal(first) {
		t.Errorf("published_at: got %v, want original %v", found.PublishedAt, first)
	}
	if found.FirstPublishedAt == nil || !found.FirstPublishedAt.Equal(first) {
		t.Errorf("first_published_at: got %v, want %v", found.FirstPublishedAt, first)
	}

	// IDs of another kind are untouched.
	affected, err = s.SetPublished(models.KindNews, []uuid.UUID{created.ID}, false, time.Now())
	if err != nil || affected != 0 {
		t.Errorf("cross-kind: affected %d, err %v", affected, err)
	}
}

func TestContentStorePublishedDatesAndCategoryCounts(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db)

	marker := uuid.NewString()[:8]
	march := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	seedContent(t, db, s, &models.Content{
		Kind: models.KindScheme, Title: "Housing scheme " + marker,
		Slug: "housing-scheme-" + marker, Body: "details",
		Category: "Housing", Status: models.StatusPublished,
		PublishedAt: &march, FirstPublishedAt: &march,
	})
	seedContent(t, db, s, &models.Content{
		Kind: models.KindScheme, Title: "Pension scheme " + marker,
		Slug: "pension-scheme-" + marker, Body: "details",
		Category: "Welfare", Status: models.StatusDraft,
	})

	dates, err := s.PublishedDates(models.KindScheme)
	if err != nil {
		t.Fatalf("PublishedDates: %v", err)
	}
	seen := false
	for _, d := range dates {
		if d.Equal(march) {
			seen = true
		}
	}
	if !seen {
		t.Errorf("PublishedDates missing %v in %v", march, dates)
	}

	counts, err := s.CategoryCounts(models.KindScheme)
	if err != nil {
		t.Fatalf("CategoryCounts: %v", err)
	}
	var housing, welfare int
	for _, c := range counts {
		switch c.Name {
		case "Housing":
			housing = c.Count
		case "Welfare":
			welfare = c.Count
		}
	}
	if housing < 1 {
		t.Errorf("Housing count: got %d, want >= 1", housing)
	}
	if welfare != 0 {
		t.Errorf("Welfare draft counted: got %d", welfare)
	}
}

func TestContentStoreUpdateAndDelete(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db)

	marker := uuid.NewString()[:8]
	created := seedContent(t, db, s, &models.Content{
		Kind: models.KindBusiness, Title: "Sharma Kirana " + marker,
		Slug: "sharma-kirana-" + marker, Body: "details",
		Category: "Shops", Status: models.StatusDraft,
	})

	created.Title = "Sharma General Store " + marker
	created.Status = models.StatusPublished
	now := time.Now().UTC().Truncate(time.Second)
	created.PublishedAt = &now
	created.FirstPublishedAt = &now
	if err := s.Update(created); err != nil {
		t.Fatalf("Update: %v", err)
	}

	found, err := s.FindByID(created.ID)
	if err != nil || found == nil {
		t.Fatalf("FindByID after update: %v", err)
	}
	if found.Title != created.Title || found.Status != models.StatusPublished {
		t.Errorf("update not applied: %+v", found)
	}

	if err := s.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	found, err = s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID after delete: %v", err)
	}
	if found != nil {
		t.Error("row still present after delete")
	}
}
