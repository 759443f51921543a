package content

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"gramsetu/internal/models"
)

// fakeRepo is an in-memory Repository for service tests.
type fakeRepo struct {
	records    map[uuid.UUID]*models.Content
	lastFilter Filter
	lastLimit  int
	lastOffset int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: map[uuid.UUID]*models.Content{}}
}

func (r *fakeRepo) FindByID(id uuid.UUID) (*models.Content, error) {
	c, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	clone := *c
	return &clone, nil
}

func (r *fakeRepo) FindBySlug(kind models.Kind, slug string) (*models.Content, error) {
	for _, c := range r.records {
		if c.Kind == kind && c.Slug == slug {
			clone := *c
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) SlugExists(kind models.Kind, slug string) (bool, error) {
	c, err := r.FindBySlug(kind, slug)
	return c != nil, err
}

func (r *fakeRepo) Create(c *models.Content) (*models.Content, error) {
	clone := *c
	clone.ID = uuid.New()
	clone.CreatedAt = time.Now()
	clone.UpdatedAt = clone.CreatedAt
	r.records[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *fakeRepo) Update(c *models.Content) error {
	clone := *c
	r.records[c.ID] = &clone
	return nil
}

func (r *fakeRepo) Delete(id uuid.UUID) error {
	delete(r.records, id)
	return nil
}

func (r *fakeRepo) matches(c *models.Content, f Filter) bool {
	if c.Kind != f.Kind {
		return false
	}
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.Category != "" && c.Category != f.Category {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		hit := strings.Contains(strings.ToLower(c.Title), needle)
		if !hit && c.TitleHi != nil {
			hit = strings.Contains(strings.ToLower(*c.TitleHi), needle)
		}
		if !hit && f.SearchBody {
			hit = strings.Contains(strings.ToLower(c.Body), needle)
		}
		if !hit {
			return false
		}
	}
	if !f.From.IsZero() {
		if c.PublishedAt == nil || c.PublishedAt.Before(f.From) || !c.PublishedAt.Before(f.Until) {
			return false
		}
	}
	return true
}

func (r *fakeRepo) List(f Filter, limit, offset int) ([]models.Content, error) {
	r.lastFilter = f
	r.lastLimit = limit
	r.lastOffset = offset
	var out []models.Content
	for _, c := range r.records {
		if r.matches(c, f) {
			out = append(out, *c)
		}
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeRepo) Count(f Filter) (int, error) {
	n := 0
	for _, c := range r.records {
		if r.matches(c, f) {
			n++
		}
	}
	return n, nil
}

func (r *fakeRepo) SetPublished(kind models.Kind, ids []uuid.UUID, publish bool, now time.Time) (int64, error) {
	var affected int64
	for _, id := range ids {
		c, ok := r.records[id]
		if !ok || c.Kind != kind {
			continue
		}
		if publish {
			c.Status = models.StatusPublished
			if c.FirstPublishedAt == nil {
				c.FirstPublishedAt = &now
			}
			c.PublishedAt = c.FirstPublishedAt
		} else {
			c.Status = models.StatusDraft
			c.PublishedAt = nil
		}
		affected++
	}
	return affected, nil
}

func (r *fakeRepo) PublishedDates(kind models.Kind) ([]time.Time, error) {
	var out []time.Time
	for _, c := range r.records {
		if c.Kind == kind && c.Status == models.StatusPublished && c.PublishedAt != nil {
			out = append(out, *c.PublishedAt)
		}
	}
	return out, nil
}

func (r *fakeRepo) CategoryCounts(kind models.Kind) ([]CategoryCount, error) {
	counts := map[string]int{}
	for _, c := range r.records {
		if c.Kind == kind && c.Status == models.StatusPublished {
			counts[c.Category]++
		}
	}
	var out []CategoryCount
	for name, n := range counts {
		out = append(out, CategoryCount{Name: name, Count: n})
	}
	return out, nil
}

// fakeCategories resolves from a fixed set.
type fakeCategories struct {
	categories []models.Category
}

func (f *fakeCategories) FindByID(kind models.Kind, id uuid.UUID) (*models.Category, error) {
	for _, c := range f.categories {
		if c.Kind == kind && c.ID == id {
			clone := c
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeCategories) FindBySlug(kind models.Kind, slug string) (*models.Category, error) {
	for _, c := range f.categories {
		if c.Kind == kind && c.Slug == slug {
			clone := c
			return &clone, nil
		}
	}
	return nil, nil
}

// fakeSettings is an in-memory SettingReader.
type fakeSettings map[string]string

func (f fakeSettings) Get(key, fallback string) (string, error) {
	if v, ok := f[key]; ok && v != "" {
		return v, nil
	}
	return fallback, nil
}

// fakeLinker records attach/detach calls synchronously.
type fakeLinker struct {
	attached [][2]string // [new, previous]
	detached []string
}

func (f *fakeLinker) Attach(newURL, previousURL string) {
	if previousURL == "" || newURL == previousURL {
		return
	}
	f.attached = append(f.attached, [2]string{newURL, previousURL})
}

func (f *fakeLinker) Detach(url string) {
	if url == "" {
		return
	}
	f.detached = append(f.detached, url)
}

func (f *fakeLinker) deleteCount(url string) int {
	n := 0
	for _, pair := range f.attached {
		if pair[1] == url {
			n++
		}
	}
	for _, d := range f.detached {
		if d == url {
			n++
		}
	}
	return n
}

// fakeInvalidator records invalidated routes.
type fakeInvalidator struct {
	routes []string
}

func (f *fakeInvalidator) Invalidate(_ context.Context, routes ...string) {
	f.routes = append(f.routes, routes...)
}

// fakeAuth authorizes or denies everything.
type fakeAuth bool

func (f fakeAuth) Authenticated(context.Context) bool { return bool(f) }

// testEnv bundles a service with its fakes.
type testEnv struct {
	svc        *Service
	repo       *fakeRepo
	categories *fakeCategories
	settings   fakeSettings
	linker     *fakeLinker
	cache      *fakeInvalidator
}

func newTestEnv(authorized bool) *testEnv {
	repo := newFakeRepo()
	categories := &fakeCategories{categories: []models.Category{
		{ID: uuid.New(), Kind: models.KindNews, Name: "Health", Slug: "health"},
		{ID: uuid.New(), Kind: models.KindNews, Name: "Agriculture", Slug: "agriculture"},
		{ID: uuid.New(), Kind: models.KindJob, Name: "Government", Slug: "government"},
	}}
	settings := fakeSettings{}
	linker := &fakeLinker{}
	cache := &fakeInvalidator{}
	svc := NewService(repo, categories, settings, linker, cache, fakeAuth(authorized))
	return &testEnv{svc: svc, repo: repo, categories: categories, settings: settings, linker: linker, cache: cache}
}

func (e *testEnv) category(kind models.Kind, slug string) models.Category {
	for _, c := range e.categories.categories {
		if c.Kind == kind && c.Slug == slug {
			return c
		}
	}
	panic("unknown test category " + slug)
}
