package links

import (
	"net/url"
	"time"

	"github.com/reinieltalplacido/speedial/pkg/speedial/models"
	"github.com/reinieltalplacido/speedial/pkg/speedial/store"
)

// ValidationError represents a missing or malformed required input
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError represents a lookup that matched no record
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// Service implements owner-scoped CRUD over the record store. It is the
// only place where validation and ownership are enforced; every operation
// is a full load/mutate/save cycle over the collection.
type Service struct {
	store *store.Store
}

// NewService creates a link service on top of the given store
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// validateURL checks that a URL is absolute (scheme and host present)
func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &ValidationError{"URL must be absolute (scheme and host)"}
	}
	return nil
}

func categoryOrDefault(category string) string {
	if category == "" {
		return models.DefaultCategory
	}
	return category
}

// List returns the links owned by owner, in insertion order. An empty owner
// returns the entire store (administrative listing mode).
func (s *Service) List(owner string) []models.Link {
	links := s.store.Load()
	if owner == "" {
		if links == nil {
			return []models.Link{}
		}
		return links
	}

	matched := make([]models.Link, 0)
	for _, link := range links {
		if link.Username == owner {
			matched = append(matched, link)
		}
	}
	return matched
}

// Create validates, assigns id and creation time, and appends a new link
func (s *Service) Create(title, rawURL, category, owner string) (models.Link, error) {
	if title == "" || rawURL == "" || owner == "" {
		return models.Link{}, &ValidationError{"Title, URL, and owner are required"}
	}
	if err := validateURL(rawURL); err != nil {
		return models.Link{}, err
	}

	now := time.Now()
	link := models.Link{
		ID:        models.NewID(now),
		Title:     title,
		URL:       rawURL,
		Category:  categoryOrDefault(category),
		Username:  owner,
		CreatedAt: models.Timestamp(now),
	}

	all := s.store.Load()
	all = append(all, link)
	if err := s.store.Save(all); err != nil {
		return models.Link{}, err
	}
	return link, nil
}

// Update replaces title, URL, and category of the link matching both id and
// owner. A mismatched owner is reported as not found, indistinguishable from
// true absence, so existence never leaks across owners.
func (s *Service) Update(id, title, rawURL, category, owner string) (models.Link, error) {
	if id == "" || title == "" || rawURL == "" || owner == "" {
		return models.Link{}, &ValidationError{"ID, title, URL, and owner are required"}
	}
	if err := validateURL(rawURL); err != nil {
		return models.Link{}, err
	}

	all := s.store.Load()
	for i := range all {
		if all[i].ID != id || all[i].Username != owner {
			continue
		}
		all[i].Title = title
		all[i].URL = rawURL
		all[i].Category = categoryOrDefault(category)
		all[i].UpdatedAt = models.Timestamp(time.Now())
		if err := s.store.Save(all); err != nil {
			return models.Link{}, err
		}
		return all[i], nil
	}
	return models.Link{}, &NotFoundError{"Link not found"}
}

// Delete removes the link matching both id and owner, preserving the
// relative order of the remaining links
func (s *Service) Delete(id, owner string) error {
	if id == "" || owner == "" {
		return &ValidationError{"Link ID and owner are required"}
	}

	all := s.store.Load()
	kept := make([]models.Link, 0, len(all))
	for _, link := range all {
		if link.ID == id && link.Username == owner {
			continue
		}
		kept = append(kept, link)
	}
	if len(kept) == len(all) {
		return &NotFoundError{"Link not found"}
	}
	return s.store.Save(kept)
}
