package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/reinieltalplacido/speedial/pkg/speedial/models"
)

// State describes where a session is in its load cycle
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
	StateErrored
)

// Notification is an ephemeral success or error message. Notifications are
// queued rather than coalesced and each is independently dismissible.
type Notification struct {
	ID      int
	Message string
	IsError bool
}

const (
	successDismissDelay = 3 * time.Second
	errorDismissDelay   = 5 * time.Second
)

// Session keeps a cached list of one owner's links in sync with the link
// service. The cache is never speculative: it only ever holds records the
// server confirmed. A saving flag guards against concurrent submissions;
// failed operations leave the cache untouched and queue an error
// notification instead of propagating.
type Session struct {
	api *Client

	mu            sync.Mutex
	owner         string
	state         State
	links         []models.Link
	saving        bool
	notifications []Notification
	nextNoteID    int

	successDelay time.Duration
	errorDelay   time.Duration
}

// NewSession creates an uninitialized session speaking to api
func NewSession(api *Client) *Session {
	return &Session{
		api:          api,
		state:        StateUninitialized,
		links:        []models.Link{},
		successDelay: successDismissDelay,
		errorDelay:   errorDismissDelay,
	}
}

// SetOwner switches the session to a new owner and loads that owner's
// links. On failure the cache is left empty and an error is surfaced as a
// notification.
func (s *Session) SetOwner(ctx context.Context, owner string) {
	s.mu.Lock()
	s.owner = owner
	s.state = StateLoading
	s.links = []models.Link{}
	s.mu.Unlock()

	fetched, err := s.api.GetLinks(ctx, owner)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateErrored
		s.notifyLocked(messageFor(err, "Failed to load links. Please try again."), true)
		return
	}
	s.state = StateReady
	s.links = fetched
	if s.links == nil {
		s.links = []models.Link{}
	}
}

// Reload refreshes the cache for the current owner
func (s *Session) Reload(ctx context.Context) {
	s.mu.Lock()
	owner := s.owner
	s.mu.Unlock()
	s.SetOwner(ctx, owner)
}

// Add creates a link for the current owner and appends the server-returned
// record to the cache. Returns false when rejected (already saving) or when
// the request failed.
func (s *Session) Add(ctx context.Context, title, url, category string) bool {
	owner, ok := s.beginSave()
	if !ok {
		return false
	}

	link, err := s.api.CreateLink(ctx, title, url, category, owner)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.saving = false
	if err != nil {
		s.notifyLocked(messageFor(err, "Failed to add link. Please try again."), true)
		return false
	}
	s.links = append(s.links, link)
	s.notifyLocked("Link added successfully!", false)
	return true
}

// Edit updates a link and replaces the cached record with the
// server-returned one
func (s *Session) Edit(ctx context.Context, id, title, url, category string) bool {
	owner, ok := s.beginSave()
	if !ok {
		return false
	}

	link, err := s.api.UpdateLink(ctx, id, title, url, category, owner)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.saving = false
	if err != nil {
		s.notifyLocked(messageFor(err, "Failed to update link. Please try again."), true)
		return false
	}
	for i := range s.links {
		if s.links[i].ID == link.ID {
			s.links[i] = link
		}
	}
	s.notifyLocked("Link updated successfully!", false)
	return true
}

// Remove deletes a link and drops it from the cache
func (s *Session) Remove(ctx context.Context, id string) bool {
	owner, ok := s.beginSave()
	if !ok {
		return false
	}

	err := s.api.DeleteLink(ctx, id, owner)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.saving = false
	if err != nil {
		s.notifyLocked(messageFor(err, "Failed to delete link. Please try again."), true)
		return false
	}
	kept := s.links[:0]
	for _, link := range s.links {
		if link.ID != id {
			kept = append(kept, link)
		}
	}
	s.links = kept
	s.notifyLocked("Link deleted successfully!", false)
	return true
}

// Import replaces the owner's collection: every cached record is deleted,
// then every imported record is created, sequentially. The first failure
// aborts the sequence, so the server may be left partially imported; the
// cache then still shows the pre-import records until the next reload.
func (s *Session) Import(ctx context.Context, imported []models.Link) bool {
	owner, ok := s.beginSave()
	if !ok {
		return false
	}

	s.mu.Lock()
	existing := make([]models.Link, len(s.links))
	copy(existing, s.links)
	s.mu.Unlock()

	collected, err := s.runImport(ctx, owner, existing, imported)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.saving = false
	if err != nil {
		s.notifyLocked("Failed to import links. Please try again.", true)
		return false
	}
	s.links = collected
	s.notifyLocked(fmt.Sprintf("Successfully imported %d links!", len(imported)), false)
	return true
}

func (s *Session) runImport(ctx context.Context, owner string, existing, imported []models.Link) ([]models.Link, error) {
	for _, link := range existing {
		if err := s.api.DeleteLink(ctx, link.ID, owner); err != nil {
			return nil, err
		}
	}

	collected := make([]models.Link, 0, len(imported))
	for _, link := range imported {
		created, err := s.api.CreateLink(ctx, link.Title, link.URL, link.Category, owner)
		if err != nil {
			return nil, err
		}
		collected = append(collected, created)
	}
	return collected, nil
}

// beginSave sets the saving flag, rejecting the call when a save is
// already in flight
func (s *Session) beginSave() (owner string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saving {
		return "", false
	}
	s.saving = true
	return s.owner, true
}

// State returns the session's load state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Saving reports whether a create/update/delete is in flight
func (s *Session) Saving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saving
}

// Links returns a copy of the cached collection
func (s *Session) Links() []models.Link {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Link, len(s.links))
	copy(out, s.links)
	return out
}

// Notifications returns the currently visible notifications
func (s *Session) Notifications() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// Dismiss removes a notification before its auto-dismiss fires
func (s *Session) Dismiss(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dismissLocked(id)
}

func (s *Session) dismissLocked(id int) {
	kept := s.notifications[:0]
	for _, n := range s.notifications {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	s.notifications = kept
}

// notifyLocked queues a notification and schedules its auto-dismiss:
// errors linger longer than successes. Must be called with the lock held.
func (s *Session) notifyLocked(message string, isError bool) {
	s.nextNoteID++
	note := Notification{ID: s.nextNoteID, Message: message, IsError: isError}
	s.notifications = append(s.notifications, note)

	delay := s.successDelay
	if isError {
		delay = s.errorDelay
	}
	time.AfterFunc(delay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.dismissLocked(note.ID)
	})
}

// messageFor prefers the server-provided message on API errors and falls
// back to the operation's generic message otherwise
func messageFor(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return fallback
}
