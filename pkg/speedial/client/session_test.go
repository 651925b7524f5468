package client

import (
	"context"
	"testing"
	"time"

	"github.com/reinieltalplacido/speedial/pkg/speedial/models"
)

// newTestSession wires a session to a fresh server, with auto-dismiss
// stretched so notifications stay visible for assertions
func newTestSession(t *testing.T) *Session {
	srv := newTestServer(t)
	s := NewSession(New(srv.URL))
	s.successDelay = time.Minute
	s.errorDelay = time.Minute
	return s
}

func lastNotification(t *testing.T, s *Session) Notification {
	notes := s.Notifications()
	if len(notes) == 0 {
		t.Fatal("Expected a notification")
	}
	return notes[len(notes)-1]
}

func TestSessionLoad(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	if s.State() != StateUninitialized {
		t.Errorf("Expected uninitialized state, got %d", s.State())
	}

	s.SetOwner(ctx, "alice")
	if s.State() != StateReady {
		t.Errorf("Expected ready state, got %d", s.State())
	}
	if len(s.Links()) != 0 {
		t.Errorf("Expected empty cache, got %d links", len(s.Links()))
	}
}

func TestSessionLoadFailure(t *testing.T) {
	srv := newTestServer(t)
	s := NewSession(New(srv.URL))
	s.errorDelay = time.Minute
	srv.Close()

	s.SetOwner(context.Background(), "alice")

	if s.State() != StateErrored {
		t.Errorf("Expected errored state, got %d", s.State())
	}
	if len(s.Links()) != 0 {
		t.Error("Expected cache left empty on load failure")
	}
	note := lastNotification(t, s)
	if !note.IsError {
		t.Error("Expected an error notification")
	}
}

func TestSessionAddEditRemove(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()
	s.SetOwner(ctx, "alice")

	if !s.Add(ctx, "Docs", "https://docs.test", "") {
		t.Fatal("Add failed")
	}
	cached := s.Links()
	if len(cached) != 1 || cached[0].ID == "" {
		t.Fatalf("Expected server-confirmed record in cache, got %+v", cached)
	}
	if s.Saving() {
		t.Error("Expected saving flag cleared after Add")
	}

	id := cached[0].ID
	if !s.Edit(ctx, id, "Docs v2", "https://docs.test", "Work") {
		t.Fatal("Edit failed")
	}
	cached = s.Links()
	if cached[0].Title != "Docs v2" || cached[0].Category != "Work" {
		t.Errorf("Expected cache reconciled with server record, got %+v", cached[0])
	}

	if !s.Remove(ctx, id) {
		t.Fatal("Remove failed")
	}
	if len(s.Links()) != 0 {
		t.Errorf("Expected empty cache after remove, got %+v", s.Links())
	}

	// Server agrees with the cache at every step
	s.Reload(ctx)
	if len(s.Links()) != 0 {
		t.Error("Expected server state to match emptied cache")
	}
}

func TestSessionAddFailureLeavesCache(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()
	s.SetOwner(ctx, "alice")
	s.Add(ctx, "Keep", "https://keep.test", "")

	if s.Add(ctx, "", "https://x.test", "") {
		t.Fatal("Expected Add with empty title to fail")
	}
	if len(s.Links()) != 1 {
		t.Errorf("Expected cache untouched after failure, got %d links", len(s.Links()))
	}
	note := lastNotification(t, s)
	if !note.IsError || note.Message != "Title, URL, and owner are required" {
		t.Errorf("Expected server-provided error message, got %+v", note)
	}
}

func TestSessionRejectsConcurrentSaves(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()
	s.SetOwner(ctx, "alice")

	if _, ok := s.beginSave(); !ok {
		t.Fatal("Expected first save to be accepted")
	}
	if s.Add(ctx, "Blocked", "https://blocked.test", "") {
		t.Error("Expected Add to be rejected while a save is in flight")
	}
}

func TestSessionImport(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()
	s.SetOwner(ctx, "alice")
	s.Add(ctx, "Old", "https://old.test", "")

	imported := []models.Link{
		{Title: "New 1", URL: "https://new1.test", Category: "Work"},
		{Title: "New 2", URL: "https://new2.test"},
	}
	if !s.Import(ctx, imported) {
		t.Fatal("Import failed")
	}

	cached := s.Links()
	if len(cached) != 2 {
		t.Fatalf("Expected 2 links after import, got %d", len(cached))
	}
	if cached[0].Title != "New 1" || cached[0].ID == "" {
		t.Errorf("Expected server-assigned records in cache, got %+v", cached[0])
	}
	if cached[1].Category != "General" {
		t.Errorf("Expected defaulted category on import, got %s", cached[1].Category)
	}

	s.Reload(ctx)
	if len(s.Links()) != 2 {
		t.Error("Expected server collection replaced by import")
	}
}

func TestSessionImportAbortsOnFailure(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()
	s.SetOwner(ctx, "alice")
	s.Add(ctx, "Old", "https://old.test", "")

	imported := []models.Link{
		{Title: "Good", URL: "https://good.test"},
		{Title: "", URL: "https://bad.test"}, // rejected by validation
		{Title: "Never", URL: "https://never.test"},
	}
	if s.Import(ctx, imported) {
		t.Fatal("Expected import to fail")
	}

	note := lastNotification(t, s)
	if !note.IsError {
		t.Error("Expected an error notification")
	}

	// The sequence aborted mid-way: the server holds only the records
	// created before the failure.
	s.Reload(ctx)
	remaining := s.Links()
	if len(remaining) != 1 || remaining[0].Title != "Good" {
		t.Errorf("Expected partial import on server, got %+v", remaining)
	}
}

func TestNotificationsQueueAndDismiss(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()
	s.SetOwner(ctx, "alice")

	s.Add(ctx, "One", "https://one.test", "")
	s.Add(ctx, "Two", "https://two.test", "")

	notes := s.Notifications()
	if len(notes) != 2 {
		t.Fatalf("Expected 2 queued notifications, got %d", len(notes))
	}

	s.Dismiss(notes[0].ID)
	notes = s.Notifications()
	if len(notes) != 1 || notes[0].Message != "Link added successfully!" {
		t.Errorf("Expected one remaining notification, got %+v", notes)
	}
}

func TestNotificationAutoDismiss(t *testing.T) {
	s := newTestSession(t)
	s.successDelay = 20 * time.Millisecond
	ctx := context.Background()
	s.SetOwner(ctx, "alice")

	s.Add(ctx, "Ephemeral", "https://ephemeral.test", "")
	if len(s.Notifications()) != 1 {
		t.Fatal("Expected notification before dismiss delay")
	}

	deadline := time.Now().Add(2 * time.Second)
	for len(s.Notifications()) > 0 {
		if time.Now().After(deadline) {
			t.Fatal("Notification was never auto-dismissed")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
