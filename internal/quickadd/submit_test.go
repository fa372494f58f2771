package quickadd

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"quicktask/internal/service"
	"quicktask/internal/testutil"
)

func TestSubmit_EmptyTitleIsNoop(t *testing.T) {
	svc := testutil.NewFakeService()
	connects := 0
	s := NewSubmitter(svc.Connector(&connects), "note", zerolog.Nop())

	for _, title := range []string{"", "   ", "\t\n"} {
		added, err := s.Submit(context.Background(), title)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", title, err)
		}
		if added {
			t.Errorf("expected no task for %q", title)
		}
	}

	if connects != 0 {
		t.Errorf("expected no connection, got %d", connects)
	}
	if svc.ListCalls != 0 || len(svc.Inserts()) != 0 {
		t.Errorf("expected no remote calls, got %d lists and %d inserts", svc.ListCalls, len(svc.Inserts()))
	}
}

func TestSubmit_InsertsOnceIntoFirstList(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddList("work", "Work")
	s := NewSubmitter(svc.Connector(nil), "Added via Quick Task", zerolog.Nop())

	added, err := s.Submit(context.Background(), "  Buy milk  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !added {
		t.Fatal("expected task to be added")
	}

	inserts := svc.Inserts()
	if len(inserts) != 1 {
		t.Fatalf("expected exactly 1 insert, got %d", len(inserts))
	}
	if inserts[0].ListID != testutil.DefaultListID {
		t.Errorf("expected first list %q, got %q", testutil.DefaultListID, inserts[0].ListID)
	}
	if inserts[0].Task.Title != "Buy milk" {
		t.Errorf("expected title 'Buy milk', got %q", inserts[0].Task.Title)
	}
	if inserts[0].Task.Notes != "Added via Quick Task" {
		t.Errorf("unexpected notes %q", inserts[0].Task.Notes)
	}
	if svc.ListCalls != 1 {
		t.Errorf("expected 1 list call, got %d", svc.ListCalls)
	}
}

func TestSubmit_NoLists(t *testing.T) {
	svc := testutil.NewEmptyFakeService()
	s := NewSubmitter(svc.Connector(nil), "", zerolog.Nop())

	added, err := s.Submit(context.Background(), "Buy milk")
	if !errors.Is(err, ErrNoTaskLists) {
		t.Fatalf("expected ErrNoTaskLists, got %v", err)
	}
	if added {
		t.Error("expected no task")
	}
}

func TestSubmit_ConnectError(t *testing.T) {
	connectErr := errors.New("client secret not found: /x/credentials.json")
	s := NewSubmitter(func(ctx context.Context) (service.Service, error) {
		return nil, connectErr
	}, "", zerolog.Nop())

	_, err := s.Submit(context.Background(), "Buy milk")
	if !errors.Is(err, connectErr) {
		t.Fatalf("expected connect error, got %v", err)
	}
}

func TestSubmit_BackendErrors(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListListsErr = errors.New("network down")
	s := NewSubmitter(svc.Connector(nil), "", zerolog.Nop())

	if _, err := s.Submit(context.Background(), "Buy milk"); err == nil {
		t.Fatal("expected list error")
	}

	svc.ListListsErr = nil
	svc.CreateTaskErr = errors.New("quota exceeded")
	if _, err := s.Submit(context.Background(), "Buy milk"); err == nil {
		t.Fatal("expected insert error")
	}
	if len(svc.Inserts()) != 0 {
		t.Errorf("expected no recorded inserts, got %d", len(svc.Inserts()))
	}
}
