package commands

import (
	"context"
	"testing"

	"tasksync/internal/engine"
	"tasksync/internal/testutil"
)

func TestParseTaskRef_Number(t *testing.T) {
	ref, rest, err := ParseTaskRef([]string{"5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.ByID {
		t.Error("expected ByID to be false")
	}
	if ref.Num != 5 {
		t.Errorf("expected Num 5, got %d", ref.Num)
	}
	if len(rest) != 0 {
		t.Errorf("expected no remaining args, got %v", rest)
	}
}

func TestParseTaskRef_ID(t *testing.T) {
	ref, _, err := ParseTaskRef([]string{"#42"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ref.ByID {
		t.Error("expected ByID to be true")
	}
	if ref.ID != 42 {
		t.Errorf("expected ID 42, got %d", ref.ID)
	}
	if ref.String() != "#42" {
		t.Errorf("expected %q, got %q", "#42", ref.String())
	}
}

func TestParseTaskRef_ReturnsRemainingArgs(t *testing.T) {
	_, rest, err := ParseTaskRef([]string{"2", "new", "title"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rest) != 2 || rest[0] != "new" || rest[1] != "title" {
		t.Errorf("expected [new title], got %v", rest)
	}
}

func TestParseTaskRef_NoArgs_Error(t *testing.T) {
	_, _, err := ParseTaskRef([]string{})
	if err == nil {
		t.Fatal("expected error for no args")
	}
	if err != ErrTaskRefRequired {
		t.Errorf("expected ErrTaskRefRequired, got %v", err)
	}
}

func TestParseTaskRef_Invalid_Error(t *testing.T) {
	for _, arg := range []string{"abc", "#", "#x1", "1a", "-1", "#0", "٣"} {
		_, _, err := ParseTaskRef([]string{arg})
		if err == nil {
			t.Errorf("expected error for %q", arg)
			continue
		}
		expectedMsg := "invalid task reference: " + arg
		if err.Error() != expectedMsg {
			t.Errorf("expected %q, got %q", expectedMsg, err.Error())
		}
	}
}

func loadedEngine(t *testing.T) *engine.Engine {
	t.Helper()
	svc := testutil.NewFakeService(1)
	svc.AddTask(10, "First", false)
	svc.AddTask(20, "Second", true)
	eng := engine.New(svc, engine.Options{OwnerID: 1})
	t.Cleanup(eng.Close)
	if err := eng.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return eng
}

func TestResolveTaskRef(t *testing.T) {
	eng := loadedEngine(t)

	task, err := ResolveTaskRef(eng, TaskRef{Num: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ID != 20 {
		t.Errorf("expected task 20, got %d", task.ID)
	}

	task, err = ResolveTaskRef(eng, TaskRef{ID: 10, ByID: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Title != "First" {
		t.Errorf("expected %q, got %q", "First", task.Title)
	}
}

func TestResolveTaskRef_Errors(t *testing.T) {
	eng := loadedEngine(t)

	tests := []struct {
		ref  TaskRef
		want string
	}{
		{TaskRef{Num: 0}, "task number out of range: 0"},
		{TaskRef{Num: 3}, "task number out of range: 3"},
		{TaskRef{ID: 99, ByID: true}, "task not found: #99"},
	}
	for _, tt := range tests {
		_, err := ResolveTaskRef(eng, tt.ref)
		if err == nil {
			t.Errorf("expected error for %s", tt.ref)
			continue
		}
		if err.Error() != tt.want {
			t.Errorf("expected %q, got %q", tt.want, err.Error())
		}
	}
}
