package output_test

import (
	"bytes"
	"testing"

	"tasksync/internal/engine"
	"tasksync/internal/output"
	"tasksync/internal/service"
	"tasksync/internal/testutil"
)

func TestFormatTask(t *testing.T) {
	var buf bytes.Buffer
	output.FormatTask(&buf, 1, service.Task{ID: 5, Title: "Buy milk"}, false)
	output.FormatTask(&buf, 12, service.Task{ID: 6, Title: "Line\nbreak", Completed: true}, true)
	output.FormatTask(&buf, 3, service.Task{ID: 7, Title: "  "}, false)

	expected := "   1  [ ] Buy milk\n  12  [x] Line break (pending)\n   3  [ ] (untitled)\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestFormatPlaceholder(t *testing.T) {
	var buf bytes.Buffer
	output.FormatPlaceholder(&buf, service.Task{Title: "Walk dog"})

	expected := "   -  [ ] Walk dog (saving)\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestFormatNotification(t *testing.T) {
	var buf bytes.Buffer
	output.FormatNotification(&buf, engine.Notification{})
	if buf.Len() != 0 {
		t.Errorf("expected no output for hidden banner, got %q", buf.String())
	}

	output.FormatNotification(&buf, engine.Notification{Kind: engine.DeleteFailed, Message: "Unable to delete a todo"})
	expected := "error: Unable to delete a todo\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestFormatConfigWarning(t *testing.T) {
	var buf bytes.Buffer
	output.FormatConfigWarning(&buf)
	testutil.Golden(t, "config_warning", buf.Bytes())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	err := output.WriteJSON(&buf, []service.Task{{ID: 1, Title: "A", Completed: true, OwnerID: 7}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.Golden(t, "tasks_json", buf.Bytes())
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	err := output.WriteYAML(&buf, []service.Task{{ID: 1, Title: "A", Completed: true, OwnerID: 7}, {ID: 2, Title: "B", OwnerID: 7}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.Golden(t, "tasks_yaml", buf.Bytes())
}

func TestWriteJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := output.WriteJSON(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "[]\n" {
		t.Errorf("expected %q, got %q", "[]\n", buf.String())
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]output.Format{"": output.Text, "JSON": output.JSON, "yaml": output.YAML} {
		got, err := output.ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; expected %q", in, got, err, want)
		}
	}
	if _, err := output.ParseFormat("xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}
