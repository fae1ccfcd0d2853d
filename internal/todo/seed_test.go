package todo

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadSeedDefault(t *testing.T) {
	todos, err := LoadSeed("")
	if err != nil {
		t.Fatalf("LoadSeed() error = %v", err)
	}
	if len(todos) != 3 {
		t.Fatalf("len = %d, want 3", len(todos))
	}
	if !todos[1].Completed || todos[0].Completed || todos[2].Completed {
		t.Errorf("seed completion flags = %v", todos)
	}
}

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	data := `{"todos": [{"text": " Water plants "}, {"text": "Pay rent", "completed": true}]}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	todos, err := LoadSeed(path)
	if err != nil {
		t.Fatalf("LoadSeed() error = %v", err)
	}
	if got := texts(todos); !equalStrings(got, []string{"Water plants", "Pay rent"}) {
		t.Errorf("texts = %v", got)
	}
	if todos[0].Completed || !todos[1].Completed {
		t.Errorf("completion flags = %+v", todos)
	}
}

func TestLoadSeedMissingFile(t *testing.T) {
	_, err := LoadSeed(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want wrapped ErrNotExist", err)
	}
}

func TestParseSeedRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"missing todos", `{}`, "todos"},
		{"blank text", `{"todos": [{"text": "   "}]}`, "/todos/0/text"},
		{"wrong type", `{"todos": [{"text": "x", "completed": "yes"}]}`, "/todos/0/completed"},
		{"extra field", `{"todos": [{"text": "x", "editing": true}]}`, "/todos/0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSeed("test.json", []byte(tt.data))
			var serr *SeedError
			if !errors.As(err, &serr) {
				t.Fatalf("error = %v, want *SeedError", err)
			}
			if !strings.Contains(serr.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", serr.Error(), tt.want)
			}
		})
	}
}

func TestParseSeedMalformedJSON(t *testing.T) {
	_, err := ParseSeed("bad.json", []byte(`{"todos": [`))
	if err == nil {
		t.Fatal("expected error")
	}
	var serr *SeedError
	if errors.As(err, &serr) {
		t.Error("malformed JSON should not be reported as a schema violation")
	}
}
