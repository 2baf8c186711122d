package system

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSuggestWorkersAtLeastOne(t *testing.T) {
	if w := SuggestWorkers(); w < 1 {
		t.Fatalf("SuggestWorkers() = %d, want >= 1", w)
	}
}

func TestFindLatestInput(t *testing.T) {
	dir := t.TempDir()

	write := func(name string, mod time.Time) {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := os.Chtimes(path, mod, mod); err != nil {
			t.Fatal(err)
		}
	}

	base := time.Now().Add(-time.Hour)
	write("old.png", base)
	write("newest.pdf", base.Add(30*time.Minute))
	write("ignored.txt", base.Add(45*time.Minute))

	got, err := FindLatestInput(dir)
	if err != nil {
		t.Fatalf("FindLatestInput: %v", err)
	}
	if want := filepath.Join(dir, "newest.pdf"); got != want {
		t.Fatalf("FindLatestInput = %q, want %q", got, want)
	}
}

func TestFindLatestInputEmpty(t *testing.T) {
	if _, err := FindLatestInput(t.TempDir()); err == nil {
		t.Fatal("expected an error for a directory without inputs")
	}
}
