package browser

import (
	"errors"
	"testing"
)

func stubStart(t *testing.T, err error) *[]string {
	t.Helper()
	var calls []string
	orig := start
	start = func(name string, args ...string) error {
		calls = append(calls, name)
		return err
	}
	t.Cleanup(func() { start = orig })
	return &calls
}

func TestOpenRejectsNonHTTP(t *testing.T) {
	calls := stubStart(t, nil)

	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://example.com", false},
		{"http://example.com", false},
		{"https://news.ycombinator.com/item?id=1", false},
		{"file:///etc/passwd", true},
		{"javascript:alert(1)", true},
		{"ftp://example.com", true},
		{"https://", true},
		{"", true},
	}

	for _, tt := range tests {
		err := Open(tt.url)
		if tt.wantErr && err == nil {
			t.Errorf("Open(%q): expected error, got nil", tt.url)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("Open(%q): unexpected error: %v", tt.url, err)
		}
	}
	if len(*calls) != 3 {
		t.Errorf("expected 3 launches, got %d", len(*calls))
	}
}

func TestOpenLaunchFailure(t *testing.T) {
	stubStart(t, errors.New("no display"))
	if err := Open("https://example.com"); err == nil {
		t.Error("expected launch error to be returned")
	}
}

func TestCommand(t *testing.T) {
	tests := []struct {
		goos     string
		wantName string
		wantArgs int
	}{
		{"darwin", "open", 1},
		{"linux", "xdg-open", 1},
		{"freebsd", "xdg-open", 1},
		{"windows", "rundll32", 2},
	}
	for _, tt := range tests {
		name, args := command(tt.goos, "https://example.com")
		if name != tt.wantName || len(args) != tt.wantArgs {
			t.Errorf("command(%s) = %s %v", tt.goos, name, args)
		}
		if args[len(args)-1] != "https://example.com" {
			t.Errorf("command(%s): url must be the last argument, got %v", tt.goos, args)
		}
	}
}
