package visualization

import (
	"strings"
	"testing"
)

func TestBrowserCommand(t *testing.T) {
	tests := []struct {
		goos string
		want string
	}{
		{"linux", "xdg-open"},
		{"darwin", "open"},
		{"windows", "cmd"},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			cmd, err := browserCommand(tt.goos, "file:///tmp/report.html")
			if err != nil {
				t.Fatalf("browserCommand(%s) failed: %v", tt.goos, err)
			}
			if !strings.HasSuffix(cmd.Path, tt.want) && cmd.Args[0] != tt.want {
				t.Errorf("expected %s, got %v", tt.want, cmd.Args)
			}
			if last := cmd.Args[len(cmd.Args)-1]; last != "file:///tmp/report.html" {
				t.Errorf("expected target as last arg, got %q", last)
			}
		})
	}
}

func TestBrowserCommand_Unsupported(t *testing.T) {
	if _, err := browserCommand("plan9", "file:///x"); err == nil {
		t.Error("expected error for unsupported platform")
	}
}
