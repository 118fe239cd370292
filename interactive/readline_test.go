package interactive

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}

	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/.pengu_history", filepath.Join(home, ".pengu_history")},
		{"/var/tmp/history", "/var/tmp/history"},
		{"~user/history", "~user/history"},
	}
	for _, tc := range cases {
		got, err := expandTilde(tc.in)
		if err != nil {
			t.Errorf("expandTilde(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("expandTilde(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
