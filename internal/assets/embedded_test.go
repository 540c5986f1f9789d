package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestEmbeddedSource(t *testing.T) {
	t.Parallel()

	src := EmbeddedSource()
	if src.FS == nil {
		t.Fatal("EmbeddedSource() returned nil FS")
	}
	if src.Dir != EmbeddedDir {
		t.Errorf("Dir = %q, want %q", src.Dir, EmbeddedDir)
	}

	d, err := Discover(src.FS, src.Dir, nil)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(d.Paths) == 0 {
		t.Fatal("embedded image set is empty")
	}
	for _, p := range d.Paths {
		if !strings.HasPrefix(p, "/images/") {
			t.Errorf("path %q should be rooted under /images/", p)
		}
	}
}

func TestEmbeddedSource_Resolve(t *testing.T) {
	t.Parallel()

	r, _, err := Build(EmbeddedSource(), BuildOptions{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{
			name:  "logo with extension",
			input: "logo.svg",
			want:  "./images/logo.svg",
		},
		{
			name:  "hero without extension",
			input: "hero",
			want:  "./images/hero.png",
		},
		{
			name:    "missing image",
			input:   "missing",
			wantErr: ErrAssetNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := r.Resolve(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Resolve(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
