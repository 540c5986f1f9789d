package imgresolve

import (
	"runtime"
	"testing"
)

func TestResolveWorkers(t *testing.T) {
	t.Parallel()

	gomaxprocs := runtime.GOMAXPROCS(0)

	tests := []struct {
		name        string
		workers     int
		fingerprint bool
		want        int
	}{
		{
			name:    "explicit takes priority",
			workers: 4,
			want:    4,
		},
		{
			name:        "explicit wins over fingerprint sizing",
			workers:     1,
			fingerprint: true,
			want:        1,
		},
		{
			name:    "zero without fingerprint is unbounded",
			workers: 0,
			want:    0,
		},
		{
			name:    "negative treated as auto",
			workers: -3,
			want:    0,
		},
		{
			name:        "zero with fingerprint uses auto calculation",
			workers:     0,
			fingerprint: true,
			want:        min(max(gomaxprocs*ioFactor, MinWorkers), MaxWorkers),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ResolveWorkers(tt.workers, tt.fingerprint)
			if got != tt.want {
				t.Errorf("ResolveWorkers(%d, %v) = %d, want %d", tt.workers, tt.fingerprint, got, tt.want)
			}
		})
	}
}

func TestResolveWorkers_Bounds(t *testing.T) {
	t.Parallel()

	got := ResolveWorkers(0, true)
	if got < MinWorkers {
		t.Errorf("ResolveWorkers(0, true) = %d, should be at least %d", got, MinWorkers)
	}
	if got > MaxWorkers {
		t.Errorf("ResolveWorkers(0, true) = %d, should be at most %d", got, MaxWorkers)
	}
}
