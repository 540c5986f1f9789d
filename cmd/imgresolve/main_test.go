package main

// Notes:
// - runMain: we test command dispatch and exit codes end to end, using the
//   built-in image set and directories built with t.TempDir().
// - main(): not tested directly; it only wires maxprocs and os.Exit.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestIsCommand - Command name detection
// ---------------------------------------------------------------------------

func TestIsCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"resolve", true},
		{"list", true},
		{"doctor", true},
		{"version", true},
		{"help", true},
		{"foo", false},
		{"", false},
		{"Resolve", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := isCommand(tt.input); got != tt.want {
				t.Errorf("isCommand(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsVerbose - maxprocs logging switch
// ---------------------------------------------------------------------------

func TestIsVerbose(t *testing.T) {
	t.Parallel()

	if !isVerbose([]string{"imgresolve", "list", "-v"}) {
		t.Error("-v should be verbose")
	}
	if !isVerbose([]string{"imgresolve", "list", "--verbose"}) {
		t.Error("--verbose should be verbose")
	}
	if isVerbose([]string{"imgresolve", "list"}) {
		t.Error("no flag should not be verbose")
	}
}

// ---------------------------------------------------------------------------
// TestRunMain - Main entry point output and exit codes
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	site := writeImages(t, "logo.png", "banner.jpg", "notes.txt")

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout []string
		wantStderr []string
		noStderr   bool
	}{
		{
			name:       "no args shows usage and exits with ExitUsage",
			args:       []string{"imgresolve"},
			wantCode:   ExitUsage,
			wantStderr: []string{"Usage: imgresolve"},
		},
		{
			name:       "version",
			args:       []string{"imgresolve", "version"},
			wantCode:   ExitSuccess,
			wantStdout: []string{"imgresolve " + Version},
		},
		{
			name:       "help",
			args:       []string{"imgresolve", "help"},
			wantCode:   ExitSuccess,
			wantStdout: []string{"Usage: imgresolve", "Commands:"},
		},
		{
			name:       "help list",
			args:       []string{"imgresolve", "help", "list"},
			wantCode:   ExitSuccess,
			wantStdout: []string{"Usage: imgresolve list"},
		},
		{
			name:       "unknown command",
			args:       []string{"imgresolve", "unknown"},
			wantCode:   ExitUsage,
			wantStderr: []string{"unknown command: unknown"},
		},
		{
			name:       "resolve built-in image",
			args:       []string{"imgresolve", "resolve", "logo"},
			wantCode:   ExitSuccess,
			wantStdout: []string{"./images/logo.svg\n"},
			noStderr:   true,
		},
		{
			name:       "resolve with extension and base url",
			args:       []string{"imgresolve", "resolve", "--base-url", "/static/", "hero.png"},
			wantCode:   ExitSuccess,
			wantStdout: []string{"/static/images/hero.png\n"},
		},
		{
			name:       "resolve several names prints pairs",
			args:       []string{"imgresolve", "resolve", "logo", "favicon"},
			wantCode:   ExitSuccess,
			wantStdout: []string{"logo\t./images/logo.svg\n", "favicon\t./images/favicon.svg\n"},
		},
		{
			name:       "resolve lazily",
			args:       []string{"imgresolve", "resolve", "--lazy", "hero"},
			wantCode:   ExitSuccess,
			wantStdout: []string{"./images/hero.png\n"},
		},
		{
			name:       "resolve from asset path",
			args:       []string{"imgresolve", "resolve", "--asset-path", site, "banner"},
			wantCode:   ExitSuccess,
			wantStdout: []string{"./banner.jpg\n"},
		},
		{
			name:       "asset path falls back to built-in images",
			args:       []string{"imgresolve", "resolve", "--asset-path", site, "favicon"},
			wantCode:   ExitSuccess,
			wantStdout: []string{"./images/favicon.svg\n"},
		},
		{
			name:       "missing name warns and suggests",
			args:       []string{"imgresolve", "resolve", "lgo"},
			wantCode:   ExitNotFound,
			wantStderr: []string{"asset not found: lgo", "did you mean logo"},
		},
		{
			name:       "quiet suppresses the miss warning",
			args:       []string{"imgresolve", "resolve", "-q", "nope"},
			wantCode:   ExitNotFound,
			wantStderr: []string{"asset not found: nope"},
		},
		{
			name:     "invalid name",
			args:     []string{"imgresolve", "resolve", "../logo"},
			wantCode: ExitUsage,
		},
		{
			name:       "resolve without names",
			args:       []string{"imgresolve", "resolve"},
			wantCode:   ExitUsage,
			wantStderr: []string{"no asset names given"},
		},
		{
			name:       "resolve help",
			args:       []string{"imgresolve", "resolve", "-h"},
			wantCode:   ExitSuccess,
			wantStdout: []string{"Usage: imgresolve resolve"},
		},
		{
			name:     "invalid timeout",
			args:     []string{"imgresolve", "resolve", "-t", "soon", "logo"},
			wantCode: ExitUsage,
		},
		{
			name:     "invalid mode",
			args:     []string{"imgresolve", "resolve", "--mode", "staging", "logo"},
			wantCode: ExitUsage,
		},
		{
			name:       "missing asset path",
			args:       []string{"imgresolve", "resolve", "--asset-path", site + "/missing", "logo"},
			wantCode:   ExitNotFound,
			wantStderr: []string{"invalid base path", "check the directory exists"},
		},
		{
			name:       "list text",
			args:       []string{"imgresolve", "list"},
			wantCode:   ExitSuccess,
			wantStdout: []string{"favicon", "hero", "logo", "./images/logo.svg"},
		},
		{
			name:       "list lazily as json",
			args:       []string{"imgresolve", "list", "--lazy", "-f", "json"},
			wantCode:   ExitSuccess,
			wantStdout: []string{`"hero": "./images/hero.png"`},
		},
		{
			name:       "list primary over fallback",
			args:       []string{"imgresolve", "list", "--asset-path", site, "-f", "yaml"},
			wantCode:   ExitSuccess,
			wantStdout: []string{"banner: ./banner.jpg", "logo: ./logo.png", "hero: ./images/hero.png"},
		},
		{
			name:       "list unknown format",
			args:       []string{"imgresolve", "list", "-f", "csv"},
			wantCode:   ExitUsage,
			wantStderr: []string{"unknown format"},
		},
		{
			name:     "list rejects arguments",
			args:     []string{"imgresolve", "list", "logo"},
			wantCode: ExitUsage,
		},
		{
			name:       "list with fingerprint",
			args:       []string{"imgresolve", "list", "--asset-path", site, "--no-fallback", "--fingerprint"},
			wantCode:   ExitSuccess,
			wantStdout: []string{"./banner.jpg?v="},
		},
		{
			name:     "unsupported extension",
			args:     []string{"imgresolve", "list", "--ext", "png,*.gif"},
			wantCode: ExitUsage,
		},
		{
			name:       "doctor",
			args:       []string{"imgresolve", "doctor"},
			wantCode:   ExitSuccess,
			wantStdout: []string{"imgresolve doctor", "Status: Ready"},
		},
		{
			name:       "config not found hints search paths",
			args:       []string{"imgresolve", "list", "-c", "no-such-config-name"},
			wantCode:   ExitUsage,
			wantStderr: []string{"no-such-config-name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := newTestEnv()
			code := runMain(tt.args, env)

			if code != tt.wantCode {
				t.Errorf("runMain(%v) = %d, want %d\nstderr: %s", tt.args, code, tt.wantCode, stderr.String())
			}
			for _, want := range tt.wantStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout should contain %q, got %q", want, stdout.String())
				}
			}
			for _, want := range tt.wantStderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr should contain %q, got %q", want, stderr.String())
				}
			}
			if tt.noStderr && stderr.Len() > 0 {
				t.Errorf("stderr should be empty, got %q", stderr.String())
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Quiet - No warning lines with -q
// ---------------------------------------------------------------------------

func TestRunMain_Quiet(t *testing.T) {
	t.Parallel()

	env, _, stderr := newTestEnv()
	runMain([]string{"imgresolve", "resolve", "-q", "nope"}, env)

	if strings.Contains(stderr.String(), "[Resolve]") {
		t.Errorf("quiet run should not print warnings, got %q", stderr.String())
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Verbose - Session summary on stderr
// ---------------------------------------------------------------------------

func TestRunMain_Verbose(t *testing.T) {
	t.Parallel()

	env, _, stderr := newTestEnv()
	if code := runMain([]string{"imgresolve", "resolve", "-v", "logo"}, env); code != ExitSuccess {
		t.Fatalf("code = %d, stderr: %s", code, stderr.String())
	}
	for _, want := range []string{"source: embedded (images)", "fallback: none", "mode: development, 3 assets"} {
		if !strings.Contains(stderr.String(), want) {
			t.Errorf("stderr should contain %q, got %q", want, stderr.String())
		}
	}
}
