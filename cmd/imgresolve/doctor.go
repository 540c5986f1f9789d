package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/alnah/go-imgresolve"
	"github.com/alnah/go-imgresolve/internal/fileutil"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string       `json:"status"` // "ready", "warnings", "errors"
	Mode     string       `json:"mode,omitempty"`
	Fallback bool         `json:"fallback"`
	Sources  []sourceInfo `json:"sources,omitempty"`
	Probe    probeInfo    `json:"probe"`
	Env      envInfo      `json:"environment"`
	Warnings []string     `json:"warnings,omitempty"`
	Errors   []string     `json:"errors,omitempty"`
}

// sourceInfo summarizes discovery in one image source.
type sourceInfo struct {
	Name       string              `json:"name"`
	Dir        string              `json:"dir"`
	Assets     int                 `json:"assets"`
	Skipped    []string            `json:"skipped,omitempty"`
	Collisions map[string][]string `json:"collisions,omitempty"`
}

// probeInfo holds lazy loader results.
type probeInfo struct {
	Ran    bool     `json:"ran"`
	Loaded int      `json:"loaded"`
	Failed []string `json:"failed,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	AssetPath     string `json:"imgresolve_asset_path,omitempty"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found, 2 = bad flags.
func runDoctorCmd(ctx context.Context, args []string, env *Environment) int {
	flags, fs, err := parseDoctorFlags(args, env.Stderr)
	if err != nil {
		return finish(env, printDoctorUsage, err)
	}
	// Doctor reports problems itself; lookup warnings would duplicate them.
	flags.common.quiet = true

	result := &doctorResult{Status: statusReady}
	checkEnvironment(result)

	s, err := openSession(fs, flags.common, flags.assets, env)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
	} else {
		result.Mode = s.resolver.Mode().String()
		result.Fallback = s.resolver.HasFallback()
		checkSources(result, s.resolver.Sources())

		pctx, cancel := s.context(ctx)
		checkProbe(result, s.resolver.Probe(pctx))
		cancel()
	}
	result.finish()

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// finish derives the final status from warnings and errors.
func (r *doctorResult) finish() {
	switch {
	case len(r.Errors) > 0:
		r.Status = statusErrors
	case len(r.Warnings) > 0:
		r.Status = statusWarnings
	default:
		r.Status = statusReady
	}
}

// checkEnvironment detects the platform and container environments.
func checkEnvironment(result *doctorResult) {
	result.Env.OS = runtime.GOOS
	result.Env.Arch = runtime.GOARCH
	result.Env.AssetPath = os.Getenv("IMGRESOLVE_ASSET_PATH")
	result.Env.Container, result.Env.ContainerHint = isContainer()

	if result.Env.Container && result.Env.AssetPath != "" && !fileutil.DirExists(result.Env.AssetPath) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Container detected and IMGRESOLVE_ASSET_PATH=%s is not a directory. Mount it into the container", result.Env.AssetPath))
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	// Explicit override (highest priority)
	if os.Getenv("IMGRESOLVE_CONTAINER") == "1" {
		return true, "IMGRESOLVE_CONTAINER=1"
	}
	// Docker
	if fileutil.FileExists("/.dockerenv") {
		return true, "/.dockerenv"
	}
	// Podman / systemd-nspawn / general container indicator
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	// Kubernetes
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSources reports empty sources, skipped files and name collisions.
func checkSources(result *doctorResult, sources []imgresolve.SourceReport) {
	for i, src := range sources {
		info := sourceInfo{
			Name:       src.Name,
			Dir:        src.Dir,
			Assets:     len(src.Paths),
			Skipped:    src.Skipped,
			Collisions: src.Collisions,
		}
		result.Sources = append(result.Sources, info)

		if info.Assets == 0 {
			msg := fmt.Sprintf("No images found in %s (%s)", src.Name, src.Dir)
			if i == 0 {
				result.Errors = append(result.Errors, msg)
			} else {
				result.Warnings = append(result.Warnings, msg)
			}
		}
		if len(src.Skipped) > 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%d file(s) in %s skipped for their extension: %s",
					len(src.Skipped), src.Name, strings.Join(src.Skipped, ", ")))
		}
		for _, name := range sortedKeys(src.Collisions) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Name %q is shared by %s; lookups without an extension pick %s",
					name, strings.Join(src.Collisions[name], ", "), src.Collisions[name][0]))
		}
	}
}

// checkProbe runs every loader outcome through the report.
func checkProbe(result *doctorResult, results []imgresolve.LoadResult) {
	result.Probe.Ran = true
	for _, res := range results {
		if res.Err != nil {
			result.Probe.Failed = append(result.Probe.Failed, res.Path)
			result.Errors = append(result.Errors, fmt.Sprintf("Loading %s: %v", res.Path, res.Err))
			continue
		}
		result.Probe.Loaded++
	}
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "imgresolve doctor")
	fmt.Fprintln(w)

	// Sources section
	fmt.Fprintln(w, "Sources")
	if len(r.Sources) == 0 {
		fmt.Fprintln(w, "  [ERROR] No source could be opened")
	}
	for _, src := range r.Sources {
		tag := "[OK]"
		if src.Assets == 0 {
			tag = "[WARN]"
		}
		fmt.Fprintf(w, "  %s %s (%s): %d images\n", tag, src.Name, src.Dir, src.Assets)
	}
	if r.Mode != "" {
		fmt.Fprintf(w, "  [OK] Mode: %s\n", r.Mode)
		fallback := "none"
		if r.Fallback {
			fallback = "embedded"
		}
		fmt.Fprintf(w, "  [OK] Fallback: %s\n", fallback)
	}
	fmt.Fprintln(w)

	// Probe section
	if r.Probe.Ran {
		fmt.Fprintln(w, "Loaders")
		fmt.Fprintf(w, "  [OK] Loaded: %d\n", r.Probe.Loaded)
		if n := len(r.Probe.Failed); n > 0 {
			fmt.Fprintf(w, "  [ERROR] Failed: %d\n", n)
		}
		fmt.Fprintln(w)
	}

	// Environment section
	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	fmt.Fprintln(w)

	// Warnings
	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	// Errors
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	// Final status
	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
