package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/alnah/go-imgresolve"
	"github.com/alnah/go-imgresolve/internal/config"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: imgresolve <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  resolve    Print the URL of one or more images")
	fmt.Fprintln(w, "  list       Print every image name and URL")
	fmt.Fprintln(w, "  doctor     Check image sources and loaders")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'imgresolve help <command>' for details on a specific command.")
}

// joinExtensions returns the default allow-list as --ext takes it.
func joinExtensions() string {
	return strings.Join(imgresolve.DefaultExtensions(), ",")
}

// printSourceFlags prints the flags shared by every command that builds a resolver.
func printSourceFlags(w io.Writer) {
	fmt.Fprintln(w, "Source:")
	fmt.Fprintln(w, "      --asset-path <path>   Image directory on disk (default: built-in images)")
	fmt.Fprintln(w, "      --dir <dir>           Directory under --asset-path holding images")
	fmt.Fprintln(w, "      --ext <list>          Extension allow-list in priority order")
	fmt.Fprintf(w, "                            (default: %s)\n", joinExtensions())
	fmt.Fprintln(w, "      --no-fallback         Do not fall back to built-in images")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "URLs:")
	fmt.Fprintln(w, "      --base-url <s>        URL prefix (default: ./)")
	fmt.Fprintln(w, "      --fingerprint         Append ?v=<content hash> to URLs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Runtime:")
	fmt.Fprintf(w, "      --mode <s>            Mode: %s, %s (default: %s)\n",
		config.ModeDevelopment, config.ModeProduction, config.ModeDevelopment)
	fmt.Fprintln(w, "  -w, --workers <n>         Concurrent loaders (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Timeout for lazy loading (e.g., 5s, 1m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show source and timing details")
}

// printResolveUsage prints usage for the resolve command.
func printResolveUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: imgresolve resolve [flags] <name>...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the URL of each image. A name may omit its extension.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  name    Image name, e.g. logo or logo.svg")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Lookup:")
	fmt.Fprintln(w, "      --lazy                Resolve through the lazy index")
	fmt.Fprintln(w)
	printSourceFlags(w)
}

// printListUsage prints usage for the list command.
func printListUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: imgresolve list [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print every image name and its URL.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Listing:")
	fmt.Fprintln(w, "      --lazy                Run every lazy loader instead of the eager index")
	fmt.Fprintf(w, "  -f, --format <s>          Format: text, json, yaml, markdown, html (default: %s)\n", config.FormatText)
	fmt.Fprintln(w, "      --color[=<when>]      Highlight json/yaml: auto, always, never (default: auto)")
	fmt.Fprintf(w, "      --style <s>           Highlight style (default: %s)\n", config.DefaultStyle)
	fmt.Fprintln(w)
	printSourceFlags(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: imgresolve doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check image sources: empty directories, skipped files,")
	fmt.Fprintln(w, "names shared by several files, and loader failures.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Report:")
	fmt.Fprintln(w, "      --json                Output diagnostics as JSON")
	fmt.Fprintln(w)
	printSourceFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 = ready or warnings, 1 = errors found")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case cmdResolve:
		printResolveUsage(env.Stdout)
	case cmdList:
		printListUsage(env.Stdout)
	case cmdDoctor:
		printDoctorUsage(env.Stdout)
	case cmdCompletion:
		printCompletionUsage(env.Stdout)
	case cmdVersion:
		fmt.Fprintln(env.Stdout, "Usage: imgresolve version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case cmdHelp:
		fmt.Fprintln(env.Stdout, "Usage: imgresolve help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
