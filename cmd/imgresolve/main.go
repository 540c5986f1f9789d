package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Command names.
const (
	cmdResolve    = "resolve"
	cmdList       = "list"
	cmdDoctor     = "doctor"
	cmdVersion    = "version"
	cmdHelp       = "help"
	cmdCompletion = "completion"
)

var commands = []string{cmdResolve, cmdList, cmdDoctor, cmdVersion, cmdHelp, cmdCompletion}

func main() {
	// Configure GOMAXPROCS with conditional logging
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if isVerbose(os.Args) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// isVerbose reports whether -v or --verbose appears in args.
func isVerbose(args []string) bool {
	return slices.Contains(args, "-v") || slices.Contains(args, "--verbose")
}

// isCommand reports whether name is a known command.
func isCommand(name string) bool {
	return slices.Contains(commands, name)
}

// runMain dispatches a command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := args[1], args[2:]
	switch cmd {
	case cmdResolve:
		return finish(env, printResolveUsage, runResolve(ctx, rest, env))
	case cmdList:
		return finish(env, printListUsage, runList(ctx, rest, env))
	case cmdDoctor:
		return runDoctorCmd(ctx, rest, env)
	case cmdVersion:
		fmt.Fprintf(env.Stdout, "imgresolve %s\n", Version)
		return ExitSuccess
	case cmdCompletion:
		return reportError(env.Stderr, runCompletion(rest, env))
	case cmdHelp, "-h", "--help":
		runHelp(rest, env)
		return ExitSuccess
	default:
		return reportError(env.Stderr, fmt.Errorf("%w: %s", ErrUnknownCommand, cmd))
	}
}

// finish turns a command error into an exit code. -h/--help prints the
// command usage and succeeds.
func finish(env *Environment, usage func(io.Writer), err error) int {
	if errors.Is(err, flag.ErrHelp) {
		usage(env.Stdout)
		return ExitSuccess
	}
	return reportError(env.Stderr, err)
}

// reportError prints err and returns its exit code.
func reportError(w io.Writer, err error) int {
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintln(w, err)
	return exitCodeFor(err)
}
