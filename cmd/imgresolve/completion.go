package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-imgresolve"
	"github.com/alnah/go-imgresolve/internal/config"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

var shells = []string{string(ShellBash), string(ShellZsh), string(ShellFish), string(ShellPowerShell)}

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// assetNamesCmd prints one asset name per line for dynamic completion.
const assetNamesCmd = "imgresolve list -q 2>/dev/null | awk '{print $1}'"

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --format
	Short    string   // -f (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// takesValue reports whether the flag consumes the next word.
// --color takes its value only in --color=<when> form.
func (fd flagDef) takesValue() bool {
	return fd.Type != flagBool && fd.Long != "color"
}

// argKind says what positional arguments a command completes.
type argKind int

const (
	argNone argKind = iota
	argAssets
	argCommands
	argShells
)

// commandDef describes a command for completion.
type commandDef struct {
	Name  string
	Desc  string
	Flags []flagDef
	Args  argKind
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	// Enum flags
	"mode":   {Values: []string{config.ModeDevelopment, config.ModeProduction}},
	"format": {Values: config.Formats},
	"color":  {Values: []string{colorAuto, colorAlways, colorNever}},
	"ext":    {Values: imgresolve.DefaultExtensions()},

	// File flags with glob patterns
	"config": {FileGlob: "*.yaml,*.yml"},

	// Directory flags
	"asset-path": {IsDir: true},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSets.
func getCommands() []commandDef {
	return []commandDef{
		{
			Name:  cmdResolve,
			Desc:  "Print the URL of one or more images",
			Flags: extractFlagsFromFlagSet(buildResolveFlagSet(&resolveFlags{}, io.Discard)),
			Args:  argAssets,
		},
		{
			Name:  cmdList,
			Desc:  "Print every image name and URL",
			Flags: extractFlagsFromFlagSet(buildListFlagSet(&listFlags{}, io.Discard)),
		},
		{
			Name:  cmdDoctor,
			Desc:  "Check image sources and loaders",
			Flags: extractFlagsFromFlagSet(buildDoctorFlagSet(&doctorFlags{}, io.Discard)),
		},
		{Name: cmdVersion, Desc: "Show version information"},
		{Name: cmdHelp, Desc: "Show help for a command", Args: argCommands},
		{Name: cmdCompletion, Desc: "Generate shell completion script", Args: argShells},
	}
}

// commandNames returns every command name in registry order.
func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var gen func(*strings.Builder, []commandDef)
	switch shell {
	case ShellBash:
		gen = generateBash
	case ShellZsh:
		gen = generateZsh
	case ShellFish:
		gen = generateFish
	case ShellPowerShell:
		gen = generatePowerShell
	default:
		return fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedShell, shell, strings.Join(shells, ", "))
	}

	var b strings.Builder
	gen(&b, getCommands())
	_, err := io.WriteString(w, b.String())
	return err
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: imgresolve completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w, "Image names for 'resolve' are completed from 'imgresolve list'.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(imgresolve completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (after compinit):")
	fmt.Fprintln(w, "    eval \"$(imgresolve completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    imgresolve completion fish > ~/.config/fish/completions/imgresolve.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    imgresolve completion powershell | Out-String | Invoke-Expression")
}

// flagWords returns every spelling of the command's flags.
func flagWords(flags []flagDef) []string {
	var words []string
	for _, fd := range flags {
		words = append(words, "--"+fd.Long)
		if fd.Short != "" {
			words = append(words, "-"+fd.Short)
		}
	}
	return words
}

// spellings returns the "--long|-s" case pattern for a flag.
func spellings(fd flagDef) string {
	if fd.Short != "" {
		return "--" + fd.Long + "|-" + fd.Short
	}
	return "--" + fd.Long
}

// globAlternation turns "*.yaml,*.yml" into "yaml|yml".
func globAlternation(glob string) string {
	parts := strings.Split(glob, ",")
	for i, p := range parts {
		parts[i] = strings.TrimPrefix(p, "*.")
	}
	return strings.Join(parts, "|")
}

func generateBash(b *strings.Builder, cmds []commandDef) {
	b.WriteString("# bash completion for imgresolve\n")
	b.WriteString("_imgresolve() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ $COMP_CWORD -eq 1 ]]; then\n")
	fmt.Fprintf(b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(commandNames(cmds), " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"$cmd\" in\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 && c.Args == argNone {
			continue
		}
		fmt.Fprintf(b, "    %s)\n", c.Name)
		if len(c.Flags) > 0 {
			b.WriteString("        case \"$prev\" in\n")
			for _, fd := range c.Flags {
				if !fd.takesValue() {
					continue
				}
				switch fd.Type {
				case flagEnum:
					fmt.Fprintf(b, "        %s) COMPREPLY=($(compgen -W %q -- \"$cur\")); return ;;\n",
						spellings(fd), strings.Join(fd.Values, " "))
				case flagFile:
					fmt.Fprintf(b, "        %s) COMPREPLY=($(compgen -f -X '!*.@(%s)' -- \"$cur\")); return ;;\n",
						spellings(fd), globAlternation(fd.FileGlob))
				case flagDir:
					fmt.Fprintf(b, "        %s) COMPREPLY=($(compgen -d -- \"$cur\")); return ;;\n", spellings(fd))
				default:
					fmt.Fprintf(b, "        %s) return ;;\n", spellings(fd))
				}
			}
			b.WriteString("        esac\n")
			b.WriteString("        if [[ \"$cur\" == -* ]]; then\n")
			fmt.Fprintf(b, "            COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(flagWords(c.Flags), " "))
			b.WriteString("            return\n")
			b.WriteString("        fi\n")
		}
		switch c.Args {
		case argAssets:
			fmt.Fprintf(b, "        COMPREPLY=($(compgen -W \"$(%s)\" -- \"$cur\"))\n", assetNamesCmd)
		case argCommands:
			fmt.Fprintf(b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(commandNames(cmds), " "))
		case argShells:
			fmt.Fprintf(b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(shells, " "))
		}
		b.WriteString("        ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n")
	b.WriteString("complete -F _imgresolve imgresolve\n")
}

// zshEscape escapes text for a zsh single-quoted _arguments spec.
func zshEscape(s string) string {
	return strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`, ":", `\:`).Replace(s)
}

// zshSpec returns the _arguments spec for one flag.
func zshSpec(fd flagDef) string {
	var action string
	switch {
	case fd.Long == "color":
		action = ""
	case fd.Type == flagEnum:
		action = fmt.Sprintf(":%s:(%s)", fd.Long, strings.Join(fd.Values, " "))
	case fd.Type == flagFile:
		globs := strings.ReplaceAll(fd.FileGlob, ",", " ")
		action = fmt.Sprintf(":file:_files -g \"%s\"", globs)
	case fd.Type == flagDir:
		action = ":directory:_files -/"
	case fd.Type != flagBool:
		action = ":" + fd.Long + ":"
	}

	desc := "[" + zshEscape(fd.Desc) + "]"
	if fd.Long == "color" {
		return fmt.Sprintf("'--color=-%s:when:(%s)'", desc, strings.Join(fd.Values, " "))
	}
	if fd.Short != "" {
		return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'%s%s'", fd.Short, fd.Long, fd.Short, fd.Long, desc, action)
	}
	return fmt.Sprintf("'--%s%s%s'", fd.Long, desc, action)
}

func generateZsh(b *strings.Builder, cmds []commandDef) {
	b.WriteString("#compdef imgresolve\n\n")
	b.WriteString("_imgresolve_assets() {\n")
	b.WriteString("    local -a names\n")
	fmt.Fprintf(b, "    names=(${(f)\"$(%s)\"})\n", assetNamesCmd)
	b.WriteString("    _describe 'image' names\n")
	b.WriteString("}\n\n")
	b.WriteString("_imgresolve() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    local cmd=${words[2]}\n")
	b.WriteString("    shift words\n")
	b.WriteString("    (( CURRENT-- ))\n\n")
	b.WriteString("    case $cmd in\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 && c.Args == argNone {
			continue
		}
		fmt.Fprintf(b, "    %s)\n", c.Name)
		b.WriteString("        _arguments -s")
		for _, fd := range c.Flags {
			fmt.Fprintf(b, " \\\n            %s", zshSpec(fd))
		}
		switch c.Args {
		case argAssets:
			b.WriteString(" \\\n            '*:image:_imgresolve_assets'")
		case argCommands:
			fmt.Fprintf(b, " \\\n            '1:command:(%s)'", strings.Join(commandNames(cmds), " "))
		case argShells:
			fmt.Fprintf(b, " \\\n            '1:shell:(%s)'", strings.Join(shells, " "))
		}
		b.WriteString("\n        ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _imgresolve imgresolve\n")
}

// fishEscape escapes text for a fish single-quoted string.
func fishEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, "'", `\'`).Replace(s)
}

func generateFish(b *strings.Builder, cmds []commandDef) {
	b.WriteString("# fish completion for imgresolve\n")
	b.WriteString("complete -c imgresolve -f\n\n")
	for _, c := range cmds {
		fmt.Fprintf(b, "complete -c imgresolve -n __fish_use_subcommand -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
	}
	for _, c := range cmds {
		cond := fmt.Sprintf("-n '__fish_seen_subcommand_from %s'", c.Name)
		if len(c.Flags) > 0 || c.Args != argNone {
			b.WriteString("\n")
		}
		for _, fd := range c.Flags {
			fmt.Fprintf(b, "complete -c imgresolve %s", cond)
			if fd.Short != "" {
				fmt.Fprintf(b, " -s %s", fd.Short)
			}
			fmt.Fprintf(b, " -l %s", fd.Long)
			switch {
			case fd.Type == flagEnum:
				fmt.Fprintf(b, " -x -a '%s'", strings.Join(fd.Values, " "))
			case fd.Type == flagFile:
				b.WriteString(" -r -F")
			case fd.Type == flagDir:
				b.WriteString(" -x -a '(__fish_complete_directories)'")
			case fd.Type != flagBool:
				b.WriteString(" -x")
			}
			fmt.Fprintf(b, " -d '%s'\n", fishEscape(fd.Desc))
		}
		switch c.Args {
		case argAssets:
			fmt.Fprintf(b, "complete -c imgresolve %s -a '(imgresolve list -q 2>/dev/null | string replace -r \"\\\\s.*\" \"\")'\n", cond)
		case argCommands:
			fmt.Fprintf(b, "complete -c imgresolve %s -a '%s'\n", cond, strings.Join(commandNames(cmds), " "))
		case argShells:
			fmt.Fprintf(b, "complete -c imgresolve %s -a '%s'\n", cond, strings.Join(shells, " "))
		}
	}
}

// psQuote single-quotes s for PowerShell.
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// psList renders words as a PowerShell array literal.
func psList(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = psQuote(w)
	}
	return "@(" + strings.Join(quoted, ", ") + ")"
}

func generatePowerShell(b *strings.Builder, cmds []commandDef) {
	b.WriteString("# powershell completion for imgresolve\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName imgresolve -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")
	b.WriteString("    $words = @($commandAst.CommandElements | ForEach-Object { $_.ToString() })\n")
	b.WriteString("    $commands = [ordered]@{\n")
	for _, c := range cmds {
		fmt.Fprintf(b, "        %s = %s\n", psQuote(c.Name), psQuote(c.Desc))
	}
	b.WriteString("    }\n\n")
	b.WriteString("    if ($words.Count -lt 2 -or ($words.Count -eq 2 -and $wordToComplete -ne '')) {\n")
	b.WriteString("        $commands.GetEnumerator() | Where-Object { $_.Key -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_.Key, $_.Key, 'ParameterValue', $_.Value)\n")
	b.WriteString("        }\n")
	b.WriteString("        return\n")
	b.WriteString("    }\n\n")
	b.WriteString("    $prev = if ($wordToComplete -ne '') { $words[-2] } else { $words[-1] }\n")
	b.WriteString("    $candidates = switch ($words[1]) {\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 && c.Args == argNone {
			continue
		}
		fmt.Fprintf(b, "        %s {\n", psQuote(c.Name))
		keyword := "if"
		branch := func(cond, value string) {
			fmt.Fprintf(b, "            %s (%s) { %s }\n", keyword, cond, value)
			keyword = "elseif"
		}
		for _, fd := range c.Flags {
			if fd.Type == flagEnum && fd.takesValue() {
				branch("$prev -in "+psList(strings.Split(spellings(fd), "|")), psList(fd.Values))
			}
		}
		if len(c.Flags) > 0 {
			branch("$wordToComplete -like '-*'", psList(flagWords(c.Flags)))
		}
		var args string
		switch c.Args {
		case argAssets:
			args = "@(imgresolve list -q 2>$null | ForEach-Object { ($_ -split '\\s+')[0] })"
		case argCommands:
			args = psList(commandNames(cmds))
		case argShells:
			args = psList(shells)
		}
		if args != "" {
			if keyword == "if" {
				fmt.Fprintf(b, "            %s\n", args)
			} else {
				fmt.Fprintf(b, "            else { %s }\n", args)
			}
		}
		b.WriteString("        }\n")
	}
	b.WriteString("    }\n\n")
	b.WriteString("    $candidates | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")
}
