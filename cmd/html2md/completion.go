package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-html2md/internal/assets"
	"github.com/alnah/go-html2md/internal/pipeline"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

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
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	Args        []string // fixed positional values
	TakesFiles  bool     // accepts file arguments
	FilePattern string   // glob for file arguments (e.g., "*.html")
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSets.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"style":      {Values: assets.StyleNames()},
	"theme":      {Values: pipeline.TerminalThemes},
	"config":     {FileGlob: "*.yaml,*.yml"},
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
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
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
			Name:        "convert",
			Desc:        "Convert HTML files to Markdown",
			Flags:       extractFlagsFromFlagSet(newConvertFlagSet(&convertFlags{})),
			TakesFiles:  true,
			FilePattern: "*.html,*.htm,*.xhtml",
		},
		{
			Name:  "fetch",
			Desc:  "Load web pages and convert them",
			Flags: extractFlagsFromFlagSet(newFetchFlagSet(&fetchFlags{})),
		},
		{
			Name:  "pick",
			Desc:  "Click an element on a page and convert it",
			Flags: extractFlagsFromFlagSet(newPickFlagSet(&pickFlags{})),
		},
		{
			Name:        "table",
			Desc:        "Export an HTML table as TSV",
			Flags:       extractFlagsFromFlagSet(newTableFlagSet(&tableFlags{})),
			TakesFiles:  true,
			FilePattern: "*.html,*.htm,*.xhtml",
		},
		{
			Name:        "preview",
			Desc:        "Render Markdown as a styled HTML page",
			Flags:       extractFlagsFromFlagSet(newPreviewFlagSet(&previewFlags{})),
			TakesFiles:  true,
			FilePattern: "*.md,*.markdown,*.html,*.htm",
		},
		{
			Name:  "doctor",
			Desc:  "Check Chrome, clipboard and environment",
			Flags: []flagDef{{Long: "json", Type: flagBool, Desc: "machine-readable output"}},
		},
		{
			Name: "completion",
			Desc: "Generate shell completion script",
			Args: []string{string(ShellBash), string(ShellZsh), string(ShellFish)},
		},
		{Name: "version", Desc: "Show version information"},
		{
			Name: "help",
			Desc: "Show help for a command",
			Args: []string{"convert", "fetch", "pick", "table", "preview", "doctor", "completion", "version"},
		},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	bw := bufio.NewWriter(w)
	switch shell {
	case ShellBash:
		generateBash(bw, getCommands())
	case ShellZsh:
		generateZsh(bw, getCommands())
	case ShellFish:
		generateFish(bw, getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
	return bw.Flush()
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
	fmt.Fprintln(w, "Usage: html2md completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(html2md completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(html2md completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    html2md completion fish > ~/.config/fish/completions/html2md.fish")
}

// globExtensions turns "*.yaml,*.yml" into ["yaml", "yml"].
func globExtensions(glob string) []string {
	var exts []string
	for _, g := range strings.Split(glob, ",") {
		if ext := strings.TrimPrefix(strings.TrimSpace(g), "*."); ext != "" {
			exts = append(exts, ext)
		}
	}
	return exts
}

func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func generateBash(w io.Writer, cmds []commandDef) {
	fmt.Fprintln(w, "# bash completion for html2md")
	fmt.Fprintln(w, "_html2md() {")
	fmt.Fprintln(w, "    local cur prev cmd")
	fmt.Fprintln(w, "    COMPREPLY=()")
	fmt.Fprintln(w, `    cur="${COMP_WORDS[COMP_CWORD]}"`)
	fmt.Fprintln(w, `    prev="${COMP_WORDS[COMP_CWORD-1]}"`)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    if [[ ${COMP_CWORD} -eq 1 ]]; then")
	fmt.Fprintf(w, "        COMPREPLY=( $(compgen -W %q -- \"$cur\") )\n", strings.Join(commandNames(cmds), " "))
	fmt.Fprintln(w, "        return 0")
	fmt.Fprintln(w, "    fi")
	fmt.Fprintln(w)
	fmt.Fprintln(w, `    cmd="${COMP_WORDS[1]}"`)
	fmt.Fprintln(w, `    case "$cmd" in`)
	for _, c := range cmds {
		fmt.Fprintf(w, "        %s)\n", c.Name)
		writeBashFlagValues(w, c.Flags)

		var words []string
		for _, f := range c.Flags {
			words = append(words, "--"+f.Long)
			if f.Short != "" {
				words = append(words, "-"+f.Short)
			}
		}
		if len(words) > 0 {
			fmt.Fprintln(w, `            if [[ "$cur" == -* ]]; then`)
			fmt.Fprintf(w, "                COMPREPLY=( $(compgen -W %q -- \"$cur\") )\n", strings.Join(words, " "))
			fmt.Fprintln(w, "                return 0")
			fmt.Fprintln(w, "            fi")
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(w, "            COMPREPLY=( $(compgen -W %q -- \"$cur\") )\n", strings.Join(c.Args, " "))
		case c.TakesFiles:
			fmt.Fprintf(w, "            COMPREPLY=( $(compgen -f -X '!*.@(%s)' -- \"$cur\") )\n", strings.Join(globExtensions(c.FilePattern), "|"))
		}
		fmt.Fprintln(w, "            ;;")
	}
	fmt.Fprintln(w, "    esac")
	fmt.Fprintln(w, "}")
	fmt.Fprintln(w, "complete -o filenames -o bashdefault -F _html2md html2md")
}

// writeBashFlagValues completes the value of the flag just typed.
func writeBashFlagValues(w io.Writer, flags []flagDef) {
	var cases []string
	for _, f := range flags {
		names := "--" + f.Long
		if f.Short != "" {
			names += "|-" + f.Short
		}
		switch f.Type {
		case flagEnum:
			cases = append(cases, fmt.Sprintf("%s) COMPREPLY=( $(compgen -W %q -- \"$cur\") ); return 0 ;;", names, strings.Join(f.Values, " ")))
		case flagFile:
			cases = append(cases, fmt.Sprintf("%s) COMPREPLY=( $(compgen -f -X '!*.@(%s)' -- \"$cur\") ); return 0 ;;", names, strings.Join(globExtensions(f.FileGlob), "|")))
		case flagDir:
			cases = append(cases, fmt.Sprintf("%s) COMPREPLY=( $(compgen -d -- \"$cur\") ); return 0 ;;", names))
		}
	}
	if len(cases) == 0 {
		return
	}
	fmt.Fprintln(w, `            case "$prev" in`)
	for _, c := range cases {
		fmt.Fprintf(w, "                %s\n", c)
	}
	fmt.Fprintln(w, "            esac")
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

var (
	zshCommandEscaper = strings.NewReplacer(`'`, `'\''`, `:`, `\:`)
	zshFlagEscaper    = strings.NewReplacer(`'`, `'\''`, `[`, `\[`, `]`, `\]`)
)

func generateZsh(w io.Writer, cmds []commandDef) {
	fmt.Fprintln(w, "#compdef html2md")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "_html2md() {")
	fmt.Fprintln(w, "    local -a commands")
	fmt.Fprintln(w, "    commands=(")
	for _, c := range cmds {
		fmt.Fprintf(w, "        '%s:%s'\n", c.Name, zshCommandEscaper.Replace(c.Desc))
	}
	fmt.Fprintln(w, "    )")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    if (( CURRENT == 2 )); then")
	fmt.Fprintln(w, "        _describe 'command' commands")
	fmt.Fprintln(w, "        return")
	fmt.Fprintln(w, "    fi")
	fmt.Fprintln(w)
	fmt.Fprintln(w, `    case "$words[2]" in`)
	for _, c := range cmds {
		fmt.Fprintf(w, "        %s)\n", c.Name)
		fmt.Fprintln(w, "            _arguments \\")
		for _, f := range c.Flags {
			fmt.Fprintf(w, "                %s \\\n", zshFlagSpec(f))
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(w, "                '1:argument:(%s)'\n", strings.Join(c.Args, " "))
		case c.TakesFiles:
			fmt.Fprintf(w, "                '*:file:_files -g \"*.(%s)\"'\n", strings.Join(globExtensions(c.FilePattern), "|"))
		default:
			fmt.Fprintln(w, "                '*:argument:'")
		}
		fmt.Fprintln(w, "            ;;")
	}
	fmt.Fprintln(w, "    esac")
	fmt.Fprintln(w, "}")
	fmt.Fprintln(w)
	fmt.Fprintln(w, `_html2md "$@"`)
}

// zshFlagSpec renders one _arguments spec.
func zshFlagSpec(f flagDef) string {
	action := ""
	switch f.Type {
	case flagBool:
	case flagEnum:
		action = fmt.Sprintf(":%s:(%s)", f.Long, strings.Join(f.Values, " "))
	case flagFile:
		action = fmt.Sprintf(`:file:_files -g "*.(%s)"`, strings.Join(globExtensions(f.FileGlob), "|"))
	case flagDir:
		action = ":directory:_files -/"
	default:
		action = ":" + f.Long + ":"
	}

	desc := zshFlagEscaper.Replace(f.Desc)
	if f.Short == "" {
		return fmt.Sprintf("'--%s[%s]%s'", f.Long, desc, action)
	}
	return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, desc, action)
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

var fishEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func generateFish(w io.Writer, cmds []commandDef) {
	fmt.Fprintln(w, "# fish completion for html2md")
	fmt.Fprintln(w, "complete -c html2md -f")
	for _, c := range cmds {
		fmt.Fprintf(w, "complete -c html2md -n __fish_use_subcommand -a %s -d '%s'\n", c.Name, fishEscaper.Replace(c.Desc))
	}
	for _, c := range cmds {
		cond := fmt.Sprintf("'__fish_seen_subcommand_from %s'", c.Name)
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c html2md -n %s -l %s", cond, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch f.Type {
			case flagBool:
			case flagEnum:
				line += fmt.Sprintf(" -x -a '%s'", strings.Join(f.Values, " "))
			case flagFile:
				line += " -r -F"
			case flagDir:
				line += " -x -a '(__fish_complete_directories)'"
			default:
				line += " -r"
			}
			fmt.Fprintf(w, "%s -d '%s'\n", line, fishEscaper.Replace(f.Desc))
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(w, "complete -c html2md -n %s -a '%s'\n", cond, strings.Join(c.Args, " "))
		case c.TakesFiles:
			fmt.Fprintf(w, "complete -c html2md -n %s -F\n", cond)
		}
	}
}
