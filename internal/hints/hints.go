// Package hints appends actionable advice to CLI errors, formatted as
// "\n  hint: <text>".
package hints

import (
	"os"
	"runtime"
	"strings"

	"github.com/alnah/go-html2md/internal/fileutil"
)

// ciVars are set by the CI services whose runners lack a Chrome sandbox.
var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// InCI reports whether a CI service variable is set.
func InCI() bool {
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// DetectContainer reports whether the process runs in a container and the
// signal that gave it away. Replaced in tests.
var DetectContainer = func() (bool, string) {
	switch {
	case os.Getenv("HTML2MD_CONTAINER") == "1":
		return true, "HTML2MD_CONTAINER=1"
	case fileutil.FileExists("/.dockerenv"):
		return true, "/.dockerenv"
	case os.Getenv("container") != "": // podman, systemd-nspawn
		return true, "container=" + os.Getenv("container")
	case os.Getenv("KUBERNETES_SERVICE_HOST") != "":
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// ForBrowserConnect suggests the Chrome variables that are still unset,
// the sandbox one only where sandboxing usually fails.
func ForBrowserConnect() string {
	var hints []string

	inContainer, _ := DetectContainer()
	if (InCI() || inContainer) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN or --browser-bin to use an installed Chrome")
	}
	return formatHints(hints)
}

func ForTimeout() string {
	return format("for slow pages, use --timeout flag")
}

func ForSelectorNotFound(selector string) string {
	return format("no element matches " + selector + "; omit --selector to convert the whole page")
}

func ForNoTable() string {
	return format("use --selector to point at the element containing the table")
}

// ForClipboard names the tool to install for the current platform.
func ForClipboard() string {
	switch runtime.GOOS {
	case "darwin":
		return format("pbcopy should ship with macOS; check PATH")
	case "windows":
		return format("clip.exe should ship with Windows; check PATH")
	default:
		if os.Getenv("WAYLAND_DISPLAY") != "" {
			return format("install wl-clipboard, or set clipboard.command")
		}
		return format("install xclip or xsel, or set clipboard.command")
	}
}

// ForConfigNotFound suggests --config, and creating the user-level file
// when it is among searchedPaths.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(p, "go-html2md") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound lists the preview styles; empty without any.
func ForStyleNotFound(available []string) string {
	return formatList("available: ", available)
}

// ForUnknownStrategy lists the renderer names accepted in converter.renderers.
func ForUnknownStrategy(available []string) string {
	return formatList("renderers accept: ", available)
}

// ForUnknownTheme lists the preview --theme values.
func ForUnknownTheme(available []string) string {
	return formatList("themes: ", available)
}

func formatList(label string, items []string) string {
	if len(items) == 0 {
		return ""
	}
	return format(label + strings.Join(items, ", "))
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	return format(strings.Join(hints, "; "))
}
