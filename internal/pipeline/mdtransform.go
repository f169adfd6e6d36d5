package pipeline

import (
	"regexp"
	"strings"
)

// frontMatterFence opens and closes a YAML front matter block.
const frontMatterFence = "---"

var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Three or more newlines collapse to one blank line
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
)

// SplitFrontMatter separates a leading YAML front matter block from the body.
// The block must start on the first line with "---" and end with a line
// holding only "---". Without a closed block, front is empty and body is
// the whole input.
func SplitFrontMatter(markdown string) (front, body string) {
	content := normalizeLineEndings(markdown)
	if !strings.HasPrefix(content, frontMatterFence+"\n") {
		return "", markdown
	}

	rest := content[len(frontMatterFence)+1:]
	if strings.HasPrefix(rest, frontMatterFence+"\n") || rest == frontMatterFence {
		return "", strings.TrimPrefix(strings.TrimPrefix(rest, frontMatterFence), "\n")
	}
	end := strings.Index(rest, "\n"+frontMatterFence+"\n")
	if end == -1 {
		if strings.HasSuffix(rest, "\n"+frontMatterFence) {
			return rest[:len(rest)-len(frontMatterFence)-1], ""
		}
		return "", markdown
	}
	return rest[:end], rest[end+len(frontMatterFence)+2:]
}

// PreparePreview normalizes line endings and compresses blank-line runs.
func PreparePreview(markdown string) string {
	content := normalizeLineEndings(markdown)
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}
