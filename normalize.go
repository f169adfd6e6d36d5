package html2md

import "strings"

// Normalize tidies concatenated renderer output.
//
// Blank lines hold only whitespace, or only quote markers that repeat the
// quote indent of the nearest differing line around them. A line such as ">"
// between plain paragraphs is text. Leading and trailing blank lines are
// removed, and every run of blank lines between content collapses to one
// line: the run's common indentation with trailing whitespace removed. Inside
// a quote that leaves a single ">" line; elsewhere an empty one. The result is
// whitespace-trimmed.
func Normalize(text string) string {
	lines := strings.Split(text, "\n")
	blank := blankLines(lines)
	out := make([]string, 0, len(lines))
	var run []string

	for i, line := range lines {
		if blank[i] {
			run = append(run, line)
			continue
		}
		if len(run) > 0 && len(out) > 0 {
			out = append(out, strings.TrimRight(commonPrefix(run), " \t"))
		}
		run = run[:0]
		out = append(out, line)
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}

// blankLines flags the blank lines of a split text.
func blankLines(lines []string) []bool {
	blank := make([]bool, len(lines))
	for i, line := range lines {
		trimmed := strings.TrimRight(line, " \t")
		switch {
		case trimmed == "":
			blank[i] = true
		case strings.Trim(trimmed, " \t>") == "":
			blank[i] = continuesQuote(lines, i, trimmed, -1) || continuesQuote(lines, i, trimmed, 1)
		}
	}
	return blank
}

// continuesQuote reports whether markers prefixes the quote indent of the
// nearest non-empty line in direction step that differs from it.
func continuesQuote(lines []string, i int, markers string, step int) bool {
	for j := i + step; j >= 0 && j < len(lines); j += step {
		other := strings.TrimRight(lines[j], " \t")
		if other == "" || other == markers {
			continue
		}
		return strings.HasPrefix(leadingMarkers(lines[j]), markers)
	}
	return false
}

func leadingMarkers(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t>"))]
}

func commonPrefix(lines []string) string {
	prefix := lines[0]
	for _, line := range lines[1:] {
		n := 0
		for n < len(prefix) && n < len(line) && prefix[n] == line[n] {
			n++
		}
		prefix = prefix[:n]
	}
	return prefix
}

// trimLeadingBlankLines drops blank lines ahead of the first content line.
// The last line is always kept.
func trimLeadingBlankLines(text string) string {
	lines := strings.Split(text, "\n")
	blank := blankLines(lines)
	i := 0
	for i < len(lines)-1 && blank[i] {
		i++
	}
	return strings.Join(lines[i:], "\n")
}
