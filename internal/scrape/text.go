package scrape

import (
	"regexp"
	"strings"

	html2md "github.com/alnah/go-html2md"
)

// salaryPattern matches a currency amount, optionally followed by a second
// amount after a dash or "to": "$120,000 - $150,000", "$60k–$80k", "€45.000".
// A thousands suffix must end its word, so "$5 Kubernetes" is "$5".
var salaryPattern = regexp.MustCompile(
	`[$€£]\s?\d[\d,.]*(?:\s?[kK]\b)?(?:\s*(?:-|–|—|to)\s*[$€£]?\s?\d[\d,.]*(?:\s?[kK]\b)?)?`,
)

// Salary returns the first salary-looking amount or range in text.
func Salary(text string) string {
	return strings.TrimRight(strings.TrimSpace(salaryPattern.FindString(text)), ",.")
}

// Title returns the page title: og:title, then <title>, then the first <h1>.
func Title(root *html2md.Node) string {
	for _, meta := range root.FindAll("meta") {
		if meta.AttrOr("property", "") == "og:title" {
			if s := collapse(meta.AttrOr("content", "")); s != "" {
				return s
			}
		}
	}
	if s := collapse(root.Find("title").TextContent()); s != "" {
		return s
	}
	return collapse(root.Find("h1").TextContent())
}

// Lookup combines JobPosting with the text fallbacks. The title falls back
// to the page title and the salary to the first amount in visible text.
func Lookup(root *html2md.Node) Posting {
	p, _ := JobPosting(root)
	if p.Title == "" {
		p.Title = Title(root)
	}
	if p.Salary == "" {
		p.Salary = Salary(visibleText(root))
	}
	return p
}

// collapse trims s and folds internal whitespace runs to one space.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// visibleText concatenates text outside script, style and head.
func visibleText(n *html2md.Node) string {
	var b strings.Builder
	var walk func(*html2md.Node)
	walk = func(n *html2md.Node) {
		if n.IsElement("script", "style", "head", "template", "noscript") {
			return
		}
		if n.Kind == html2md.KindText {
			b.WriteString(n.Text)
			b.WriteByte(' ')
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
