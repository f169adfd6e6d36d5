// Package scrape pulls job-posting metadata out of parsed pages.
//
// Structured data comes from JSON-LD script blocks; salary and title have
// text fallbacks for pages that publish none.
package scrape

import (
	"encoding/json"
	"strconv"
	"strings"

	html2md "github.com/alnah/go-html2md"
)

// jobPostingType is the schema.org type looked for in JSON-LD blocks.
const jobPostingType = "JobPosting"

// Posting is the metadata recovered from a job page. Missing fields are empty.
type Posting struct {
	Title          string
	Company        string
	DatePosted     string
	ValidThrough   string
	Location       string
	EmploymentType string
	Salary         string
}

// IsZero reports whether no field was found.
func (p Posting) IsZero() bool {
	return p == Posting{}
}

// JobPosting extracts posting metadata from the JSON-LD blocks under root.
// The first JobPosting object wins; when none is typed as such, the first
// parseable object is used, so bare datePosted markup still yields a date.
// Blocks that fail to parse are skipped.
func JobPosting(root *html2md.Node) (Posting, bool) {
	objects := ldObjects(root)
	if len(objects) == 0 {
		return Posting{}, false
	}

	chosen := objects[0]
	for _, obj := range objects {
		if hasType(obj, jobPostingType) {
			chosen = obj
			break
		}
	}

	p := Posting{
		Title:          str(chosen["title"]),
		Company:        organization(chosen["hiringOrganization"]),
		DatePosted:     str(chosen["datePosted"]),
		ValidThrough:   str(chosen["validThrough"]),
		Location:       location(chosen["jobLocation"]),
		EmploymentType: joinStrings(chosen["employmentType"]),
		Salary:         salary(chosen["baseSalary"]),
	}
	if p.Location == "" && str(chosen["jobLocationType"]) == "TELECOMMUTE" {
		p.Location = "Remote"
	}
	return p, !p.IsZero()
}

// ldObjects parses every ld+json script and flattens arrays and @graph
// containers into a list of objects, in document order.
func ldObjects(root *html2md.Node) []map[string]any {
	var out []map[string]any
	for _, script := range root.FindAll("script") {
		if !strings.EqualFold(strings.TrimSpace(script.AttrOr("type", "")), "application/ld+json") {
			continue
		}
		var v any
		if err := json.Unmarshal([]byte(script.TextContent()), &v); err != nil {
			continue
		}
		out = appendObjects(out, v)
	}
	return out
}

func appendObjects(out []map[string]any, v any) []map[string]any {
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			out = appendObjects(out, item)
		}
	case map[string]any:
		if graph, ok := t["@graph"]; ok {
			return appendObjects(out, graph)
		}
		out = append(out, t)
	}
	return out
}

// hasType matches @type given as a string or a list of strings.
func hasType(obj map[string]any, want string) bool {
	switch t := obj["@type"].(type) {
	case string:
		return t == want
	case []any:
		for _, v := range t {
			if s, ok := v.(string); ok && s == want {
				return true
			}
		}
	}
	return false
}

// str renders scalars; objects and lists yield "".
func str(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

func joinStrings(v any) string {
	if list, ok := v.([]any); ok {
		parts := make([]string, 0, len(list))
		for _, item := range list {
			if s := str(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	}
	return str(v)
}

// organization reads hiringOrganization as a name string or an Organization object.
func organization(v any) string {
	if obj, ok := v.(map[string]any); ok {
		return str(obj["name"])
	}
	return str(v)
}

// location joins the locality, region and country of each Place.
func location(v any) string {
	var places []string
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if s := place(item); s != "" {
				places = append(places, s)
			}
		}
	default:
		if s := place(t); s != "" {
			places = append(places, s)
		}
	}
	return strings.Join(places, "; ")
}

func place(v any) string {
	obj, ok := v.(map[string]any)
	if !ok {
		return str(v)
	}
	addr, ok := obj["address"].(map[string]any)
	if !ok {
		if s := str(obj["address"]); s != "" {
			return s
		}
		return str(obj["name"])
	}

	var parts []string
	for _, key := range []string{"addressLocality", "addressRegion", "addressCountry"} {
		s := str(addr[key])
		if key == "addressCountry" && s == "" {
			s = organization(addr[key])
		}
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// salary formats a MonetaryAmount as "USD 120000-150000/YEAR".
func salary(v any) string {
	obj, ok := v.(map[string]any)
	if !ok {
		return str(v)
	}

	currency := str(obj["currency"])
	amount, unit := "", ""
	switch value := obj["value"].(type) {
	case map[string]any:
		unit = str(value["unitText"])
		lo, hi := str(value["minValue"]), str(value["maxValue"])
		switch {
		case lo != "" && hi != "" && lo != hi:
			amount = lo + "-" + hi
		case lo != "":
			amount = lo
		case hi != "":
			amount = hi
		default:
			amount = str(value["value"])
		}
	default:
		amount = str(value)
	}
	if unit == "" {
		unit = str(obj["unitText"])
	}
	if amount == "" {
		return ""
	}

	out := amount
	if currency != "" {
		out = currency + " " + out
	}
	if unit != "" {
		out += "/" + unit
	}
	return out
}
