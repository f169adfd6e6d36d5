// Package frontmatter prepends a YAML header to Markdown documents.
package frontmatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-html2md/internal/yamlutil"
)

// ErrEmptyKey indicates a field without a key.
var ErrEmptyKey = errors.New("front matter key cannot be empty")

const fence = "---"

// Field is one front matter entry. Order is preserved in the output.
type Field struct {
	Key   string
	Value any
}

// Build renders fields as a YAML block followed by body:
//
//	---
//	key: value
//	---
//
//	body
//
// Fields with empty values are skipped. With no remaining fields, body is
// returned unchanged.
func Build(fields []Field, body string) (string, error) {
	items := make(yamlutil.MapSlice, 0, len(fields))
	for _, f := range fields {
		if strings.TrimSpace(f.Key) == "" {
			return "", ErrEmptyKey
		}
		if isEmpty(f.Value) {
			continue
		}
		items = append(items, yamlutil.MapItem{Key: f.Key, Value: f.Value})
	}
	if len(items) == 0 {
		return body, nil
	}

	data, err := yamlutil.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encoding front matter: %w", err)
	}

	var b strings.Builder
	b.Grow(len(data) + len(body) + 16)
	b.WriteString(fence + "\n")
	b.Write(data)
	if len(data) > 0 && data[len(data)-1] != '\n' {
		b.WriteByte('\n')
	}
	b.WriteString(fence + "\n")
	if body != "" {
		b.WriteString("\n" + body)
	}
	return b.String(), nil
}

// isEmpty reports nil, blank strings and empty string lists.
func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []string:
		return len(t) == 0
	}
	return false
}
