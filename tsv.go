package html2md

import "strings"

var tsvEscaper = strings.NewReplacer(`\`, `\\`, "\t", `\t`, "\r\n", `\n`, "\n", `\n`, "\r", `\n`)

// TableToTSV exports the first table at or below n as tab-separated values.
// A row or row group with no table below it exports its own rows.
// Cells are the trimmed text content of td and th elements; tabs, line breaks
// and backslashes inside cells are escaped. Rows of nested tables are skipped.
func TableToTSV(n *Node) (string, error) {
	trs, ok := rowsOf(n)
	if !ok {
		return "", ErrNoTable
	}

	var rows []string
	for _, tr := range trs {
		var cells []string
		for _, c := range tr.Children {
			if c.IsElement("td", "th") {
				cells = append(cells, tsvEscaper.Replace(strings.TrimSpace(c.TextContent())))
			}
		}
		rows = append(rows, strings.Join(cells, "\t"))
	}
	return strings.Join(rows, "\n"), nil
}

func rowsOf(n *Node) ([]*Node, bool) {
	if table := n.Find("table"); table != nil {
		return tableRows(table), true
	}
	switch {
	case n.IsElement("tr"):
		return []*Node{n}, true
	case n.IsElement("thead", "tbody", "tfoot"):
		return tableRows(n), true
	}
	return nil, false
}

// tableRows returns the tr elements owned by table, in document order.
func tableRows(table *Node) []*Node {
	var rows []*Node
	var visit func(*Node)
	visit = func(n *Node) {
		for _, c := range n.Children {
			switch {
			case c.IsElement("tr"):
				rows = append(rows, c)
			case c.IsElement("table"):
				// nested table
			case c.Kind == KindElement:
				visit(c)
			}
		}
	}
	visit(table)
	return rows
}
