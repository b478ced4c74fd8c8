package tablefilter

import (
	"slices"
	"strings"
	"time"

	"github.com/dmitrymomot/formkit/pkg/dom"
)

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp parses a row timestamp. Missing or unparsable values yield
// the zero time, which sorts before everything else.
func ParseTimestamp(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

// sortRows orders rows ascending by data-<attr> and moves them into that
// order inside their parent. Ties keep document order.
func sortRows(rows []*dom.Element, attr string) []*dom.Element {
	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b *dom.Element) int {
		return ParseTimestamp(a.Data(attr)).Compare(ParseTimestamp(b.Data(attr)))
	})
	for _, row := range sorted {
		if p := row.Parent(); p != nil {
			p.AppendChild(row)
		}
	}
	return sorted
}
