// Package eventfilter decides which events of a calendar page are visible
// for a category selection and a search text.
//
// The page script and the feed export share these rules:
//
//	visible := eventfilter.Visible(eventfilter.NewSelection(selected), search, record)
package eventfilter

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// All is the selection value that matches every category.
const All = "all"

type Record struct {
	Category string
	Text     string
}

type Selection struct {
	values   map[string]struct{}
	wildcard bool
}

func NewSelection(values []string) Selection {
	sel := Selection{
		values:   make(map[string]struct{}, len(values)),
		wildcard: len(values) == 0,
	}

	for _, value := range values {
		value = lower(value)
		if value == All {
			sel.wildcard = true
		}
		sel.values[value] = struct{}{}
	}

	return sel
}

// Matches reports whether an event with the given category passes the
// category part of the filter. A missing category is the empty string.
func (sel Selection) Matches(category string) bool {
	if sel.wildcard {
		return true
	}

	_, ok := sel.values[lower(category)]
	return ok
}

// TextMatches reports whether search occurs in text, ignoring case.
func TextMatches(text string, search string) bool {
	return strings.Contains(lower(text), lower(search))
}

func Visible(sel Selection, search string, record Record) bool {
	return sel.Matches(record.Category) && TextMatches(record.Text, search)
}

// Filter returns the visibility of every record, in order.
func Filter(selected []string, search string, records []Record) []bool {
	sel := NewSelection(selected)

	visible := make([]bool, len(records))
	for i, record := range records {
		visible[i] = Visible(sel, search, record)
	}

	return visible
}

// Apply returns the items that are visible, keeping their order.
func Apply[T any](
	selected []string,
	search string,
	items []T,
	toRecord func(T) Record,
) []T {
	sel := NewSelection(selected)

	result := make([]T, 0, len(items))
	for _, item := range items {
		if Visible(sel, search, toRecord(item)) {
			result = append(result, item)
		}
	}

	return result
}

func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
