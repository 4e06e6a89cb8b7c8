package extract

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Tags recognised inside event cells, in output order.
//
//nolint:gochecknoglobals //lookup table
var Tags = []string{"B1", "B2", "B3", "B4", "S1", "S2"}

//nolint:gochecknoglobals //compiled once
var (
	datePattern = regexp.MustCompile(
		`(?i)^\s*(\d{1,2})\s*[-‐‑—–./]?\s*(ene|feb|mar|abr|may|jun|jul|ago|sep|set|sept|oct|nov|dic)\.?\s*$`,
	)
	whitespace = regexp.MustCompile(`\s+`)
	bullets    = regexp.MustCompile(`[\n•]+`)
)

// Table is a grid of cell texts. The first row holds headers and the
// first column holds week labels; both are skipped.
type Table [][]string

type Item struct {
	Date  string   `json:"date"`
	Text  string   `json:"event"`
	Table int      `json:"table"`
	Tags  []string `json:"tags"`
}

func (t Table) cols() int {
	cols := 0
	for _, row := range t {
		cols = max(cols, len(row))
	}
	return cols
}

func (t Table) cell(r int, c int) string {
	if c >= len(t[r]) {
		return ""
	}
	return CleanText(t[r][c])
}

// CleanText collapses whitespace runs into single spaces. Placeholder
// values left behind by table exporters become empty.
func CleanText(text string) string {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "nan", "none":
		return ""
	}

	text = norm.NFKC.String(text)
	return strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
}

func IsDateCell(text string) bool {
	s := strings.TrimSpace(text)
	if s == "" {
		return false
	}

	switch strings.ToLower(s) {
	case "nan", "none":
		return false
	}

	return datePattern.MatchString(s)
}

// Extract walks every column of every table top to bottom. Each date
// cell owns the non-empty cells below it, up to the next date cell or
// the first blank cell after something was collected.
func Extract(tables []Table) []Item {
	items := []Item{}

	for tIdx, table := range tables {
		rows := len(table)
		cols := table.cols()

		for c := 1; c < cols; c++ {
			r := 1
			for r < rows {
				date := table.cell(r, c)
				if !IsDateCell(date) {
					r++
					continue
				}

				k := r + 1
				collected := 0
				for k < rows {
					below := table.cell(k, c)
					if IsDateCell(below) {
						break
					}

					if below == "" {
						if collected > 0 {
							break
						}
						k++
						continue
					}

					tags := tagsIn(below)
					for _, part := range bullets.Split(below, -1) {
						part = CleanText(part)
						if part == "" {
							continue
						}

						items = append(items, Item{
							Date:  date,
							Text:  part,
							Table: tIdx,
							Tags:  tags,
						})
						collected++
					}

					k++
				}

				r = k
			}
		}
	}

	return items
}

func tagsIn(text string) []string {
	tags := []string{}
	for _, tag := range Tags {
		if strings.Contains(text, tag) {
			tags = append(tags, tag)
		}
	}
	return tags
}
