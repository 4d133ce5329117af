package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"znkr.io/diffkit/diff"
)

// FileStat is the number of added and deleted lines of one file.
type FileStat struct {
	Name    string
	Added   int
	Deleted int
}

// Stats returns the statistics of d for a file called name.
func Stats(name string, d *diff.Diff) FileStat {
	return FileStat{Name: name, Added: d.CountAdded(), Deleted: d.CountDeleted()}
}

var widthCond = func() *runewidth.Condition {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = false
	cond.StrictEmojiNeutral = true
	return cond
}()

// Diffstat renders stats like git diff --stat: one line per file with the number of changed lines
// and a bar of + and - scaled to fit into width columns, followed by a summary line.
func Diffstat(stats []FileStat, width int) string {
	if len(stats) == 0 {
		return ""
	}

	nameWidth, maxChanges, added, deleted := 0, 0, 0, 0
	for _, s := range stats {
		nameWidth = max(nameWidth, widthCond.StringWidth(s.Name))
		maxChanges = max(maxChanges, s.Added+s.Deleted)
		added += s.Added
		deleted += s.Deleted
	}
	countWidth := len(strconv.Itoa(maxChanges))

	// Names get at most half of the width, the bar at least 10 columns.
	nameWidth = min(nameWidth, max(width/2, 10))
	barWidth := max(width-nameWidth-countWidth-4, 10)

	var sb strings.Builder
	for _, s := range stats {
		name := truncateLeft(s.Name, nameWidth)
		plus, minus := s.Added, s.Deleted
		if maxChanges > barWidth {
			plus, minus = scale(plus, maxChanges, barWidth), scale(minus, maxChanges, barWidth)
		}
		fmt.Fprintf(&sb, " %s | %*d %s%s\n",
			widthCond.FillRight(name, nameWidth),
			countWidth, s.Added+s.Deleted,
			strings.Repeat("+", plus),
			strings.Repeat("-", minus))
	}

	fmt.Fprintf(&sb, " %d %s changed", len(stats), plural(len(stats), "file", "files"))
	if added > 0 {
		fmt.Fprintf(&sb, ", %d %s(+)", added, plural(added, "insertion", "insertions"))
	}
	if deleted > 0 {
		fmt.Fprintf(&sb, ", %d %s(-)", deleted, plural(deleted, "deletion", "deletions"))
	}
	sb.WriteByte('\n')
	return sb.String()
}

// scale maps n from [0, total] to [0, width], any non-zero n gets at least one column.
func scale(n, total, width int) int {
	if n == 0 {
		return 0
	}
	return 1 + n*(width-1)/total
}

// truncateLeft shortens s to at most w columns by replacing its beginning with "...".
func truncateLeft(s string, w int) string {
	if widthCond.StringWidth(s) <= w {
		return s
	}
	runes := []rune(s)
	n := 3
	i := len(runes)
	for i > 0 && n+widthCond.RuneWidth(runes[i-1]) <= w {
		i--
		n += widthCond.RuneWidth(runes[i])
	}
	return "..." + string(runes[i:])
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
