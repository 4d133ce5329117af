package diff

import "strings"

// SplitLines splits text into lines. The newline characters are removed, a trailing newline
// doesn't start another line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// JoinLines is the inverse of [SplitLines], every line is terminated by a newline.
func JoinLines(lines []string) string {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// TrimNewlines returns a copy of lines with trailing carriage returns and newlines removed.
func TrimNewlines(lines []string) []string {
	if lines == nil {
		return nil
	}
	ret := make([]string, len(lines))
	for i, line := range lines {
		ret[i] = strings.TrimRight(line, "\r\n")
	}
	return ret
}
