package entities

import "strings"

const (
	changelogHeading = "# Changelog"
	h2Prefix         = "## ["
)

// changelogPreamble seeds CHANGELOG.md when the file does not exist yet.
const changelogPreamble = "# Changelog\n\n" +
	"All notable changes to this project will be documented in this file.\n\n"

// InsertReleaseSection inserts a "## [version] - date" section with the
// given notes into a Keep-a-Changelog formatted string.
//
// Behaviour:
//   - The new section lands right before the first existing "## [" heading,
//     keeping the file newest-first.
//   - If no version heading exists, the section is appended after the
//     "# Changelog" heading block.
//   - Empty content is seeded with the standard preamble first.
func InsertReleaseSection(content, version, date, notes string) string {
	if content == "" {
		content = changelogPreamble
	}

	section := []string{
		h2Prefix + version + "] - " + date,
		"",
		strings.TrimSpace(notes),
		"",
	}

	lines := strings.Split(content, "\n")

	if idx := findFirstH2Index(lines); idx >= 0 {
		return strings.Join(insertLines(lines, idx, section), "\n")
	}

	if idx := findHeadingIndex(lines); idx >= 0 {
		insertAt := skipBlockAfter(lines, idx)
		return strings.Join(insertLines(lines, insertAt, section), "\n")
	}

	// Unrecognizable structure: append at the end.
	lines = append(lines, "")
	lines = append(lines, section...)
	return strings.Join(lines, "\n")
}

// findFirstH2Index returns the line index of the first "## [" version
// heading, or -1 if none exists.
func findFirstH2Index(lines []string) int {
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), h2Prefix) {
			return i
		}
	}
	return -1
}

// findHeadingIndex returns the line index of the "# Changelog" heading,
// or -1 if not found.
func findHeadingIndex(lines []string) int {
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), changelogHeading) {
			return i
		}
	}
	return -1
}

// skipBlockAfter returns the index after the heading's introductory block:
// the heading line itself plus any immediately following prose and the blank
// line that closes it.
func skipBlockAfter(lines []string, headingIdx int) int {
	i := headingIdx + 1
	for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
		i++
	}
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	return i
}

// insertLines inserts extra lines into slice at the given index.
func insertLines(lines []string, at int, extra []string) []string {
	result := make([]string, 0, len(lines)+len(extra))
	result = append(result, lines[:at]...)
	result = append(result, extra...)
	result = append(result, lines[at:]...)
	return result
}
