// Package summary segments the structured narrative produced by the
// narrative-generator model into named sections. The generator is prompted to
// emit bold-markup headings ("**SYMPTOMS:**"); this parser is deliberately
// forgiving of the ways the model deviates from that convention — malformed
// markup never errors, worst case content lands under a fallback heading.
package summary

import "strings"

// FallbackTitle is used when a narrative contains no recognizable heading.
const FallbackTitle = "Summary"

type Section struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Sections is an ordered mapping from section title to body text. Titles are
// unique; when a heading repeats, later content replaces the earlier body but
// the section keeps its original position.
type Sections []Section

// Get returns the body stored under title.
func (s Sections) Get(title string) (string, bool) {
	for _, section := range s {
		if section.Title == title {
			return section.Body, true
		}
	}
	return "", false
}

func (s Sections) put(title, body string) Sections {
	for i, section := range s {
		if section.Title == title {
			s[i].Body = body
			return s
		}
	}
	return append(s, Section{Title: title, Body: body})
}

// Parse segments a narrative into sections. A line is a heading when it
// starts with "**" and ends with "**" or ":". Blank lines are dropped, and
// a narrative with no headings at all is stored whole under FallbackTitle.
func Parse(narrative string) Sections {
	var (
		sections Sections
		current  string
		buffer   []string
	)

	for _, line := range strings.Split(narrative, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if isHeading(line) {
			if current != "" {
				sections = sections.put(current, joinBody(buffer))
			}
			current = headingTitle(line)
			buffer = buffer[:0]
			continue
		}

		buffer = append(buffer, line)
	}

	if current != "" && len(buffer) > 0 {
		sections = sections.put(current, joinBody(buffer))
	} else if len(sections) == 0 && len(buffer) > 0 {
		sections = sections.put(FallbackTitle, joinBody(buffer))
	}

	return sections
}

func isHeading(line string) bool {
	return strings.HasPrefix(line, "**") &&
		(strings.HasSuffix(line, "**") || strings.HasSuffix(line, ":"))
}

// headingTitle strips all markup asterisks and colons from a heading line.
func headingTitle(line string) string {
	title := strings.ReplaceAll(line, "*", "")
	title = strings.ReplaceAll(title, ":", "")
	return strings.TrimSpace(title)
}

func joinBody(lines []string) string {
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
