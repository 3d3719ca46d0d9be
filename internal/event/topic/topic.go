// Package topic names event kinds with dot-separated hierarchical topics and
// matches them against subscription patterns.
package topic

import "strings"

// Topic is a hierarchical event type using dot notation, such as
// "field.edited" or "field.selection.changed".
type Topic string

// Wildcard segments usable in patterns.
const (
	// WildcardSingle matches exactly one segment.
	WildcardSingle = "*"

	// WildcardMulti matches zero or more segments.
	WildcardMulti = "**"

	// Separator separates topic segments.
	Separator = "."
)

func (t Topic) String() string {
	return string(t)
}

// Segments returns the topic split by the separator.
func (t Topic) Segments() []string {
	if t == "" {
		return nil
	}
	return strings.Split(string(t), Separator)
}

// Parent returns the topic without its last segment, or "" at the top.
//
// Example: "field.selection.changed" -> "field.selection"
func (t Topic) Parent() Topic {
	idx := strings.LastIndex(string(t), Separator)
	if idx < 0 {
		return ""
	}
	return t[:idx]
}

// Child appends a segment.
func (t Topic) Child(segment string) Topic {
	if t == "" {
		return Topic(segment)
	}
	return t + Separator + Topic(segment)
}

// IsWildcard reports whether the topic contains a wildcard segment.
func (t Topic) IsWildcard() bool {
	return strings.Contains(string(t), WildcardSingle)
}

// IsValid reports whether the topic is non-empty and has no empty segments.
func (t Topic) IsValid() bool {
	if t == "" {
		return false
	}
	for _, seg := range t.Segments() {
		if seg == "" {
			return false
		}
	}
	return true
}

// Matches reports whether t matches pattern. In the pattern "*" matches
// exactly one segment and "**" matches zero or more.
func (t Topic) Matches(pattern Topic) bool {
	return matchSegments(t.Segments(), pattern.Segments())
}

func matchSegments(topic, pattern []string) bool {
	ti, pi := 0, 0
	for pi < len(pattern) {
		if pattern[pi] == WildcardMulti {
			for ; ti <= len(topic); ti++ {
				if matchSegments(topic[ti:], pattern[pi+1:]) {
					return true
				}
			}
			return false
		}
		if ti >= len(topic) {
			return false
		}
		if pattern[pi] != WildcardSingle && pattern[pi] != topic[ti] {
			return false
		}
		ti++
		pi++
	}
	return ti == len(topic)
}

// Join joins segments into a topic.
func Join(segments ...string) Topic {
	return Topic(strings.Join(segments, Separator))
}
