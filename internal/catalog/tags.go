package catalog

import "strings"

// Tags is an ordered list of cleaned tag tokens. Cleanup is enforced at
// construction; uniqueness is not.
type Tags []string

// ParseTags splits free text on whitespace and cleans every token.
// Tokens that clean down to nothing are dropped.
func ParseTags(text string) Tags {
	var tags Tags
	for _, field := range strings.Fields(text) {
		tag := CleanTag(field)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

// String joins the tags with single spaces, the stored representation
func (t Tags) String() string {
	return strings.Join(t, " ")
}

// param returns the value bound into SQL statements: NULL when empty
func (t Tags) param() any {
	if len(t) == 0 {
		return nil
	}
	return t.String()
}
