package schema

import "strings"

// SplitRepo splits an "owner/name" slug into its halves. It reports false for
// anything that is not exactly two non-empty segments.
func SplitRepo(repo string) (string, string, bool) {
	trimmed := strings.TrimSpace(repo)
	owner, name, found := strings.Cut(trimmed, "/")
	if !found {
		return "", "", false
	}

	owner = strings.TrimSpace(owner)
	name = strings.TrimSpace(name)
	if owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", false
	}
	return owner, name, true
}

// ShortRepoName returns just the name half of an "owner/name" slug, falling
// back to the input when it does not split.
func ShortRepoName(repo string) string {
	if _, name, ok := SplitRepo(repo); ok {
		return name
	}
	return strings.TrimSpace(repo)
}

// ParseList splits a comma-separated value into trimmed entries, dropping
// empties and duplicates while keeping first-seen order.
func ParseList(value string) []string {
	var out []string
	seen := make(map[string]struct{})
	for part := range strings.SplitSeq(value, ",") {
		entry := strings.TrimSpace(part)
		if entry == "" {
			continue
		}
		if _, ok := seen[entry]; ok {
			continue
		}
		seen[entry] = struct{}{}
		out = append(out, entry)
	}
	return out
}
