package ids

import "strings"

// NormalizeUniqueIDs drops empty IDs and IDs that repeat case-insensitively,
// keeping the first spelling of each.
func NormalizeUniqueIDs(ids []string) []string {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		idLower := strings.ToLower(id)
		if idLower == "" || seen[idLower] {
			continue
		}
		seen[idLower] = true
		unique = append(unique, id)
	}
	return unique
}

// MatchPrefixNormalized finds the ID that starts with prefix, ignoring case.
// An exact match wins over longer IDs sharing the prefix. ids must already be
// normalized with NormalizeUniqueIDs.
func MatchPrefixNormalized(ids []string, prefix string) (match string, found bool, ambiguous bool) {
	prefixLower := strings.ToLower(prefix)
	if prefixLower == "" {
		return "", false, false
	}

	for _, id := range ids {
		if strings.ToLower(id) == prefixLower {
			return id, true, false
		}
	}

	for _, id := range ids {
		if !strings.HasPrefix(strings.ToLower(id), prefixLower) {
			continue
		}
		if found {
			return "", true, true
		}
		match = id
		found = true
	}
	return match, found, false
}

// UniquePrefixLengths returns the shortest unique prefix length for each ID,
// keyed by the lowercased ID.
func UniquePrefixLengths(ids []string) map[string]int {
	return UniquePrefixLengthsNormalized(NormalizeUniqueIDs(ids))
}

// UniquePrefixLengthsNormalized is UniquePrefixLengths for IDs that are
// already normalized with NormalizeUniqueIDs.
func UniquePrefixLengthsNormalized(ids []string) map[string]int {
	lowered := make([]string, 0, len(ids))
	for _, id := range ids {
		lowered = append(lowered, strings.ToLower(id))
	}

	lengths := make(map[string]int, len(lowered))
	for _, id := range lowered {
		lengths[id] = uniquePrefixLength(id, lowered)
	}

	return lengths
}

func uniquePrefixLength(id string, ids []string) int {
	for length := 1; length <= len(id); length++ {
		prefix := id[:length]
		unique := true
		for _, other := range ids {
			if other == id {
				continue
			}
			if strings.HasPrefix(other, prefix) {
				unique = false
				break
			}
		}
		if unique {
			return length
		}
	}

	return len(id)
}
