package stringsutil

import "strings"

func RemoveEmptyStrings(slice []string) []string {
	var result []string

	for _, s := range slice {
		if s != "" {
			result = append(result, s)
		}
	}

	return result
}

// CollapseWhitespace folds runs of whitespace into single spaces and trims
// the edges, the normalization applied to every scraped text fragment.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
