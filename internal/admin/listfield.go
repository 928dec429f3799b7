package admin

import "strings"

// JoinList renders a list for a single-line text input.
func JoinList(items []string) string {
	return strings.Join(items, ", ")
}

// SplitList is the inverse of JoinList: split on ",", trim each piece, drop empty pieces.
// It never returns nil so the API always receives an array.
func SplitList(s string) []string {
	out := []string{}
	for _, piece := range strings.Split(s, ",") {
		if piece = strings.TrimSpace(piece); piece != "" {
			out = append(out, piece)
		}
	}
	return out
}
