package logutil

// TruncateForLog shortens s to at most maxLen bytes, marking the cut with "...".
func TruncateForLog(s string, maxLen int) string {
	if maxLen <= 0 {
		return "..."
	}
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
