package openai

// extractJSONObject extracts the first complete JSON object from content that
// may be wrapped in extra text, such as a markdown fence or a preamble. It
// returns false when no balanced object is found.
func extractJSONObject(content string) (string, bool) {
	return extractBalanced(content, '{', '}')
}

// extractJSONArray extracts the first complete JSON array from content.
func extractJSONArray(content string) (string, bool) {
	return extractBalanced(content, '[', ']')
}

// extractBalanced scans for the first balanced open..closing span, ignoring
// delimiters inside JSON strings.
func extractBalanced(content string, open, closing rune) (string, bool) {
	first := -1
	depth := 0
	inString := false
	escapeNext := false

	for i, ch := range content {
		if escapeNext {
			escapeNext = false
			continue
		}
		if ch == '\\' && inString {
			escapeNext = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch ch {
		case open:
			if first == -1 {
				first = i
			}
			depth++
		case closing:
			if first == -1 {
				continue
			}
			depth--
			if depth == 0 {
				return content[first : i+1], true
			}
		}
	}
	return "", false
}
