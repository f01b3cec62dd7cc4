package ai

import "strings"

// cleanJSONString strips markdown code fences and any prose around the
// outermost JSON object. Models occasionally add both even in JSON mode.
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	input = strings.TrimSpace(input)

	start := strings.IndexByte(input, '{')
	end := strings.LastIndexByte(input, '}')
	if start < 0 || end < start {
		return input
	}
	return input[start : end+1]
}
