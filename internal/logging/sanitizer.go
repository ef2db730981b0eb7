package logging

import (
	"regexp"
)

// Sanitizer redacts sensitive information from log messages.
type Sanitizer struct {
	patterns []*regexp.Regexp
	redacted string
}

// NewSanitizer creates a sanitizer with default patterns.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{
		patterns: defaultPatterns(),
		redacted: "[REDACTED]",
	}
}

func defaultPatterns() []*regexp.Regexp {
	patterns := []string{
		// Signed media and embed URLs keep the parameter name
		`(?i)([?&#](?:access_token|id_token|sig|signature|code|token|apikey|api_key|key)=)[^&#\s"']+`,
		// Azure SAS and AWS presigned URLs
		`(?i)([?&](?:sv|se|X-Amz-Signature|X-Amz-Credential)=)[^&#\s"']+`,
		// Generic Bearer tokens
		`(?i)(bearer\s+)[a-zA-Z0-9._-]{20,}`,
		// Generic API keys
		`(?i)(api[_-]?key["'\s:=]+)[a-zA-Z0-9_-]{20,}`,
		// Generic secrets
		`(?i)(secret["'\s:=]+)[a-zA-Z0-9_-]{20,}`,
		// Generic passwords
		`(?i)(password["'\s:=]+)[^\s"']{8,}`,
		// Generic tokens
		`(?i)(token["'\s:=]+)[a-zA-Z0-9_-]{20,}`,
		// Basic auth credentials in URLs
		`(://[^/\s:@]+:)[^/\s@]+(@)`,
	}

	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return compiled
}

// Sanitize redacts sensitive information from a string.
func (s *Sanitizer) Sanitize(input string) string {
	result := input
	for _, pattern := range s.patterns {
		result = pattern.ReplaceAllStringFunc(result, func(match string) string {
			return s.redact(pattern, match)
		})
	}
	return result
}

// redact keeps the capture groups of match and replaces everything else.
func (s *Sanitizer) redact(pattern *regexp.Regexp, match string) string {
	groups := pattern.FindStringSubmatch(match)
	switch len(groups) {
	case 0, 1:
		return s.redacted
	case 2:
		return groups[1] + s.redacted
	default:
		return groups[1] + s.redacted + groups[len(groups)-1]
	}
}

// SanitizeMap redacts values in a map.
func (s *Sanitizer) SanitizeMap(m map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{})
	for k, v := range m {
		switch val := v.(type) {
		case string:
			result[k] = s.Sanitize(val)
		case map[string]interface{}:
			result[k] = s.SanitizeMap(val)
		default:
			result[k] = v
		}
	}
	return result
}

// AddPattern adds a custom pattern.
func (s *Sanitizer) AddPattern(pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	s.patterns = append(s.patterns, re)
	return nil
}

// SetRedactedPlaceholder sets the placeholder text for redacted content.
func (s *Sanitizer) SetRedactedPlaceholder(placeholder string) {
	s.redacted = placeholder
}
