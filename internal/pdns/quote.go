package pdns

import (
	"fmt"
	"regexp"
	"strings"
)

// uriRecordRe matches the RFC 7553 content format for URI records:
// priority weight "target"  OR  priority weight target
// It captures:
//
//	1: priority (digits)
//	2: weight (digits)
//	3: target if quoted (inner content without quotes)
//	4: target if unquoted (rest of the line)
var uriRecordRe = regexp.MustCompile(`^\s*(\d+)\s+(\d+)\s+(?:"((?:[^"\\]|\\.)*)"|(.*))\s*$`)

// quotedStringSequenceRE matches one or more RFC-1035-style quoted strings
// separated by whitespace. Each quoted string allows escaping via backslash
// (e.g., \" for a literal quote).
var quotedStringSequenceRE = regexp.MustCompile(`^\s*"([^"\\]|\\.)*"(?:\s+"([^"\\]|\\.)*")*\s*$`)

// isQuotedStringSequence returns true if s consists of one or more
// RFC-1035-style quoted strings separated by whitespace: "..." "..."
// It supports escaping of \" inside a quoted string. Simplified check.
func isQuotedStringSequence(s string) bool { return quotedStringSequenceRE.MatchString(s) }

// ensureQuotedContent ensures that DNS record content is correctly wrapped in
// double quotes for RR types that require it (TXT, SPF). If the content is
// already a valid sequence of quoted strings, it's returned unchanged. If not,
// embedded quotes are escaped and the whole content is wrapped in quotes.
// For other RR types, content is returned unchanged.
func ensureQuotedContent(rrType, content string) string {
	if content == "" {
		return content
	}

	t := strings.ToUpper(strings.TrimSpace(rrType))
	switch t {
	case "TXT", "SPF":
		s := strings.TrimSpace(content)
		if s == "" {
			return `""`
		}

		if isQuotedStringSequence(s) {
			return s
		}

		return quoteEscaped(s)

	case "URI":
		// RFC 7553: priority (uint16) weight (uint16) "target-uri"
		if strings.TrimSpace(content) == "" {
			return content
		}

		if m := uriRecordRe.FindStringSubmatch(content); m != nil {
			prio := m[1]
			weight := m[2]

			if quotedTarget := m[3]; quotedTarget != "" {
				// already quoted; the capture keeps escape sequences intact
				return fmt.Sprintf(`%s %s "%s"`, prio, weight, quotedTarget)
			}

			target := strings.TrimSpace(m[4])
			if target == "" {
				return fmt.Sprintf(`%s %s ""`, prio, weight)
			}

			return fmt.Sprintf(`%s %s %s`, prio, weight, quoteEscaped(target))
		}

		// No priority/weight prefix; take the last field as the target.
		parts := strings.Fields(content)
		target := parts[len(parts)-1]

		if strings.HasPrefix(target, `"`) && strings.HasSuffix(target, `"`) && len(target) >= 2 {
			return fmt.Sprintf(`0 0 %s`, target)
		}

		return fmt.Sprintf(`0 0 %s`, quoteEscaped(target))
	default:
		return content
	}
}

// quoteEscaped wraps s in double quotes, escaping embedded backslashes
// and quotes.
func quoteEscaped(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)

	return `"` + s + `"`
}
