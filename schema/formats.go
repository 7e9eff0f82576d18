package schema

import (
	"net"
	"regexp"
	"strings"
	"time"
)

// Formats is the built-in format registry named in the validator's
// contract: date, time, date-time, email, hostname, ipv4, ipv6, regex,
// semver, uri, uri-reference. Each entry applies only to string values;
// non-string values are considered format-valid (the format keyword is a
// no-op on the wrong type).
var Formats = map[string]func(any) bool{
	"date":          formatDate,
	"time":          formatTime,
	"date-time":     formatDateTime,
	"email":         formatEmail,
	"hostname":      formatHostname,
	"ipv4":          formatIPv4,
	"ipv6":          formatIPv6,
	"regex":         formatRegex,
	"semver":        formatSemver,
	"uri":           formatAlwaysValid,
	"uri-reference": formatAlwaysValid,
}

func asString(value any) (string, bool) {
	s, ok := value.(string)
	return s, ok
}

func formatDate(value any) bool {
	s, ok := asString(value)
	if !ok {
		return true
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func formatTime(value any) bool {
	s, ok := asString(value)
	if !ok {
		return true
	}
	for _, layout := range []string{"15:04:05Z07:00", "15:04:05"} {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func formatDateTime(value any) bool {
	s, ok := asString(value)
	if !ok {
		return true
	}
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}

func formatEmail(value any) bool {
	s, ok := asString(value)
	if !ok {
		return true
	}
	at := strings.IndexByte(s, '@')
	return at > 0 && at < len(s)-1
}

var hostnameLabel = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9-]{0,61}[A-Za-z0-9])?$`)

func formatHostname(value any) bool {
	s, ok := asString(value)
	if !ok {
		return true
	}
	if len(s) == 0 || len(s) > 255 {
		return false
	}
	for _, label := range strings.Split(s, ".") {
		if len(label) == 0 || len(label) > 63 || !hostnameLabel.MatchString(label) {
			return false
		}
	}
	return true
}

func formatIPv4(value any) bool {
	s, ok := asString(value)
	if !ok {
		return true
	}
	ip := net.ParseIP(s)
	return ip != nil && ip.To4() != nil && strings.Count(s, ":") == 0
}

func formatIPv6(value any) bool {
	s, ok := asString(value)
	if !ok {
		return true
	}
	ip := net.ParseIP(s)
	return ip != nil && strings.Contains(s, ":")
}

func formatRegex(value any) bool {
	s, ok := asString(value)
	if !ok {
		return true
	}
	_, err := regexp.Compile(s)
	return err == nil
}

var semverPattern = regexp.MustCompile(`^\d+\.\d+(\.\d+)?(-[0-9A-Za-z-.]+)?(\+[0-9A-Za-z-.]+)?$`)

func formatSemver(value any) bool {
	s, ok := asString(value)
	if !ok {
		return true
	}
	return semverPattern.MatchString(s)
}

func formatAlwaysValid(any) bool { return true }
