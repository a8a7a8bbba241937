package varycache

import (
	"regexp"
	"strings"
)

// Cookie grammar. A serialized payload looks like
//
//	nocache___group-a--segment-1___group-b--
//
// where "___" separates groups, "--" separates a group name from its
// segment value, and a leading "nocache" chunk carries the no-cache flag.
// Both delimiters are built from whitelisted characters, which is why
// validateToken checks for them explicitly before the character class.
const (
	valueSeparator = "--"
	groupSeparator = "___"
	noCacheToken   = "nocache"
)

var tokenPattern = regexp.MustCompile(`^[A-Za-z0-9_-]*$`)

// validateToken is the single source of truth for group names and segment
// values. The delimiter check runs first so that a value like "a--b" is
// reported as a delimiter violation rather than an invalid character.
func validateToken(s string) error {
	if strings.Contains(s, valueSeparator) || strings.Contains(s, groupSeparator) {
		return ErrDelimiterInToken
	}
	if !tokenPattern.MatchString(s) {
		return ErrInvalidTokenChars
	}
	return nil
}

// serialize encodes the registry and the no-cache flag into the cookie
// grammar. Group order follows registration order so the payload is stable
// across requests. An empty registry with no-cache off yields "".
func serialize(names []string, segments map[string]string, noCache bool) string {
	chunks := make([]string, 0, len(names)+1)
	if noCache {
		chunks = append(chunks, noCacheToken)
	}
	for _, name := range names {
		chunks = append(chunks, name+valueSeparator+segments[name])
	}
	return strings.Join(chunks, groupSeparator)
}

// parse decodes a raw cookie payload. The input is attacker-controlled, so
// parsing never fails: chunks with the wrong arity, empty names, or tokens
// outside the whitelist are skipped, and ambiguity resolves to "not in
// group" / "no-cache off".
func parse(raw string) (names []string, segments map[string]string, noCache bool) {
	segments = make(map[string]string)
	if raw == "" {
		return names, segments, false
	}

	for i, chunk := range strings.Split(raw, groupSeparator) {
		if i == 0 && chunk == noCacheToken {
			noCache = true
			continue
		}

		parts := strings.Split(chunk, valueSeparator)
		if len(parts) != 2 {
			continue
		}
		name, value := parts[0], parts[1]
		if name == "" || validateToken(name) != nil || validateToken(value) != nil {
			continue
		}
		if _, exists := segments[name]; !exists {
			names = append(names, name)
		}
		segments[name] = value
	}
	return names, segments, noCache
}
