// Package assets resolves markdown image references against a caller-supplied
// map of reference keys to binary payloads.
package assets

import (
	"sort"
	"strings"
)

// Map associates reference strings (relative paths, bare filenames, or
// nested folder paths) with binary image payloads. The resolver never
// mutates it; the caller owns it for the duration of one conversion.
type Map map[string][]byte

// Resolve finds the payload best matching href. The cascade stops at the
// first successful step:
//
//  1. exact key equality,
//  2. key equality with href stripped of a single leading "./" or "/",
//  3. a key whose basename equals the basename of href,
//  4. a key ending with href or its stripped form.
//
// Steps 3 and 4 scan keys in lexicographic order and take the first match,
// so resolution is deterministic even when several keys qualify.
func Resolve(href string, m Map) ([]byte, bool) {
	if href == "" || len(m) == 0 {
		return nil, false
	}

	if data, ok := m[href]; ok {
		return data, true
	}

	normalized := normalize(href)
	if normalized != href {
		if data, ok := m[normalized]; ok {
			return data, true
		}
	}

	keys := sortedKeys(m)

	base := basename(href)
	for _, k := range keys {
		if basename(k) == base {
			return m[k], true
		}
	}

	for _, k := range keys {
		if strings.HasSuffix(k, href) || strings.HasSuffix(k, normalized) {
			return m[k], true
		}
	}

	return nil, false
}

// normalize strips a single leading "./" or "/" from href.
func normalize(href string) string {
	if rest, ok := strings.CutPrefix(href, "./"); ok {
		return rest
	}
	if rest, ok := strings.CutPrefix(href, "/"); ok {
		return rest
	}
	return href
}

// basename returns the substring after the last path separator.
func basename(p string) string {
	if idx := strings.LastIndexAny(p, "/\\"); idx != -1 {
		return p[idx+1:]
	}
	return p
}

func sortedKeys(m Map) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
