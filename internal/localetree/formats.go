package localetree

import (
	"regexp"
	"strings"
)

type entityParser func(src string) []string

// lines splits src on newlines. The whole file is already in memory, so
// there is no per-line length cap to overflow.
func lines(src string) []string {
	src = strings.TrimPrefix(src, "\ufeff")
	src = strings.TrimSuffix(src, "\n")
	if src == "" {
		return nil
	}
	out := strings.Split(src, "\n")
	for i, l := range out {
		out[i] = strings.TrimSuffix(l, "\r")
	}
	return out
}

// parseProperties handles key=value, key:value and "key value" lines with
// #/! comments and backslash continuations.
func parseProperties(src string) []string {
	var keys []string
	continued := false
	for _, line := range lines(src) {
		if continued {
			continued = endsWithContinuation(line)
			continue
		}
		trim := strings.TrimLeft(line, " \t\f")
		if trim == "" || trim[0] == '#' || trim[0] == '!' {
			continue
		}
		continued = endsWithContinuation(trim)
		end := len(trim)
		for i := 0; i < len(trim); i++ {
			c := trim[i]
			if c == '\\' {
				i++
				continue
			}
			if c == '=' || c == ':' || c == ' ' || c == '\t' || c == '\f' {
				end = i
				break
			}
		}
		if key := unescapeKey(trim[:end]); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

func endsWithContinuation(line string) bool {
	n := 0
	for i := len(line) - 1; i >= 0 && line[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

func unescapeKey(k string) string {
	if !strings.Contains(k, `\`) {
		return k
	}
	var sb strings.Builder
	for i := 0; i < len(k); i++ {
		if k[i] == '\\' && i+1 < len(k) {
			i++
		}
		sb.WriteByte(k[i])
	}
	return sb.String()
}

var dtdEntityRe = regexp.MustCompile(`<!ENTITY\s+([A-Za-z_][\w.\-]*)\s`)

var dtdCommentRe = regexp.MustCompile(`(?s)<!--.*?-->`)

func parseDTD(src string) []string {
	src = dtdCommentRe.ReplaceAllString(src, "")
	var keys []string
	for _, m := range dtdEntityRe.FindAllStringSubmatch(src, -1) {
		keys = append(keys, m[1])
	}
	return keys
}

var ftlIDRe = regexp.MustCompile(`^(-?[a-zA-Z][\w-]*)\s*=`)

// parseFTL returns message and term identifiers; attributes and variants
// belong to their message.
func parseFTL(src string) []string {
	var keys []string
	for _, line := range lines(src) {
		if m := ftlIDRe.FindStringSubmatch(line); m != nil {
			keys = append(keys, m[1])
		}
	}
	return keys
}

var defineRe = regexp.MustCompile(`^#define\s+(\w+)`)

func parseDefines(src string) []string {
	var keys []string
	for _, line := range lines(src) {
		if m := defineRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			keys = append(keys, m[1])
		}
	}
	return keys
}

func parseINI(src string) []string {
	var keys []string
	for _, line := range lines(src) {
		trim := strings.TrimSpace(line)
		if trim == "" || trim[0] == ';' || trim[0] == '#' || trim[0] == '[' {
			continue
		}
		if i := strings.IndexByte(trim, '='); i > 0 {
			keys = append(keys, strings.TrimSpace(trim[:i]))
		}
	}
	return keys
}
