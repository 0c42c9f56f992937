package scanner

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

// Only these descriptor properties survive the conversion; everything else
// (labels, placeholders, options, render functions) is dropped.
var relevantProps = []string{"key", "dataType", "showType", "max"}

// ParseSchemaFile reads a schema file and returns its top-level field
// descriptors as raw JSON objects, in file order.
func ParseSchemaFile(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open schema: %w", err)
	}
	defer f.Close()

	fields, err := ParseSchema(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return fields, nil
}

// ParseSchema converts a JavaScript object-literal schema into field descriptors.
//
// The conversion is line oriented and expects the layout produced by the
// usual IDE formatter: one property per line, each object opened by a lone
// "{" and closed by a lone "},".
func ParseSchema(r io.Reader) ([]json.RawMessage, error) {
	text, err := ToJSON(r)
	if err != nil {
		return nil, err
	}

	var fields []json.RawMessage
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return nil, fmt.Errorf("decode schema json: %w", err)
	}
	return fields, nil
}

// ToJSON rebuilds a JSON array from the top-level objects of a schema source.
func ToJSON(r io.Reader) (string, error) {
	objects, err := topLevelObjects(r)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteByte('[')
	for i, body := range objects {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('{')
		for _, line := range body {
			members, err := jsonMembers(line)
			if err != nil {
				return "", err
			}
			sb.WriteString(members)
		}
		sb.WriteByte('}')
	}
	sb.WriteByte(']')

	return RepairTrailingCommas(sb.String()), nil
}

// topLevelObjects collects the trimmed lines of every top-level object.
func topLevelObjects(r io.Reader) ([][]string, error) {
	var (
		stack   []string
		objects [][]string
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if skipLine(line) {
			continue
		}
		// nothing before the first object matters
		if len(stack) == 0 && line != "{" {
			continue
		}

		stack = append(stack, line)
		if line != "}," {
			continue
		}

		var body []string
		for len(stack) > 0 {
			last := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if last == "{" {
				break
			}
			body = append(body, last)
		}
		// a non-empty stack means a nested object just closed
		if len(stack) == 0 {
			slices.Reverse(body)
			objects = append(objects, body)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	return objects, nil
}

func skipLine(line string) bool {
	return line == "" ||
		strings.HasPrefix(line, "//") ||
		strings.HasPrefix(line, "import") ||
		strings.HasPrefix(line, "module.exports")
}

// jsonMembers turns `name: value, other: value,` into JSON members, keeping
// only the relevant properties. Lines that do not start with a relevant
// property yield nothing.
func jsonMembers(line string) (string, error) {
	if !slices.ContainsFunc(relevantProps, func(p string) bool { return strings.HasPrefix(line, p+":") }) {
		return "", nil
	}

	var sb strings.Builder
	rest := strings.TrimSpace(StripInlineComment(line))
	for rest != "" {
		var (
			name, value string
			err         error
		)
		name, value, rest, err = splitMember(rest)
		if err != nil {
			return "", fmt.Errorf("line %q: %w", line, err)
		}
		if slices.Contains(relevantProps, name) {
			sb.WriteString(`"` + name + `":` + jsonValue(value) + ",")
		}
	}
	return sb.String(), nil
}

// splitMember cuts the leading `name: value` off s and returns what follows
// the comma after it.
func splitMember(s string) (name, value, rest string, err error) {
	colon := strings.IndexByte(s, ':')
	if colon <= 0 {
		return "", "", "", fmt.Errorf("expected name: value, got %q", s)
	}
	name = strings.Trim(strings.TrimSpace(s[:colon]), `'"`)
	s = strings.TrimSpace(s[colon+1:])

	end, err := literalEnd(s)
	if err != nil {
		return "", "", "", fmt.Errorf("%s: %w", name, err)
	}
	value = strings.TrimSpace(s[:end])
	rest = strings.TrimSpace(s[end:])
	if rest != "" {
		if rest[0] != ',' {
			return "", "", "", fmt.Errorf("%s: unexpected %q after value", name, rest)
		}
		rest = strings.TrimSpace(rest[1:])
	}
	return name, value, rest, nil
}

// literalEnd returns the offset just past the literal that starts s. Bare
// values run up to the first comma outside brackets and quotes.
func literalEnd(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	if q := s[0]; q == '\'' || q == '"' || q == '`' {
		for i := 1; i < len(s); i++ {
			switch s[i] {
			case '\\':
				i++
			case q:
				return i + 1, nil
			}
		}
		return 0, errors.New("unterminated string")
	}

	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[', '{', '(':
			depth++
		case ']', '}', ')':
			depth--
		case '\'', '"', '`':
			n, err := literalEnd(s[i:])
			if err != nil {
				return 0, err
			}
			i += n - 1
		case ',':
			if depth <= 0 {
				return i, nil
			}
		}
	}
	return len(s), nil
}

// jsonValue converts a JavaScript literal into its JSON spelling.
func jsonValue(v string) string {
	switch {
	case v == "":
		return "null"
	case len(v) >= 2 && (v[0] == '\'' || v[0] == '`') && v[len(v)-1] == v[0]:
		return singleToDoubleQuoted(v[1 : len(v)-1])
	case json.Valid([]byte(v)):
		return v
	}
	// bare identifiers are taken as their own name
	b, _ := json.Marshal(v)
	return string(b)
}

func singleToDoubleQuoted(inner string) string {
	var sb strings.Builder
	sb.Grow(len(inner) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		switch {
		case c == '\\' && i+1 < len(inner) && inner[i+1] == '\'':
			sb.WriteByte('\'')
			i++
		case c == '\\' && i+1 < len(inner):
			sb.WriteByte(c)
			sb.WriteByte(inner[i+1])
			i++
		case c == '"':
			sb.WriteString(`\"`)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// StripInlineComment cuts a trailing `//` comment that is not inside a
// quoted string.
func StripInlineComment(s string) string {
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"' || c == '`':
			quote = c
		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			return s[:i]
		}
	}
	return s
}

// RepairTrailingCommas blanks every comma directly followed by '}' or ']'.
func RepairTrailingCommas(s string) string {
	b := []byte(s)
	for i := 0; i < len(b)-1; i++ {
		if b[i] == ',' && (b[i+1] == '}' || b[i+1] == ']') {
			b[i] = ' '
		}
	}
	return string(b)
}
