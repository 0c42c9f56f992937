package java

import (
	"regexp"

	"github.com/jxy/goos/internal/codegen/common"
)

var tokenPattern = regexp.MustCompile(`\{(.*?)\}`)

// Params maps template tokens (without braces) to their values.
type Params map[string]string

// TableParams returns the name-derived tokens of a table.
func TableParams(table string) Params {
	return Params{
		"lowCamelName": table,
		"upCamelName":  common.UpperFirst(table),
		"snakeName":    common.ToSnakeCase(table),
		"kebabName":    common.ToKebabCase(table),
	}
}

// With returns a copy of p with key set to value.
func (p Params) With(key, value string) Params {
	out := make(Params, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	out[key] = value
	return out
}

// RenderLine substitutes known {token}s in line. Unknown tokens, including
// Java's own braces, are left as they are.
func RenderLine(line string, params Params) string {
	return tokenPattern.ReplaceAllStringFunc(line, func(m string) string {
		if v, ok := params[m[1:len(m)-1]]; ok {
			return v
		}
		return m
	})
}

// Render reads a sample file and substitutes params line by line.
func (t *Templates) Render(name string, params Params) ([]string, error) {
	lines, err := t.ReadLines(name)
	if err != nil {
		return nil, err
	}
	for i, line := range lines {
		lines[i] = RenderLine(line, params)
	}
	return lines, nil
}
