package route

import (
	"fmt"
	"regexp"
	"strings"
)

var paramName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Param is a single value captured from a custom ID.
type Param struct {
	Name  string
	Value string
}

// Params holds captured values in the order their placeholders appear in
// the pattern.
type Params []Param

// Get returns the value captured for name, or "" if there is none.
func (p Params) Get(name string) string {
	for _, param := range p {
		if param.Name == name {
			return param.Value
		}
	}
	return ""
}

// Map returns the captured values keyed by placeholder name.
func (p Params) Map() map[string]string {
	m := make(map[string]string, len(p))
	for _, param := range p {
		m[param.Name] = param.Value
	}
	return m
}

// Pattern matches custom IDs such as "accept:{id}". Static text must match
// exactly; each placeholder captures one or more characters.
type Pattern struct {
	raw   string
	names []string
	re    *regexp.Regexp
}

// IsPattern reports whether s contains placeholder syntax.
func IsPattern(s string) bool {
	return strings.ContainsAny(s, "{}")
}

// ParsePattern compiles a custom ID pattern.
func ParsePattern(s string) (*Pattern, error) {
	var (
		expr  strings.Builder
		names []string
		seen  = make(map[string]bool)
		rest  = s
		prev  bool // previous token was a placeholder
	)

	expr.WriteString("(?s)^")
	for rest != "" {
		open := strings.IndexByte(rest, '{')
		if closing := strings.IndexByte(rest, '}'); closing >= 0 && (open < 0 || closing < open) {
			return nil, fmt.Errorf("%w: unexpected '}' in %q", ErrInvalidPattern, s)
		}
		if open < 0 {
			expr.WriteString(regexp.QuoteMeta(rest))
			break
		}
		if open > 0 {
			expr.WriteString(regexp.QuoteMeta(rest[:open]))
			prev = false
		}

		rest = rest[open+1:]
		end := strings.IndexByte(rest, '}')
		if end < 0 {
			return nil, fmt.Errorf("%w: unclosed '{' in %q", ErrInvalidPattern, s)
		}

		name := rest[:end]
		switch {
		case !paramName.MatchString(name):
			return nil, fmt.Errorf("%w: invalid placeholder %q in %q", ErrInvalidPattern, name, s)
		case seen[name]:
			return nil, fmt.Errorf("%w: duplicate placeholder %q in %q", ErrInvalidPattern, name, s)
		case prev:
			return nil, fmt.Errorf("%w: adjacent placeholders in %q", ErrInvalidPattern, s)
		}
		seen[name] = true
		names = append(names, name)
		expr.WriteString("(.+?)")
		prev = true

		rest = rest[end+1:]
	}
	expr.WriteString("$")

	re, err := regexp.Compile(expr.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}

	return &Pattern{raw: s, names: names, re: re}, nil
}

// Match reports whether id matches the pattern and returns the captured
// placeholder values.
func (p *Pattern) Match(id string) (Params, bool) {
	m := p.re.FindStringSubmatch(id)
	if m == nil {
		return nil, false
	}

	params := make(Params, len(p.names))
	for i, name := range p.names {
		params[i] = Param{Name: name, Value: m[i+1]}
	}
	return params, true
}

// String returns the pattern source.
func (p *Pattern) String() string {
	return p.raw
}
