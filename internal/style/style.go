// Package style aggregates CSS text and exposes a tolerant syntax tree built
// with douceur. Every Sheet method is safe to call on a nil *Sheet.
package style

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/gorilla/css/scanner"
)

// CustomPropertyPrefix marks CSS variables
const CustomPropertyPrefix = "--"

// Sheet is a parsed style corpus
type Sheet struct {
	rules []*css.Rule
}

// Property is a single name/value pair in source order
type Property struct {
	Name  string
	Value string
}

// Aggregate joins inline <style> blocks and fetched stylesheet bodies into
// one corpus, inline blocks first
func Aggregate(inline, fetched []string) string {
	parts := make([]string, 0, len(inline)+len(fetched))
	for _, block := range inline {
		if strings.TrimSpace(block) != "" {
			parts = append(parts, block)
		}
	}
	for _, body := range fetched {
		if strings.TrimSpace(body) != "" {
			parts = append(parts, body)
		}
	}
	return strings.Join(parts, "\n")
}

// Parse builds a Sheet from corpus. A parser panic is returned as an error,
// and so is a corpus whose braces do not balance.
func Parse(corpus string) (sheet *Sheet, err error) {
	defer func() {
		if r := recover(); r != nil {
			sheet = nil
			err = fmt.Errorf("css parser panic: %v", r)
		}
	}()

	if strings.TrimSpace(corpus) == "" {
		return &Sheet{}, nil
	}
	if !balanced(corpus) {
		return nil, errors.New("parse css: unbalanced braces")
	}

	parsed, err := parser.Parse(corpus)
	if err != nil {
		return nil, fmt.Errorf("parse css: %w", err)
	}

	return &Sheet{rules: parsed.Rules}, nil
}

// ParseSources parses inline blocks and fetched bodies as one corpus. When
// that fails each source is parsed on its own; a source the parser rejects
// is salvaged for its plain declarations and @media preludes. The sheet is
// never nil. The error joins the per-source failures.
func ParseSources(inline, fetched []string) (*Sheet, error) {
	if allBalanced(inline) && allBalanced(fetched) {
		if sheet, err := Parse(Aggregate(inline, fetched)); err == nil {
			return sheet, nil
		}
	}

	sheet := &Sheet{}
	var errs []error
	add := func(kind string, i int, src string) {
		if strings.TrimSpace(src) == "" {
			return
		}
		part, err := Parse(src)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s %d: %w", kind, i+1, err))
			sheet.rules = append(sheet.rules, salvage(src)...)
			return
		}
		sheet.rules = append(sheet.rules, part.rules...)
	}

	for i, block := range inline {
		add("inline style", i, block)
	}
	for i, body := range fetched {
		add("stylesheet", i, body)
	}

	return sheet, errors.Join(errs...)
}

func allBalanced(sources []string) bool {
	for _, src := range sources {
		if !balanced(src) {
			return false
		}
	}
	return true
}

// RuleCount returns the number of rules at every nesting level
func (s *Sheet) RuleCount() int {
	n := 0
	s.Walk(func(*css.Rule) { n++ })
	return n
}

// Walk visits every rule depth-first in source order
func (s *Sheet) Walk(fn func(rule *css.Rule)) {
	if s == nil {
		return
	}
	var walk func(rules []*css.Rule)
	walk = func(rules []*css.Rule) {
		for _, r := range rules {
			if r == nil {
				continue
			}
			fn(r)
			walk(r.Rules)
		}
	}
	walk(s.rules)
}

// Declarations returns every declaration in source order
func (s *Sheet) Declarations() []*css.Declaration {
	decls := []*css.Declaration{}
	s.Walk(func(r *css.Rule) {
		for _, d := range r.Declarations {
			if d != nil {
				decls = append(decls, d)
			}
		}
	})
	return decls
}

// Values returns the values of declarations whose property is one of props
func (s *Sheet) Values(props ...string) []string {
	want := make(map[string]bool, len(props))
	for _, p := range props {
		want[p] = true
	}

	values := []string{}
	for _, d := range s.Declarations() {
		if want[strings.ToLower(d.Property)] && d.Value != "" {
			values = append(values, d.Value)
		}
	}
	return values
}

// ColorLiterals returns every hex color and rgb/rgba/hsl/hsla call found in
// declaration values, in source order with duplicates kept
func (s *Sheet) ColorLiterals() []string {
	colors := []string{}
	for _, d := range s.Declarations() {
		colors = append(colors, ScanColors(d.Value)...)
	}
	return colors
}

// CustomProperties returns declarations whose name starts with "--"
func (s *Sheet) CustomProperties() []Property {
	props := []Property{}
	for _, d := range s.Declarations() {
		name := strings.TrimSpace(d.Property)
		if strings.HasPrefix(name, CustomPropertyPrefix) && len(name) > len(CustomPropertyPrefix) {
			props = append(props, Property{Name: name, Value: strings.TrimSpace(d.Value)})
		}
	}
	return props
}

// MediaPreludes returns the prelude of every @media rule
func (s *Sheet) MediaPreludes() []string {
	preludes := []string{}
	s.Walk(func(r *css.Rule) {
		if r.Kind == css.AtRule && strings.EqualFold(r.Name, "@media") && r.Prelude != "" {
			preludes = append(preludes, strings.TrimSpace(r.Prelude))
		}
	})
	return preludes
}

var colorFunctions = map[string]bool{
	"rgb(":  true,
	"rgba(": true,
	"hsl(":  true,
	"hsla(": true,
}

// ScanColors tokenizes a declaration value and returns its color literals:
// hash tokens of 3, 4, 6 or 8 hex digits and rgb/rgba/hsl/hsla calls
func ScanColors(value string) []string {
	colors := []string{}
	sc := scanner.New(value)

	for {
		tok := sc.Next()
		switch tok.Type {
		case scanner.TokenEOF, scanner.TokenError:
			return colors
		case scanner.TokenHash:
			if isHexColor(tok.Value) {
				colors = append(colors, tok.Value)
			}
		case scanner.TokenFunction:
			if !colorFunctions[strings.ToLower(tok.Value)] {
				continue
			}
			if call, ok := readCall(sc, tok.Value); ok {
				colors = append(colors, call)
			}
		}
	}
}

// readCall consumes tokens up to the closing parenthesis of a function call
func readCall(sc *scanner.Scanner, open string) (string, bool) {
	var b strings.Builder
	b.WriteString(open)
	depth := 1

	for {
		tok := sc.Next()
		switch tok.Type {
		case scanner.TokenEOF, scanner.TokenError:
			return "", false
		case scanner.TokenS:
			b.WriteByte(' ')
			continue
		case scanner.TokenFunction:
			depth++
		case scanner.TokenChar:
			if tok.Value == ")" {
				depth--
				if depth == 0 {
					b.WriteString(")")
					return b.String(), true
				}
			}
		}
		b.WriteString(tok.Value)
	}
}

func isHexColor(s string) bool {
	h := strings.TrimPrefix(s, "#")
	switch len(h) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for _, c := range h {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}
