package style

import (
	"regexp"
	"strings"

	"github.com/aymerick/douceur/css"
)

var (
	commentRe  = regexp.MustCompile(`(?s)/\*.*?\*/`)
	propertyRe = regexp.MustCompile(`^-{0,2}[A-Za-z][A-Za-z0-9_-]*$`)
)

// balanced reports whether every brace outside comments and strings is
// closed in order
func balanced(src string) bool {
	depth := 0
	var quote rune
	for _, r := range commentRe.ReplaceAllString(src, "") {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '{':
			depth++
		case r == '}':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

// salvage recovers what it can from CSS the parser rejected: every
// "property: value" segment ended by ';' or '}' (or the end of input), and
// the prelude of every @media block. Selectors and nesting are dropped, so
// the declarations come back flattened into one rule.
func salvage(src string) []*css.Rule {
	decls := []*css.Declaration{}
	media := []*css.Rule{}

	var seg strings.Builder
	var quote rune
	parens := 0

	flush := func(delim rune) {
		text := strings.TrimSpace(seg.String())
		seg.Reset()
		if text == "" {
			return
		}
		if delim == '{' {
			if prelude, ok := strings.CutPrefix(text, "@media"); ok {
				media = append(media, &css.Rule{Kind: css.AtRule, Name: "@media", Prelude: strings.TrimSpace(prelude)})
			}
			return
		}
		if d := salvageDeclaration(text); d != nil {
			decls = append(decls, d)
		}
	}

	for _, r := range commentRe.ReplaceAllString(src, "") {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '(':
			parens++
		case r == ')':
			if parens > 0 {
				parens--
			}
		case parens == 0 && (r == '{' || r == '}' || r == ';'):
			flush(r)
			continue
		}
		seg.WriteRune(r)
	}
	flush(0)

	rules := []*css.Rule{}
	if len(decls) > 0 {
		rules = append(rules, &css.Rule{Kind: css.QualifiedRule, Declarations: decls})
	}
	return append(rules, media...)
}

func salvageDeclaration(text string) *css.Declaration {
	name, value, ok := strings.Cut(text, ":")
	if !ok {
		return nil
	}
	name = strings.TrimSpace(name)
	value = strings.TrimSpace(value)
	if !propertyRe.MatchString(name) || value == "" {
		return nil
	}

	d := &css.Declaration{Property: name, Value: value}
	if lower := strings.ToLower(value); strings.HasSuffix(lower, "!important") {
		d.Value = strings.TrimSpace(value[:len(value)-len("!important")])
		d.Important = true
	}
	if d.Value == "" {
		return nil
	}
	return d
}
