package contenttype

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-postformat/pkg/render/template/gotemplate"
)

var (
	identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	tagPattern        = regexp.MustCompile(`(?s)\{\{(.*?)\}\}|\{%(.*?)%\}`)
	literalPattern    = regexp.MustCompile(`"(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*'`)
	namePattern       = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)
)

// snippetKeywords never name a variable inside a pongo2 expression.
var snippetKeywords = map[string]struct{}{
	"and": {}, "or": {}, "not": {}, "in": {}, "is": {}, "as": {},
	"true": {}, "false": {}, "True": {}, "False": {}, "None": {}, "nil": {},
	"forloop": {}, "reversed": {}, "sorted": {},
}

func validIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

// validateSnippet parses snippet and checks that every variable it reads is a
// declared text field. Undefined pongo2 variables render as "", so a typo
// would otherwise drop the block silently.
func validateSnippet(snippet string, fields map[string]FieldDescriptor) error {
	if err := gotemplate.Validate(snippet); err != nil {
		return err
	}
	for _, name := range snippetNames(snippet) {
		field, ok := fields[name]
		if !ok {
			return fmt.Errorf("snippet reads undeclared field %q", name)
		}
		if field.IsMedia() {
			return fmt.Errorf("snippet reads media field %q", name)
		}
	}
	return nil
}

// snippetNames returns the variables a snippet reads. Filter and attribute
// names, keywords, tag names and names the snippet binds itself (for loop
// variables, with/set assignments) are skipped.
func snippetNames(snippet string) []string {
	var (
		reads  []string
		locals = make(map[string]struct{})
	)
	for _, match := range tagPattern.FindAllStringSubmatch(snippet, -1) {
		expr, isTag := match[1], strings.HasPrefix(match[0], "{%")
		if isTag {
			expr = match[2]
		}
		expr = literalPattern.ReplaceAllString(expr, `""`)

		declaring := false
		for i, loc := range namePattern.FindAllStringIndex(expr, -1) {
			name := expr[loc[0]:loc[1]]
			if isTag && i == 0 {
				declaring = name == "for"
				continue
			}
			if declaring {
				if name == "in" {
					declaring = false
				} else {
					locals[name] = struct{}{}
				}
				continue
			}
			if skipName(expr, loc[0]) {
				continue
			}
			if _, keyword := snippetKeywords[name]; keyword {
				continue
			}
			if assigns(expr, loc[1]) {
				locals[name] = struct{}{}
				continue
			}
			reads = append(reads, name)
		}
	}

	out := reads[:0]
	for _, name := range reads {
		if _, local := locals[name]; !local {
			out = append(out, name)
		}
	}
	return out
}

// skipName reports whether the identifier starting at start is a filter
// name, an attribute access or part of a number literal.
func skipName(expr string, start int) bool {
	if start > 0 {
		if c := expr[start-1]; c >= '0' && c <= '9' {
			return true
		}
	}
	prev := strings.TrimRight(expr[:start], " \t\r\n")
	if prev == "" {
		return false
	}
	switch prev[len(prev)-1] {
	case '|', '.':
		return true
	}
	return false
}

func assigns(expr string, end int) bool {
	rest := strings.TrimLeft(expr[end:], " \t\r\n")
	return strings.HasPrefix(rest, "=") && !strings.HasPrefix(rest, "==")
}
