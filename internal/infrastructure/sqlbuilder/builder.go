// Package sqlbuilder produces SQL fragments with the positional
// placeholder syntax of the active relational backend, so repositories
// never branch on the engine they run against.
package sqlbuilder

import (
	"fmt"
	"strings"

	"asset-manager-api/pkg/apperr"
)

// Backend is the relational engine in use. It only determines
// placeholder syntax; query text is otherwise shared.
type Backend int

const (
	Postgres Backend = iota
	MySQL
	SQLite
)

// ParseBackend maps a driver-reported backend name to a Backend.
func ParseBackend(name string) (Backend, error) {
	switch name {
	case "PostgreSQL":
		return Postgres, nil
	case "MySQL":
		return MySQL, nil
	case "SQLite":
		return SQLite, nil
	default:
		return 0, apperr.Newf(apperr.KindConfiguration, "unable to parse backend name %s", name)
	}
}

func (b Backend) String() string {
	switch b {
	case Postgres:
		return "PostgreSQL"
	case MySQL:
		return "MySQL"
	case SQLite:
		return "SQLite"
	default:
		return "unknown"
	}
}

// Placeholder returns the positional parameter token for the given
// 1-based index. MySQL binds strictly in call order and ignores the
// index.
func (b Backend) Placeholder(index int) string {
	switch b {
	case Postgres:
		return fmt.Sprintf("$%d", index)
	case SQLite:
		return fmt.Sprintf("?%d", index)
	case MySQL:
		return "?"
	default:
		return ""
	}
}

// Filters is an ordered chain of WHERE predicates built from bare
// column names. Each item is either the base predicate or a fragment
// prefixed with "AND "/"OR ". A fragment may be a parenthesized group
// such as "AND (asset_path OR custom_path)"; group members resolve to
// consecutive placeholders and keep their inner connectors.
type Filters struct {
	items  []string
	offset int
}

// NewFilters starts a chain with a base predicate and the placeholder
// index the first column should bind to.
func NewFilters(base string, offset int) *Filters {
	return &Filters{items: []string{base}, offset: offset}
}

func (f *Filters) Add(item string) *Filters {
	f.items = append(f.items, item)
	return f
}

// ToQuery renders the chain, e.g. "id = $1 AND age = $2" against
// Postgres or "id = ? AND age = ?" against MySQL.
func (f *Filters) ToQuery(b Backend) (string, error) {
	out := make([]string, 0, len(f.items))
	index := f.offset

	for _, item := range f.items {
		var prefix string
		rest := item
		switch {
		case strings.HasPrefix(rest, "AND "):
			prefix, rest = "AND ", strings.TrimPrefix(rest, "AND ")
		case strings.HasPrefix(rest, "OR "):
			prefix, rest = "OR ", strings.TrimPrefix(rest, "OR ")
		}

		frag, next, err := renderPredicate(rest, b, index)
		if err != nil {
			return "", err
		}
		index = next
		out = append(out, prefix+frag)
	}

	return strings.Join(out, " "), nil
}

// renderPredicate rewrites one fragment's column references into
// "column = placeholder" terms, returning the next free index.
func renderPredicate(rest string, b Backend, index int) (string, int, error) {
	grouped := strings.HasPrefix(rest, "(") && strings.HasSuffix(rest, ")")
	if grouped {
		rest = strings.TrimSuffix(strings.TrimPrefix(rest, "("), ")")
	}

	tokens := strings.Fields(rest)
	if len(tokens) == 0 {
		return "", index, apperr.Parsing("empty filter fragment")
	}

	if len(tokens) == 1 && !grouped {
		return tokens[0] + " = " + b.Placeholder(index), index + 1, nil
	}

	// a multi-column fragment is a group: columns joined by AND/OR
	terms := make([]string, 0, len(tokens))
	expectColumn := true
	for _, tok := range tokens {
		if tok == "AND" || tok == "OR" {
			if expectColumn {
				return "", index, apperr.Newf(apperr.KindParsing, "unexpected connector in filter %q", rest)
			}
			terms = append(terms, tok)
			expectColumn = true
			continue
		}
		if !expectColumn {
			return "", index, apperr.Newf(apperr.KindParsing, "missing connector in filter %q", rest)
		}
		terms = append(terms, tok+" = "+b.Placeholder(index))
		index++
		expectColumn = false
	}
	if expectColumn {
		return "", index, apperr.Newf(apperr.KindParsing, "dangling connector in filter %q", rest)
	}

	return "(" + strings.Join(terms, " ") + ")", index, nil
}

// Values renders a VALUES clause with Count placeholders starting at
// Offset, e.g. "VALUES($1, $2, $3)".
type Values struct {
	Count  int
	Offset int
}

func (v Values) ToQuery(b Backend) string {
	ps := make([]string, 0, v.Count)
	for i := 0; i < v.Count; i++ {
		ps = append(ps, b.Placeholder(i+v.Offset))
	}
	return "VALUES(" + strings.Join(ps, ", ") + ")"
}

// Setters renders the assignment list of an UPDATE statement,
// e.g. "name = $1, public = $2".
type Setters struct {
	items  []string
	offset int
}

func NewSetters(col string, offset int) *Setters {
	return &Setters{items: []string{col}, offset: offset}
}

func (s *Setters) Add(col string) *Setters {
	s.items = append(s.items, col)
	return s
}

func (s *Setters) ToQuery(b Backend) string {
	out := make([]string, 0, len(s.items))
	for i, col := range s.items {
		out = append(out, col+" = "+b.Placeholder(i+s.offset))
	}
	return strings.Join(out, ", ")
}
