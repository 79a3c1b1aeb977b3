package shared

import (
	"fmt"
	"strings"

	"github.com/5w1tchy/catalog-api/internal/models"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Contains builds an ILIKE pattern matching s anywhere, with wildcards in s escaped.
func Contains(s string) string {
	return "%" + likeEscaper.Replace(strings.TrimSpace(s)) + "%"
}

// Sets accumulates "col = $n" assignments for a partial UPDATE.
type Sets struct {
	cols []string
	Args []any
}

// Arg appends v and returns its placeholder.
func (s *Sets) Arg(v any) string {
	s.Args = append(s.Args, v)
	return fmt.Sprintf("$%d", len(s.Args))
}

func (s *Sets) Add(col string, v any) {
	s.cols = append(s.cols, col+" = "+s.Arg(v))
}

func (s *Sets) Len() int { return len(s.cols) }

// SQL renders the SET list, always touching updated_at.
func (s *Sets) SQL() string {
	cols := append(s.cols[:len(s.cols):len(s.cols)], "updated_at = now()")
	return strings.Join(cols, ", ")
}

// AddField records f when supplied; an explicit null writes NULL.
func AddField[T any](s *Sets, col string, f models.Field[T]) {
	switch {
	case !f.Set:
	case f.Null:
		s.Add(col, nil)
	default:
		s.Add(col, f.Value)
	}
}
