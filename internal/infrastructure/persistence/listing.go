package persistence

import (
	"strings"

	"github.com/state244/hub/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// sortable whitelists the columns a listing may be ordered by
type sortable struct {
	columns  map[string]struct{}
	fallback string
}

func newSortable(fallback string, columns ...string) sortable {
	s := sortable{columns: make(map[string]struct{}, len(columns)+1), fallback: fallback}
	s.columns[fallback] = struct{}{}
	for _, c := range columns {
		s.columns[c] = struct{}{}
	}
	return s
}

// order resolves a requested column and direction. Unknown columns use the
// fallback and anything but "asc" sorts newest first.
func (s sortable) order(column, dir string) clause.OrderByColumn {
	column = strings.TrimSpace(column)
	if _, ok := s.columns[column]; !ok {
		column = s.fallback
	}
	return clause.OrderByColumn{
		Column: clause.Column{Name: column},
		Desc:   !strings.EqualFold(strings.TrimSpace(dir), "asc"),
	}
}

var (
	profileSort     = newSortable("created_at", "updated_at", "username", "email", "role")
	applicationSort = newSortable("created_at", "updated_at", "player_name", "power", "furnace_level", "status")
	messageSort     = newSortable("created_at", "status", "subject")
)

// paginate applies the normalized filter's ordering and window
func paginate(q *gorm.DB, f shared.Filter, s sortable) *gorm.DB {
	n := f.Normalize()
	return q.Order(s.order(n.OrderBy, n.OrderDir)).
		Offset(n.Offset()).
		Limit(n.PageSize)
}

// keywordPattern builds a case-insensitive LIKE pattern
func keywordPattern(keyword string) string {
	r := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)
	return "%" + strings.ToLower(r.Replace(strings.TrimSpace(keyword))) + "%"
}
