package persistence

import (
	"testing"

	"github.com/state244/hub/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func TestSortable_Order(t *testing.T) {
	tests := []struct {
		name   string
		column string
		dir    string
		want   clause.OrderByColumn
	}{
		{"defaults", "", "", clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: true}},
		{"whitelisted ascending", " power ", "ASC", clause.OrderByColumn{Column: clause.Column{Name: "power"}}},
		{"unknown column", "tracking_code_hash", "asc", clause.OrderByColumn{Column: clause.Column{Name: "created_at"}}},
		{"injection attempt", "power; DROP TABLE profiles", "asc; --", clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, applicationSort.order(tt.column, tt.dir))
		})
	}
}

func TestPaginate(t *testing.T) {
	db := setupTestDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []map[string]any
		return paginate(tx.Table("contact_messages"),
			shared.Filter{Page: 3, PageSize: 10, OrderBy: "subject", OrderDir: "asc"}, messageSort).
			Find(&rows)
	})

	assert.Contains(t, sql, "ORDER BY `subject`")
	assert.Contains(t, sql, "LIMIT 10 OFFSET 20")
}

func TestKeywordPattern(t *testing.T) {
	assert.Equal(t, "%frost%", keywordPattern("  Frost "))
	assert.Equal(t, `%100\%\_win%`, keywordPattern("100%_WIN"))
}
