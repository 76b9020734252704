package filter

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func column(name string) clause.Column {
	return clause.Column{Table: clause.CurrentTable, Name: name}
}

func (t Term) expression() clause.Expression {
	col := column(t.Column)
	switch t.Op {
	case OpGte:
		return clause.Gte{Column: col, Value: t.Value}
	case OpLte:
		return clause.Lte{Column: col, Value: t.Value}
	case OpNeq:
		return clause.Neq{Column: col, Value: t.Value}
	case OpLike:
		s, _ := t.Value.(string)
		return clause.Expr{SQL: "LOWER(?) LIKE ?", Vars: []any{col, "%" + strings.ToLower(s) + "%"}}
	default:
		return clause.Eq{Column: col, Value: t.Value}
	}
}

// RankedBy sets the ordering used when the caller asked for none.
// Each expression must render a complete ORDER BY item.
func (q Query) RankedBy(exprs ...clause.Expression) Query {
	q.rank = exprs
	return q
}

// Scope adds the filter predicates to tx.
func (q Query) Scope(tx *gorm.DB) *gorm.DB {
	for _, t := range q.Terms {
		tx = tx.Where(t.expression())
	}
	return tx
}

func orderItem(col string, desc bool) clause.Expression {
	if desc {
		return clause.Expr{SQL: "? DESC", Vars: []any{column(col)}}
	}
	return clause.Expr{SQL: "? ASC", Vars: []any{column(col)}}
}

// Sort adds the requested ordering followed by the primary key, so equal
// sort keys still come back in a stable order.
func (q Query) Sort(tx *gorm.DB) *gorm.DB {
	var items []clause.Expression
	switch {
	case q.Order != nil:
		items = append(items, orderItem(q.Order.Column, q.Order.Desc))
	case len(q.rank) > 0:
		items = append(items, q.rank...)
	}
	pk := q.pk
	if pk == "" {
		pk = "id"
	}
	items = append(items, orderItem(pk, false))
	return tx.Order(clause.OrderBy{Expression: clause.CommaExpression{Exprs: items}})
}

func (q Query) Paginate(tx *gorm.DB) *gorm.DB {
	tx = tx.Offset(q.Page.Offset)
	if q.Page.Limit > 0 {
		tx = tx.Limit(q.Page.Limit)
	}
	return tx
}

// Find counts the rows matching the filter, then loads the requested page
// into dest. tx must already carry its Model and any fixed conditions.
// Scopes such as Preload are applied to the page query only.
func Find(tx *gorm.DB, q Query, dest any, scopes ...func(*gorm.DB) *gorm.DB) (int64, error) {
	base := q.Scope(tx).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return 0, err
	}
	if err := q.Paginate(q.Sort(base)).Scopes(scopes...).Find(dest).Error; err != nil {
		return 0, err
	}
	return total, nil
}
