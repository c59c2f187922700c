package query

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"gorm.io/gorm"
)

// Pagination is the metadata returned next to every page of results.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// Condition is a forced scoping predicate supplied by the invoking
// repository (user_id = caller, team_id = resolved team). It is ANDed after
// the attacker-controlled filters, so it can never be overridden.
type Condition struct {
	Column string
	Value  any
}

// Run executes the plan against the model's collection: a count query and
// the bounded, sorted, projected fetch run concurrently on independent
// sessions. The two may observe slightly different states under concurrent
// writes; that is accepted.
func Run(ctx context.Context, db *gorm.DB, model any, plan *Plan, scope []Condition, dest any) (Pagination, error) {
	where := func(tx *gorm.DB) *gorm.DB {
		for _, f := range plan.Filters {
			tx = applyFilter(tx, f)
		}
		if plan.Search != nil {
			tx = applySearch(tx, plan.Search)
		}
		for _, c := range scope {
			tx = tx.Where(c.Column+" = ?", c.Value)
		}
		return tx
	}

	var (
		wg       sync.WaitGroup
		total    int64
		countErr error
		fetchErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		countErr = where(db.WithContext(ctx).Model(model)).Count(&total).Error
	}()
	go func() {
		defer wg.Done()
		tx := where(db.WithContext(ctx).Model(model))
		if len(plan.Select) > 0 {
			tx = tx.Select(plan.Select)
		}
		for _, rel := range plan.Preloads {
			tx = tx.Preload(rel)
		}
		tx = applySort(tx, plan.Sort)
		fetchErr = tx.Offset(plan.Offset()).Limit(plan.Limit).Find(dest).Error
	}()
	wg.Wait()

	if countErr != nil {
		return Pagination{}, countErr
	}
	if fetchErr != nil {
		return Pagination{}, fetchErr
	}

	totalPages := int((total + int64(plan.Limit) - 1) / int64(plan.Limit))
	return Pagination{
		Page:       plan.Page,
		Limit:      plan.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    plan.Page < totalPages,
		HasPrev:    plan.Page > 1,
	}, nil
}

func applyFilter(tx *gorm.DB, f Filter) *gorm.DB {
	switch f.Op {
	case OpEq:
		if f.Value == nil {
			return tx.Where(f.Column + " IS NULL")
		}
		return tx.Where(f.Column+" = ?", f.Value)
	case OpNe:
		if f.Value == nil {
			return tx.Where(f.Column + " IS NOT NULL")
		}
		return tx.Where(f.Column+" <> ?", f.Value)
	case OpGt:
		return tx.Where(f.Column+" > ?", f.Value)
	case OpGte:
		return tx.Where(f.Column+" >= ?", f.Value)
	case OpLt:
		return tx.Where(f.Column+" < ?", f.Value)
	case OpLte:
		return tx.Where(f.Column+" <= ?", f.Value)
	case OpIn:
		return tx.Where(f.Column+" IN ?", f.Value)
	case OpNotIn:
		return tx.Where(f.Column+" NOT IN ?", f.Value)
	case OpContains:
		return tx.Where(f.Column+" LIKE ?", "%"+fmt.Sprint(f.Value)+"%")
	}
	return tx
}

// applySearch builds the OR-combination of case-insensitive contains
// predicates. Columns come from the schema allow-list, never the request.
func applySearch(tx *gorm.DB, s *SearchClause) *gorm.DB {
	conds := make([]string, 0, len(s.Columns))
	args := make([]any, 0, len(s.Columns))
	pattern := "%" + strings.ToLower(s.Term) + "%"
	for _, col := range s.Columns {
		conds = append(conds, "LOWER("+col+") LIKE ?")
		args = append(args, pattern)
	}
	return tx.Where("("+strings.Join(conds, " OR ")+")", args...)
}

// applySort appends an ascending id tiebreak unless id is already a sort
// key, so multi-key sorts resolve remaining ties in insertion order.
func applySort(tx *gorm.DB, keys []SortKey) *gorm.DB {
	hasID := false
	for _, k := range keys {
		dir := " ASC"
		if k.Desc {
			dir = " DESC"
		}
		tx = tx.Order(k.Column + dir)
		if k.Column == "id" {
			hasID = true
		}
	}
	if !hasID {
		tx = tx.Order("id ASC")
	}
	return tx
}
