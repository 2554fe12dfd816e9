package domain

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidPriceRange = errors.New("invalid_price_range")

// Predicate is a single SQL condition with its bind arguments. Predicates
// built from one SearchQuery combine with AND.
type Predicate struct {
	Expr string
	Args []any
}

// SearchQuery carries the raw filter parameters of a product search.
// Options maps an option-group id to the accepted values for that group.
type SearchQuery struct {
	Match       string
	CategoryIDs string
	PriceRange  string
	Options     map[int64][]string
}

// Predicates translates the query into strongly-typed predicates, rejecting
// malformed input before anything reaches the persistence layer.
func (q SearchQuery) Predicates() ([]Predicate, error) {
	var preds []Predicate

	if match := strings.TrimSpace(q.Match); match != "" {
		needle := "%" + strings.ToLower(match) + "%"
		preds = append(preds, Predicate{
			Expr: "(LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ?)",
			Args: []any{needle, needle},
		})
	}

	if ids := parseCategoryIDs(q.CategoryIDs); len(ids) > 0 {
		preds = append(preds, Predicate{
			Expr: "EXISTS (SELECT 1 FROM product_categories pc WHERE pc.product_id = products.id AND pc.category_id IN ?)",
			Args: []any{ids},
		})
	}

	if rng := strings.TrimSpace(q.PriceRange); rng != "" {
		min, max, err := parsePriceRange(rng)
		if err != nil {
			return nil, err
		}
		preds = append(preds, Predicate{
			Expr: "products.price BETWEEN ? AND ?",
			Args: []any{min, max},
		})
	}

	for _, optionID := range sortedOptionIDs(q.Options) {
		pred, ok := optionPredicate(optionID, q.Options[optionID])
		if ok {
			preds = append(preds, pred)
		}
	}

	return preds, nil
}

// parseCategoryIDs drops malformed entries individually instead of failing
// the whole filter.
func parseCategoryIDs(raw string) []int64 {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func parsePriceRange(raw string) (decimal.Decimal, decimal.Decimal, error) {
	parts := strings.Split(raw, "-")
	if len(parts) != 2 {
		return decimal.Decimal{}, decimal.Decimal{}, ErrInvalidPriceRange
	}
	min, err := decimal.NewFromString(strings.TrimSpace(parts[0]))
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, ErrInvalidPriceRange
	}
	max, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, ErrInvalidPriceRange
	}
	if min.GreaterThan(max) {
		return decimal.Decimal{}, decimal.Decimal{}, ErrInvalidPriceRange
	}
	return min, max, nil
}

// optionPredicate matches products owning option group optionID whose value
// set intersects values. Values within one group combine with OR.
func optionPredicate(optionID int64, values []string) (Predicate, bool) {
	var likes []string
	args := []any{optionID}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		likes = append(likes, `po."values" LIKE ?`)
		args = append(args, "%"+v+"%")
	}
	if len(likes) == 0 {
		return Predicate{}, false
	}
	expr := "EXISTS (SELECT 1 FROM product_options po WHERE po.product_id = products.id AND po.id = ? AND (" +
		strings.Join(likes, " OR ") + "))"
	return Predicate{Expr: expr, Args: args}, true
}

func sortedOptionIDs(options map[int64][]string) []int64 {
	ids := make([]int64, 0, len(options))
	for id := range options {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
