package catalog

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"circles-backend/internal/model"
)

type predicate func(p *model.Project) bool

// Filter returns the projects matching every active criterion, ordered by
// c.SortBy. The input slice is never modified and the result is never nil.
func Filter(projects []model.Project, c Criteria) []model.Project {
	matches := make([]model.Project, 0, len(projects))
	if c.FundingRange != nil && c.FundingRange.Malformed() {
		return matches
	}

	preds := c.predicates()
	for i := range projects {
		if matchAll(&projects[i], preds) {
			matches = append(matches, projects[i])
		}
	}

	Sort(matches, c.SortBy, c.PercentageSource)
	return matches
}

func matchAll(p *model.Project, preds []predicate) bool {
	for _, pred := range preds {
		if !pred(p) {
			return false
		}
	}
	return true
}

func (c Criteria) predicates() []predicate {
	var preds []predicate

	if active(c.Category) {
		preds = append(preds, func(p *model.Project) bool { return p.Category == c.Category })
	}
	if active(c.Type) {
		preds = append(preds, func(p *model.Project) bool { return string(p.Type) == c.Type })
	}
	if active(c.Language) {
		preds = append(preds, func(p *model.Project) bool { return p.Language == c.Language })
	}
	if active(c.Genre) {
		preds = append(preds, func(p *model.Project) bool { return p.Genre == c.Genre })
	}
	if c.FundingRange != nil {
		r := *c.FundingRange
		preds = append(preds, func(p *model.Project) bool {
			return r.Contains(int64(fundedPercentage(p, c.PercentageSource)))
		})
	}
	if needle := strings.ToLower(c.SearchText); needle != "" {
		preds = append(preds, func(p *model.Project) bool { return MatchesSearch(p, needle) })
	}
	return preds
}

// MatchesSearch reports whether any searchable field of p contains the
// already lower-cased needle.
func MatchesSearch(p *model.Project, needle string) bool {
	for _, field := range [...]string{p.Title, p.Description, p.Genre, p.Director, p.Artist} {
		if field != "" && strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func fundedPercentage(p *model.Project, src PercentageSource) int {
	if src == PercentageComputed {
		return p.ComputedFundedPercentage()
	}
	return p.FundedPercentage
}

// Sort orders projects in place, stably. Unknown orders sort as trending.
func Sort(projects []model.Project, order SortOrder, src PercentageSource) {
	slices.SortStableFunc(projects, comparator(order, src))
}

func comparator(order SortOrder, src PercentageSource) func(a, b model.Project) int {
	switch order {
	case SortNewest:
		return func(a, b model.Project) int { return b.CreatedAt.Compare(a.CreatedAt) }
	case SortFundingLow:
		return func(a, b model.Project) int {
			return cmp.Compare(fundedPercentage(&a, src), fundedPercentage(&b, src))
		}
	case SortEndingSoon:
		return func(a, b model.Project) int { return cmp.Compare(daysLeftKey(&a), daysLeftKey(&b)) }
	case SortRating:
		return func(a, b model.Project) int { return cmp.Compare(ratingKey(&b), ratingKey(&a)) }
	case SortAmountHigh:
		return func(a, b model.Project) int { return cmp.Compare(b.TargetAmount, a.TargetAmount) }
	case SortAmountLow:
		return func(a, b model.Project) int { return cmp.Compare(a.TargetAmount, b.TargetAmount) }
	default: // trending, funding-high
		return func(a, b model.Project) int {
			return cmp.Compare(fundedPercentage(&b, src), fundedPercentage(&a, src))
		}
	}
}

// projects without a parseable time left go last
func daysLeftKey(p *model.Project) int {
	if d, ok := p.DaysLeft(); ok {
		return d
	}
	return math.MaxInt
}

func ratingKey(p *model.Project) float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

// Paginate returns the window [offset, offset+limit) of items, clamped to the
// slice. A non-positive limit keeps everything after offset.
func Paginate[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
