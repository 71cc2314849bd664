package catalog

import (
	"cmp"
	"net/url"
	"slices"
	"strings"

	"circles-backend/internal/model"
)

type MerchSort string

const (
	MerchSortPopularity MerchSort = "popularity"
	MerchSortNewest     MerchSort = "newest"
	MerchSortPriceLow   MerchSort = "price-low"
	MerchSortPriceHigh  MerchSort = "price-high"
	MerchSortRating     MerchSort = "rating"
	MerchSortTrending   MerchSort = "trending"
)

type MerchCriteria struct {
	SearchText   string    `json:"searchText,omitempty"`
	Category     string    `json:"category,omitempty"`
	Availability string    `json:"availability,omitempty"`
	PriceType    string    `json:"priceType,omitempty"`
	PriceRange   *Range    `json:"priceRange,omitempty"`
	SortBy       MerchSort `json:"sortBy,omitempty"`
}

func ParseMerchCriteria(q url.Values) MerchCriteria {
	c := MerchCriteria{
		SearchText:   q.Get("q"),
		Category:     q.Get("category"),
		Availability: q.Get("availability"),
		PriceType:    q.Get("priceType"),
		SortBy:       MerchSort(q.Get("sortBy")),
	}
	low, hasLow := parseInt(q.Get("priceMin"))
	high, hasHigh := parseInt(q.Get("priceMax"))
	if hasLow || hasHigh {
		if !hasHigh {
			high = 1<<63 - 1
		}
		c.PriceRange = &Range{Low: low, High: high}
	}
	return c
}

// FilterMerchandise is the storefront counterpart of Filter.
func FilterMerchandise(items []model.MerchandiseItem, c MerchCriteria) []model.MerchandiseItem {
	matches := make([]model.MerchandiseItem, 0, len(items))
	if c.PriceRange != nil && c.PriceRange.Malformed() {
		return matches
	}

	needle := strings.ToLower(c.SearchText)
	for _, item := range items {
		if active(c.Category) && item.Category != c.Category {
			continue
		}
		if active(c.Availability) && item.Availability != c.Availability {
			continue
		}
		if active(c.PriceType) && item.PriceType != c.PriceType {
			continue
		}
		if c.PriceRange != nil && !c.PriceRange.Contains(item.Price) {
			continue
		}
		if needle != "" && !merchMatchesSearch(&item, needle) {
			continue
		}
		matches = append(matches, item)
	}

	slices.SortStableFunc(matches, merchComparator(c.SortBy))
	return matches
}

func merchMatchesSearch(item *model.MerchandiseItem, needle string) bool {
	if strings.Contains(strings.ToLower(item.Title), needle) ||
		strings.Contains(strings.ToLower(item.Description), needle) {
		return true
	}
	for _, tag := range item.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func merchComparator(order MerchSort) func(a, b model.MerchandiseItem) int {
	switch order {
	case MerchSortNewest:
		return func(a, b model.MerchandiseItem) int { return b.ReleaseDate.Compare(a.ReleaseDate) }
	case MerchSortPriceLow:
		return func(a, b model.MerchandiseItem) int { return cmp.Compare(a.Price, b.Price) }
	case MerchSortPriceHigh:
		return func(a, b model.MerchandiseItem) int { return cmp.Compare(b.Price, a.Price) }
	case MerchSortRating:
		return func(a, b model.MerchandiseItem) int { return cmp.Compare(b.Rating, a.Rating) }
	case MerchSortTrending:
		return func(a, b model.MerchandiseItem) int { return cmp.Compare(boolKey(b.IsTrending), boolKey(a.IsTrending)) }
	default:
		return func(a, b model.MerchandiseItem) int { return cmp.Compare(b.Popularity, a.Popularity) }
	}
}

func boolKey(b bool) int {
	if b {
		return 1
	}
	return 0
}
