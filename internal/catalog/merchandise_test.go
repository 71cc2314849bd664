package catalog

import (
	"net/url"
	"testing"
	"time"

	"circles-backend/internal/model"

	"github.com/stretchr/testify/require"
)

func merchIDs(items []model.MerchandiseItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func fixtureMerch() []model.MerchandiseItem {
	return []model.MerchandiseItem{
		{ID: "m1", Title: "Pathaan Hoodie", Category: "apparel", Price: 2499, PriceType: "fixed", Availability: "in-stock",
			Rating: 4.5, Popularity: 80, Tags: []string{"pathaan", "winter"}, ReleaseDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
		{ID: "m2", Title: "Signed Poster", Category: "collectibles", Price: 9999, PriceType: "auction", Availability: "limited",
			Rating: 4.9, Popularity: 95, IsTrending: true, ReleaseDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "m3", Title: "Soundtrack Vinyl", Category: "collectibles", Price: 3499, PriceType: "fixed", Availability: "pre-order",
			Rating: 4.7, Popularity: 60, Description: "Rahman symphony on vinyl", ReleaseDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "m4", Title: "Fan Sticker", Category: "accessories", Price: 0, PriceType: "free", Availability: "in-stock",
			Rating: 4.1, Popularity: 95, IsTrending: true, ReleaseDate: time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func TestFilterMerchandise(t *testing.T) {
	items := fixtureMerch()

	require.Equal(t, []string{"m2", "m4", "m1", "m3"}, merchIDs(FilterMerchandise(items, MerchCriteria{})))
	require.Equal(t, []string{"m3", "m2", "m1", "m4"}, merchIDs(FilterMerchandise(items, MerchCriteria{SortBy: MerchSortNewest})))
	require.Equal(t, []string{"m4", "m1", "m3", "m2"}, merchIDs(FilterMerchandise(items, MerchCriteria{SortBy: MerchSortPriceLow})))
	require.Equal(t, []string{"m2", "m3", "m1", "m4"}, merchIDs(FilterMerchandise(items, MerchCriteria{SortBy: MerchSortPriceHigh})))
	require.Equal(t, []string{"m2", "m3", "m1", "m4"}, merchIDs(FilterMerchandise(items, MerchCriteria{SortBy: MerchSortRating})))
	require.Equal(t, []string{"m2", "m4", "m1", "m3"}, merchIDs(FilterMerchandise(items, MerchCriteria{SortBy: MerchSortTrending})))

	got := FilterMerchandise(items, MerchCriteria{Category: "collectibles", SortBy: MerchSortPriceLow})
	require.Equal(t, []string{"m3", "m2"}, merchIDs(got))

	// tags and description are searched
	require.Equal(t, []string{"m1"}, merchIDs(FilterMerchandise(items, MerchCriteria{SearchText: "WINTER"})))
	require.Equal(t, []string{"m3"}, merchIDs(FilterMerchandise(items, MerchCriteria{SearchText: "rahman"})))

	got = FilterMerchandise(items, MerchCriteria{PriceRange: &Range{Low: 1000, High: 4000}, Availability: "in-stock"})
	require.Equal(t, []string{"m1"}, merchIDs(got))

	got = FilterMerchandise(items, MerchCriteria{PriceRange: &Range{Low: 5000, High: 10}})
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestParseMerchCriteria(t *testing.T) {
	c := ParseMerchCriteria(url.Values{"priceMin": {"500"}, "priceType": {"fixed"}, "sortBy": {"price-high"}})
	require.Equal(t, "fixed", c.PriceType)
	require.Equal(t, MerchSortPriceHigh, c.SortBy)
	require.NotNil(t, c.PriceRange)
	require.Equal(t, int64(500), c.PriceRange.Low)
	require.True(t, c.PriceRange.Contains(1_000_000_000))

	require.Nil(t, ParseMerchCriteria(url.Values{}).PriceRange)
}
