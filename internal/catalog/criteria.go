package catalog

import (
	"net/url"
	"strconv"
	"strings"
)

type SortOrder string

const (
	SortTrending    SortOrder = "trending"
	SortNewest      SortOrder = "newest"
	SortFundingHigh SortOrder = "funding-high"
	SortFundingLow  SortOrder = "funding-low"
	SortEndingSoon  SortOrder = "ending-soon"
	SortRating      SortOrder = "rating"
	SortAmountHigh  SortOrder = "amount-high"
	SortAmountLow   SortOrder = "amount-low"
)

var sortOrders = []SortOrder{
	SortTrending, SortNewest, SortFundingHigh, SortFundingLow,
	SortEndingSoon, SortRating, SortAmountHigh, SortAmountLow,
}

// SortOrders returns every supported project sort order.
func SortOrders() []SortOrder {
	out := make([]SortOrder, len(sortOrders))
	copy(out, sortOrders)
	return out
}

// PercentageSource picks which funded percentage drives range filters and
// funding sorts: the stored value or the one derived from raised/target.
type PercentageSource string

const (
	PercentageStored   PercentageSource = "stored"
	PercentageComputed PercentageSource = "computed"
)

// Range is an inclusive [Low, High] bound.
type Range struct {
	Low  int64 `json:"low"`
	High int64 `json:"high"`
}

func (r Range) Contains(v int64) bool {
	return v >= r.Low && v <= r.High
}

func (r Range) Malformed() bool {
	return r.Low > r.High
}

// Criteria narrows and orders a project list. Empty or "all" fields are
// unconstrained. Limit 0 means no page limit.
type Criteria struct {
	SearchText       string           `json:"searchText,omitempty"`
	Category         string           `json:"category,omitempty"`
	Type             string           `json:"type,omitempty"`
	Language         string           `json:"language,omitempty"`
	Genre            string           `json:"genre,omitempty"`
	FundingRange     *Range           `json:"fundingRange,omitempty"`
	SortBy           SortOrder        `json:"sortBy,omitempty"`
	PercentageSource PercentageSource `json:"percentageSource,omitempty"`
	Limit            int              `json:"limit,omitempty"`
	Offset           int              `json:"offset,omitempty"`
}

func active(v string) bool {
	return v != "" && !strings.EqualFold(v, "all")
}

// ParseCriteria reads criteria from query parameters. A funding bound given
// on only one side is completed with 0 or 100. Negative or malformed paging
// values are ignored.
func ParseCriteria(q url.Values) Criteria {
	c := Criteria{
		SearchText:       q.Get("q"),
		Category:         q.Get("category"),
		Type:             q.Get("type"),
		Language:         q.Get("language"),
		Genre:            q.Get("genre"),
		SortBy:           SortOrder(q.Get("sortBy")),
		PercentageSource: PercentageSource(q.Get("percentageSource")),
	}
	if c.SearchText == "" {
		c.SearchText = q.Get("search")
	}

	low, hasLow := parseInt(q.Get("fundingMin"))
	high, hasHigh := parseInt(q.Get("fundingMax"))
	if hasLow || hasHigh {
		if !hasLow {
			low = 0
		}
		if !hasHigh {
			high = 100
		}
		c.FundingRange = &Range{Low: low, High: high}
	}
	if v, ok := parseInt(q.Get("limit")); ok && v > 0 {
		c.Limit = int(v)
	}
	if v, ok := parseInt(q.Get("offset")); ok && v > 0 {
		c.Offset = int(v)
	}
	return c
}

func parseInt(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
