package catalog

import (
	"net/url"
	"testing"
	"time"

	"circles-backend/internal/model"

	"github.com/stretchr/testify/require"
)

func rating(v float64) *float64 { return &v }

func fixtureProjects() []model.Project {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	return []model.Project{
		{
			ID: "1", Title: "Pathaan 2", Type: model.ProjectTypeFilm, Category: "Bollywood", Language: "Hindi",
			Genre: "Action", Director: "Siddharth Anand", Description: "High-octane espionage sequel.",
			FundedPercentage: 75, TargetAmount: 50000000, RaisedAmount: 37500000,
			Rating: rating(4.5), TimeLeft: "8 days", CreatedAt: day(1),
		},
		{
			ID: "2", Title: "Symphony of India", Type: model.ProjectTypeMusic, Category: "Classical", Language: "Multilingual",
			Genre: "Fusion", Artist: "A.R. Rahman", Description: "Classical fusion album.",
			FundedPercentage: 60, TargetAmount: 20000000, RaisedAmount: 12000000,
			Rating: rating(4.8), TimeLeft: "3 days", CreatedAt: day(5),
		},
		{
			ID: "3", Title: "Dangal 2", Type: model.ProjectTypeFilm, Category: "Bollywood", Language: "Hindi",
			Genre: "Drama", Director: "Nitesh Tiwari", Description: "Wrestling returns.",
			FundedPercentage: 90, TargetAmount: 80000000, RaisedAmount: 40000000,
			TimeLeft: "", CreatedAt: day(3),
		},
		{
			ID: "4", Title: "The Last Village", Type: model.ProjectTypeFilm, Category: "Regional", Language: "Tamil",
			Genre: "Drama", Director: "Mani Ratnam", Description: "A village fights for its traditions.",
			FundedPercentage: 45, TargetAmount: 30000000, RaisedAmount: 13500000,
			Rating: rating(4.3), TimeLeft: "9 days", CreatedAt: day(2),
		},
		{
			ID: "5", Title: "Sacred Games 3", Type: model.ProjectTypeWebseries, Category: "Crime Drama", Language: "Hindi",
			Genre: "Drama", Director: "Anurag Kashyap", Description: "Mumbai underworld.",
			FundedPercentage: 90, TargetAmount: 80000000, RaisedAmount: 72000000,
			Rating: rating(4.7), TimeLeft: "7 days", CreatedAt: day(4),
		},
	}
}

func ids(projects []model.Project) []string {
	out := make([]string, len(projects))
	for i, p := range projects {
		out[i] = p.ID
	}
	return out
}

func titles(projects []model.Project) []string {
	out := make([]string, len(projects))
	for i, p := range projects {
		out[i] = p.Title
	}
	return out
}

func TestFilter_FundingHighScenario(t *testing.T) {
	projects := []model.Project{
		{Title: "Pathaan 2", FundedPercentage: 75},
		{Title: "Barbie", FundedPercentage: 83},
	}
	got := Filter(projects, Criteria{SortBy: SortFundingHigh})
	require.Equal(t, []string{"Barbie", "Pathaan 2"}, titles(got))
}

func TestFilter_EmptyInput(t *testing.T) {
	got := Filter(nil, Criteria{SearchText: "x", Category: "Bollywood"})
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	projects := fixtureProjects()
	before := ids(projects)
	_ = Filter(projects, Criteria{SortBy: SortAmountHigh})
	require.Equal(t, before, ids(projects))
}

func TestFilter_Search(t *testing.T) {
	projects := fixtureProjects()

	upper := Filter(projects, Criteria{SearchText: "DANGAL"})
	lower := Filter(projects, Criteria{SearchText: "dangal"})
	require.Equal(t, []string{"3"}, ids(upper))
	require.Equal(t, ids(upper), ids(lower))

	// director and artist are searchable
	require.Equal(t, []string{"4"}, ids(Filter(projects, Criteria{SearchText: "ratnam"})))
	require.Equal(t, []string{"2"}, ids(Filter(projects, Criteria{SearchText: "rahman"})))
	// genre and description too
	require.ElementsMatch(t, []string{"3", "4", "5"}, ids(Filter(projects, Criteria{SearchText: "drama"})))
	require.Equal(t, []string{"5"}, ids(Filter(projects, Criteria{SearchText: "underworld"})))
	require.Empty(t, Filter(projects, Criteria{SearchText: "nothing like this"}))
}

func TestFilter_EqualityFiltersAreConjunctive(t *testing.T) {
	projects := fixtureProjects()

	got := Filter(projects, Criteria{Category: "Bollywood", Genre: "Drama"})
	require.Equal(t, []string{"3"}, ids(got))

	got = Filter(projects, Criteria{Type: "film", Language: "Hindi", SortBy: SortNewest})
	require.Equal(t, []string{"3", "1"}, ids(got))

	got = Filter(projects, Criteria{Category: "all", Type: "all", Language: "all", Genre: "all"})
	require.Len(t, got, len(projects))

	// equality is exact
	require.Empty(t, Filter(projects, Criteria{Category: "bollywood"}))
}

func TestFilter_FundingRange(t *testing.T) {
	projects := fixtureProjects()

	got := Filter(projects, Criteria{FundingRange: &Range{Low: 60, High: 75}, SortBy: SortFundingLow})
	require.Equal(t, []string{"2", "1"}, ids(got))

	// stored vs computed: Dangal 2 is stored 90 but computes to 50
	got = Filter(projects, Criteria{FundingRange: &Range{Low: 50, High: 50}})
	require.Empty(t, got)
	got = Filter(projects, Criteria{FundingRange: &Range{Low: 50, High: 50}, PercentageSource: PercentageComputed})
	require.Equal(t, []string{"3"}, ids(got))

	require.Empty(t, Filter(projects, Criteria{FundingRange: &Range{Low: 80, High: 20}}))
}

func TestFilter_SortOrders(t *testing.T) {
	projects := fixtureProjects()
	tests := []struct {
		order SortOrder
		want  []string
	}{
		{SortTrending, []string{"3", "5", "1", "2", "4"}},
		{"", []string{"3", "5", "1", "2", "4"}},
		{"unknown", []string{"3", "5", "1", "2", "4"}},
		{SortFundingHigh, []string{"3", "5", "1", "2", "4"}},
		{SortFundingLow, []string{"4", "2", "1", "3", "5"}},
		{SortNewest, []string{"2", "5", "3", "4", "1"}},
		{SortEndingSoon, []string{"2", "5", "1", "4", "3"}},
		{SortRating, []string{"2", "5", "1", "4", "3"}},
		{SortAmountHigh, []string{"3", "5", "1", "4", "2"}},
		{SortAmountLow, []string{"2", "4", "1", "3", "5"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			require.Equal(t, tt.want, ids(Filter(projects, Criteria{SortBy: tt.order})))
		})
	}
}

func TestFilter_ComputedTrending(t *testing.T) {
	got := Filter(fixtureProjects(), Criteria{SortBy: SortTrending, PercentageSource: PercentageComputed})
	// computed: 1=75, 2=60, 3=50, 4=45, 5=90
	require.Equal(t, []string{"5", "1", "2", "3", "4"}, ids(got))
}

func TestGroupByCategory(t *testing.T) {
	groups := GroupByCategory(fixtureProjects())
	require.Equal(t, []string{"Bollywood", "Classical", "Regional", "Crime Drama"}, groups.Categories())
	require.Equal(t, []string{"1", "3"}, ids(groups.Get("Bollywood")))
	require.Nil(t, groups.Get("Hollywood"))
	require.Len(t, groups.Map(), 4)

	require.Empty(t, GroupByCategory(nil))
}

func TestRows(t *testing.T) {
	projects := fixtureProjects()

	rows := Rows(projects, Criteria{SearchText: "drama"})
	require.Len(t, rows, 1)
	require.Equal(t, SearchResultsGroup, rows[0].Category)
	require.Len(t, rows[0].Projects, 3)

	rows = Rows(projects, Criteria{Type: "film", SortBy: SortFundingHigh})
	require.Equal(t, []string{"Bollywood", "Regional"}, rows.Categories())
	require.Equal(t, []string{"3", "1"}, ids(rows.Get("Bollywood")))
}

func TestParseCriteria(t *testing.T) {
	c := ParseCriteria(url.Values{
		"q":                {"Dangal"},
		"category":         {"Bollywood"},
		"fundingMin":       {"40"},
		"sortBy":           {"ending-soon"},
		"percentageSource": {"computed"},
	})
	require.Equal(t, "Dangal", c.SearchText)
	require.Equal(t, "Bollywood", c.Category)
	require.Equal(t, &Range{Low: 40, High: 100}, c.FundingRange)
	require.Equal(t, SortEndingSoon, c.SortBy)
	require.Equal(t, PercentageComputed, c.PercentageSource)

	c = ParseCriteria(url.Values{"search": {"x"}, "fundingMax": {"bad"}})
	require.Equal(t, "x", c.SearchText)
	require.Nil(t, c.FundingRange)
}
