package catalog

import (
	"fmt"
	"strings"
	"testing"

	"circles-backend/internal/model"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func genProject() gopter.Gen {
	return gopter.CombineGens(
		gen.OneConstOf("Bollywood", "Hollywood", "Regional"),
		gen.OneConstOf(model.ProjectTypeFilm, model.ProjectTypeMusic, model.ProjectTypeWebseries),
		gen.OneConstOf("Hindi", "English", "Tamil"),
		gen.OneConstOf("Drama", "Action", "Indie"),
		gen.IntRange(0, 120),
		gen.AlphaString(),
		gen.Int64Range(1, 1000),
		gen.IntRange(0, 30),
	).Map(func(v []interface{}) model.Project {
		return model.Project{
			Category:         v[0].(string),
			Type:             v[1].(model.ProjectType),
			Language:         v[2].(string),
			Genre:            v[3].(string),
			FundedPercentage: v[4].(int),
			Title:            v[5].(string),
			TargetAmount:     v[6].(int64),
			TimeLeft:         fmt.Sprintf("%d days", v[7].(int)),
		}
	})
}

func genProjects() gopter.Gen {
	return gen.SliceOf(genProject()).Map(func(ps []model.Project) []model.Project {
		for i := range ps {
			ps[i].ID = fmt.Sprintf("p%d", i)
		}
		return ps
	})
}

func genCriteria() gopter.Gen {
	orders := make([]interface{}, 0, len(sortOrders)+1)
	for _, o := range sortOrders {
		orders = append(orders, o)
	}
	orders = append(orders, SortOrder(""))

	return gopter.CombineGens(
		gen.OneConstOf("", "all", "Bollywood", "Regional"),
		gen.OneConstOf("", "film", "music"),
		gen.OneConstOf("", "Hindi", "Tamil"),
		gen.OneConstOf("", "Drama"),
		gen.Bool(),
		gen.IntRange(0, 100),
		gen.IntRange(0, 100),
		gen.OneConstOf("", "a", "B", "xy"),
		gen.OneConstOf(orders...),
	).Map(func(v []interface{}) Criteria {
		c := Criteria{
			Category:   v[0].(string),
			Type:       v[1].(string),
			Language:   v[2].(string),
			Genre:      v[3].(string),
			SearchText: v[7].(string),
			SortBy:     v[8].(SortOrder),
		}
		if v[4].(bool) {
			c.FundingRange = &Range{Low: int64(v[5].(int)), High: int64(v[6].(int))}
		}
		return c
	})
}

func matchesEach(p *model.Project, c Criteria) bool {
	if active(c.Category) && p.Category != c.Category {
		return false
	}
	if active(c.Type) && string(p.Type) != c.Type {
		return false
	}
	if active(c.Language) && p.Language != c.Language {
		return false
	}
	if active(c.Genre) && p.Genre != c.Genre {
		return false
	}
	if c.FundingRange != nil {
		v := int64(p.FundedPercentage)
		if v < c.FundingRange.Low || v > c.FundingRange.High {
			return false
		}
	}
	if c.SearchText != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(c.SearchText)) {
		return false
	}
	return true
}

func TestFilterProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("result is exactly the conjunction of active predicates", prop.ForAll(
		func(projects []model.Project, c Criteria) bool {
			got := Filter(projects, c)
			if c.FundingRange != nil && c.FundingRange.Malformed() {
				return len(got) == 0
			}
			want := 0
			for i := range projects {
				if matchesEach(&projects[i], c) {
					want++
				}
			}
			if len(got) != want {
				return false
			}
			for i := range got {
				if !matchesEach(&got[i], c) {
					return false
				}
			}
			return true
		},
		genProjects(), genCriteria(),
	))

	properties.Property("equal sort keys keep input order", prop.ForAll(
		func(projects []model.Project, c Criteria) bool {
			position := make(map[string]int, len(projects))
			for i, p := range projects {
				position[p.ID] = i
			}
			got := Filter(projects, c)
			cmpFn := comparator(c.SortBy, c.PercentageSource)
			for i := 1; i < len(got); i++ {
				d := cmpFn(got[i-1], got[i])
				if d > 0 {
					return false
				}
				if d == 0 && position[got[i-1].ID] > position[got[i].ID] {
					return false
				}
			}
			return true
		},
		genProjects(), genCriteria(),
	))

	properties.Property("filtering is deterministic", prop.ForAll(
		func(projects []model.Project, c Criteria) bool {
			a, b := Filter(projects, c), Filter(projects, c)
			if len(a) != len(b) {
				return false
			}
			for i := range a {
				if a[i].ID != b[i].ID {
					return false
				}
			}
			return true
		},
		genProjects(), genCriteria(),
	))

	properties.Property("search ignores case", prop.ForAll(
		func(projects []model.Project, needle string) bool {
			upper := Filter(projects, Criteria{SearchText: strings.ToUpper(needle)})
			lower := Filter(projects, Criteria{SearchText: strings.ToLower(needle)})
			return len(upper) == len(lower)
		},
		genProjects(), gen.AlphaString(),
	))

	properties.Property("empty input yields empty output", prop.ForAll(
		func(c Criteria) bool {
			got := Filter(nil, c)
			return got != nil && len(got) == 0
		},
		genCriteria(),
	))

	properties.TestingRun(t)
}
