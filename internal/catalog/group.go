package catalog

import "circles-backend/internal/model"

// SearchResultsGroup is the single row shown while a search is active.
const SearchResultsGroup = "Search Results"

type Group struct {
	Category string          `json:"category"`
	Projects []model.Project `json:"projects"`
}

// Groups keeps category buckets in first-seen order.
type Groups []Group

// Get returns the bucket for category, or nil.
func (g Groups) Get(category string) []model.Project {
	for _, group := range g {
		if group.Category == category {
			return group.Projects
		}
	}
	return nil
}

func (g Groups) Categories() []string {
	out := make([]string, len(g))
	for i, group := range g {
		out[i] = group.Category
	}
	return out
}

// Map flattens the groups; ordering is lost.
func (g Groups) Map() map[string][]model.Project {
	out := make(map[string][]model.Project, len(g))
	for _, group := range g {
		out[group.Category] = group.Projects
	}
	return out
}

// GroupByCategory partitions projects by category, preserving relative order
// inside each bucket.
func GroupByCategory(projects []model.Project) Groups {
	groups := Groups{}
	index := make(map[string]int)
	for _, p := range projects {
		i, ok := index[p.Category]
		if !ok {
			i = len(groups)
			index[p.Category] = i
			groups = append(groups, Group{Category: p.Category})
		}
		groups[i].Projects = append(groups[i].Projects, p)
	}
	return groups
}

// Rows builds the sectioned display: one "Search Results" row while
// searching, category rows otherwise.
func Rows(projects []model.Project, c Criteria) Groups {
	matches := Filter(projects, c)
	if c.SearchText != "" {
		return Groups{{Category: SearchResultsGroup, Projects: matches}}
	}
	return GroupByCategory(matches)
}
