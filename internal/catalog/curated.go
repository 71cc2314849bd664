package catalog

import (
	"slices"

	"circles-backend/internal/model"
)

const (
	curatedRowSize = 10
	featuredSize   = 7
	trendingFloor  = 70
)

// Row is one named shelf of the browse page.
type Row struct {
	Key      string          `json:"key"`
	Title    string          `json:"title"`
	Urgent   bool            `json:"urgent,omitempty"`
	Projects []model.Project `json:"projects"`
}

type shelf struct {
	key    string
	title  string
	urgent bool
	match  func(p *model.Project) bool
	sorted bool
}

func daysLeftBelow(p *model.Project, n int) bool {
	d, ok := p.DaysLeft()
	return ok && d < n
}

var shelves = []shelf{
	{key: "trending", title: "Trending Now", sorted: true,
		match: func(p *model.Project) bool { return p.FundedPercentage > trendingFloor }},
	{key: "ending-soon", title: "Ending Soon - Last Chance!", urgent: true,
		match: func(p *model.Project) bool { return daysLeftBelow(p, 8) }},
	{key: "bollywood", title: "Bollywood Blockbusters",
		match: func(p *model.Project) bool { return p.Type == model.ProjectTypeFilm && p.Category == "Bollywood" }},
	{key: "music", title: "Music & Albums",
		match: func(p *model.Project) bool { return p.Type == model.ProjectTypeMusic }},
	{key: "webseries", title: "Binge-Worthy Web Series",
		match: func(p *model.Project) bool { return p.Type == model.ProjectTypeWebseries }},
	{key: "regional", title: "Regional Cinema Gems",
		match: func(p *model.Project) bool { return p.Category == "Regional" }},
	{key: "high-rated", title: "Highly Rated Projects",
		match: func(p *model.Project) bool { return p.Rating != nil && *p.Rating >= 4.5 }},
	{key: "new-releases", title: "Fresh Releases",
		match: func(p *model.Project) bool { return daysLeftBelow(p, 15) }},
	{key: "hollywood", title: "Hollywood International",
		match: func(p *model.Project) bool { return p.Category == "Hollywood" }},
}

// CuratedRows builds the browse shelves from public projects, led by the
// featured carousel. Shelves keep input order unless they rank by funding,
// are capped at ten entries, and empty shelves are left out.
func CuratedRows(projects []model.Project) []Row {
	rows := make([]Row, 0, len(shelves)+1)

	featured := slices.Clone(projects)
	Sort(featured, SortFundingHigh, PercentageStored)
	if len(featured) > 0 {
		rows = append(rows, Row{Key: "featured", Title: "Featured", Projects: Paginate(featured, featuredSize, 0)})
	}

	for _, sh := range shelves {
		var matches []model.Project
		for i := range projects {
			if sh.match(&projects[i]) {
				matches = append(matches, projects[i])
			}
		}
		if len(matches) == 0 {
			continue
		}
		if sh.sorted {
			Sort(matches, SortFundingHigh, PercentageStored)
		}
		rows = append(rows, Row{
			Key:      sh.key,
			Title:    sh.title,
			Urgent:   sh.urgent,
			Projects: Paginate(matches, curatedRowSize, 0),
		})
	}
	return rows
}
