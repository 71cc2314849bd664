package model

import (
	"math"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
)

type ProjectType string

const (
	ProjectTypeFilm      ProjectType = "film"
	ProjectTypeMusic     ProjectType = "music"
	ProjectTypeWebseries ProjectType = "webseries"
)

func (t ProjectType) Valid() bool {
	switch t {
	case ProjectTypeFilm, ProjectTypeMusic, ProjectTypeWebseries:
		return true
	}
	return false
}

type ProjectStatus string

const (
	ProjectStatusActive   ProjectStatus = "active"
	ProjectStatusDisabled ProjectStatus = "disabled"
	ProjectStatusArchived ProjectStatus = "archived"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusActive, ProjectStatusDisabled, ProjectStatusArchived:
		return true
	}
	return false
}

type Project struct {
	ID               string                      `gorm:"primaryKey;size:64;not null" json:"id"`
	Title            string                      `gorm:"size:255;not null" json:"title"`
	Type             ProjectType                 `gorm:"size:16;index;not null" json:"type"`
	Category         string                      `gorm:"size:64;index" json:"category"`
	Language         string                      `gorm:"size:64" json:"language"`
	Genre            string                      `gorm:"size:128" json:"genre"`
	Description      string                      `gorm:"type:text" json:"description"`
	Director         string                      `gorm:"size:128" json:"director,omitempty"`
	Artist           string                      `gorm:"size:128" json:"artist,omitempty"`
	Poster           string                      `gorm:"size:512" json:"poster"`
	Trailer          string                      `gorm:"size:512" json:"trailer,omitempty"`
	ProductionHouse  string                      `gorm:"size:128" json:"productionHouse,omitempty"`
	Tags             datatypes.JSONSlice[string] `json:"tags"`
	Perks            datatypes.JSONSlice[string] `json:"perks"`
	Rating           *float64                    `json:"rating,omitempty"`
	InvestorCount    int                         `json:"investorCount"`
	TimeLeft         string                      `gorm:"size:32" json:"timeLeft,omitempty"`
	TargetAmount     int64                       `gorm:"not null" json:"targetAmount"`
	RaisedAmount     int64                       `gorm:"not null;default:0" json:"raisedAmount"`
	FundedPercentage int                         `gorm:"not null;default:0" json:"fundedPercentage"`
	Status           ProjectStatus               `gorm:"size:16;index;not null;default:active" json:"status"`
	Featured         bool                        `json:"featured"`
	CreatedAt        time.Time                   `json:"createdAt"`
	UpdatedAt        time.Time                   `json:"updatedAt"`
}

// ComputedFundedPercentage derives progress from the raw amounts. The stored
// FundedPercentage is not kept in sync with it.
func (p *Project) ComputedFundedPercentage() int {
	if p.TargetAmount <= 0 {
		return 0
	}
	return int(math.Round(float64(p.RaisedAmount) / float64(p.TargetAmount) * 100))
}

// DaysLeft parses the leading number of TimeLeft ("8 days" -> 8).
func (p *Project) DaysLeft() (int, bool) {
	s := strings.TrimSpace(p.TimeLeft)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

func (p *Project) IsPublic() bool {
	return p.Status == ProjectStatusActive
}

// LegacyProject is the record shape of older exports, where the lifecycle is
// carried by both a free-form status string and a disabled flag.
type LegacyProject struct {
	Project
	Status   string `json:"status"`
	Disabled *bool  `json:"disabled"`
}

// Normalize folds the legacy lifecycle fields into the single Status enum.
func (l LegacyProject) Normalize() Project {
	p := l.Project
	p.Status = NormalizeStatus(l.Status, l.Disabled)
	return p
}

// NormalizeStatus maps a legacy status/disabled pair onto ProjectStatus.
// Archived wins over disabled; an explicit disabled flag wins over "active".
func NormalizeStatus(status string, disabled *bool) ProjectStatus {
	switch ProjectStatus(strings.ToLower(strings.TrimSpace(status))) {
	case ProjectStatusArchived:
		return ProjectStatusArchived
	case ProjectStatusDisabled:
		return ProjectStatusDisabled
	}
	if disabled != nil && *disabled {
		return ProjectStatusDisabled
	}
	return ProjectStatusActive
}
