// Package seed carries the demo catalog loaded into an empty database.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"circles-backend/internal/model"
)

//go:embed data.json
var data []byte

type document struct {
	Projects    []model.LegacyProject   `json:"projects"`
	Merchandise []model.MerchandiseItem `json:"merchandise"`
	Perks       []model.Perk            `json:"perks"`
	Media       []model.MediaAsset      `json:"media"`
	Users       []model.User            `json:"users"`
	Posts       []model.CommunityPost   `json:"posts"`
	Messages    []model.ChannelMessage  `json:"channelMessages"`
}

// Load decodes the embedded dataset. Project records use the legacy
// status/disabled pair and are normalized on the way in.
func Load() (*model.Snapshot, error) {
	return Parse(data)
}

func Parse(raw []byte) (*model.Snapshot, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode seed data: %w", err)
	}

	projects := make([]model.Project, len(doc.Projects))
	for i, p := range doc.Projects {
		projects[i] = p.Normalize()
	}

	return &model.Snapshot{
		Projects:    projects,
		Merchandise: doc.Merchandise,
		Perks:       doc.Perks,
		Media:       doc.Media,
		Users:       doc.Users,
		Posts:       doc.Posts,
		Messages:    doc.Messages,
	}, nil
}
