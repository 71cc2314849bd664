package model

import (
	"time"

	"gorm.io/datatypes"
)

type Perk struct {
	ID                   string                      `gorm:"primaryKey;size:64;not null" json:"id"`
	Title                string                      `gorm:"size:255;not null" json:"title"`
	Description          string                      `gorm:"type:text" json:"description"`
	ProjectID            string                      `gorm:"size:64;index" json:"projectId"`
	ProjectTitle         string                      `gorm:"size:255" json:"projectTitle"`
	Tier                 string                      `gorm:"size:32" json:"tier"`
	MinAmount            int64                       `json:"minAmount"`
	Type                 string                      `gorm:"size:32" json:"type"`   // exclusive, voting, paid, bidding, physical, digital
	Status               string                      `gorm:"size:32" json:"status"` // active, upcoming, expired
	StartDate            *time.Time                  `json:"startDate,omitempty"`
	EndDate              *time.Time                  `json:"endDate,omitempty"`
	Location             string                      `gorm:"size:255" json:"location,omitempty"`
	MaxParticipants      int                         `json:"maxParticipants,omitempty"`
	CurrentParticipants  int                         `json:"currentParticipants,omitempty"`
	Virtual              bool                        `json:"virtual"`
	RequiresVerification bool                        `json:"requiresVerification"`
	EstimatedValue       int64                       `json:"estimatedValue"`
	Tags                 datatypes.JSONSlice[string] `json:"tags"`
	CreatedAt            time.Time                   `json:"createdAt"`
}

type MerchandiseItem struct {
	ID            string                      `gorm:"primaryKey;size:64;not null" json:"id"`
	Title         string                      `gorm:"size:255;not null" json:"title"`
	Category      string                      `gorm:"size:32;index" json:"category"` // apparel, accessories, collectibles, limited-editions
	Price         int64                       `gorm:"not null" json:"price"`
	OriginalPrice int64                       `json:"originalPrice,omitempty"`
	PriceType     string                      `gorm:"size:16" json:"priceType"`    // fixed, auction, free
	Availability  string                      `gorm:"size:16" json:"availability"` // in-stock, limited, sold-out, pre-order
	Image         string                      `gorm:"size:512" json:"image"`
	Description   string                      `gorm:"type:text" json:"description"`
	StockLevel    int                         `json:"stockLevel"`
	Rating        float64                     `json:"rating"`
	Reviews       int                         `json:"reviews"`
	Tags          datatypes.JSONSlice[string] `json:"tags"`
	ReleaseDate   time.Time                   `json:"releaseDate"`
	Popularity    int                         `json:"popularity"`
	ProjectID     string                      `gorm:"size:64;index" json:"projectId,omitempty"`
	IsLimited     bool                        `json:"isLimited"`
	IsTrending    bool                        `json:"isTrending"`
	IsNew         bool                        `json:"isNew"`
	CreatedAt     time.Time                   `json:"createdAt"`
}

type MediaAsset struct {
	ID         string                      `gorm:"primaryKey;size:64;not null" json:"id"`
	Title      string                      `gorm:"size:255;not null" json:"title"`
	Type       string                      `gorm:"size:16" json:"type"` // image, video, audio, document
	URL        string                      `gorm:"size:1024" json:"url"`
	FileSize   int64                       `json:"fileSize"`
	Dimensions string                      `gorm:"size:32" json:"dimensions,omitempty"`
	ProjectID  string                      `gorm:"size:64;index" json:"projectId,omitempty"`
	Tags       datatypes.JSONSlice[string] `json:"tags"`
	CreatedAt  time.Time                   `json:"createdAt"`
}

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusInactive  UserStatus = "inactive"
	UserStatusSuspended UserStatus = "suspended"
)

func (s UserStatus) Valid() bool {
	switch s {
	case UserStatusActive, UserStatusInactive, UserStatusSuspended:
		return true
	}
	return false
}

type User struct {
	ID              string     `gorm:"primaryKey;size:64;not null" json:"id"`
	Name            string     `gorm:"size:128;not null" json:"name"`
	Email           string     `gorm:"size:255;uniqueIndex" json:"email"`
	Role            string     `gorm:"size:16;not null;default:user" json:"role"` // user, admin
	Status          UserStatus `gorm:"size:16;not null;default:active" json:"status"`
	InvestmentCount int        `json:"investmentCount"`
	TotalInvested   int64      `json:"totalInvested"`
	CreatedAt       time.Time  `json:"createdAt"`
}

type ResourceType string

const (
	ResourceProject     ResourceType = "project"
	ResourceMerchandise ResourceType = "merchandise"
	ResourcePerk        ResourceType = "perk"
	ResourceMedia       ResourceType = "media"
	ResourceUser        ResourceType = "user"
	ResourceSystem      ResourceType = "system"
)

type ActivityLog struct {
	ID           string       `gorm:"primaryKey;size:64;not null" json:"id"`
	Action       string       `gorm:"size:64;index;not null" json:"action"`
	UserID       string       `gorm:"size:64" json:"userId"`
	UserName     string       `gorm:"size:128" json:"userName"`
	ResourceType ResourceType `gorm:"size:16;index" json:"resourceType"`
	ResourceID   string       `gorm:"size:64" json:"resourceId,omitempty"`
	Details      string       `gorm:"size:512" json:"details"`
	Timestamp    time.Time    `gorm:"index" json:"timestamp"`
}

type BackupStatus string

const (
	BackupInProgress BackupStatus = "in-progress"
	BackupCompleted  BackupStatus = "completed"
	BackupFailed     BackupStatus = "failed"
)

type Backup struct {
	ID        string         `gorm:"primaryKey;size:64;not null" json:"id"`
	Name      string         `gorm:"size:128;not null" json:"name"`
	Size      int64          `json:"size"`
	Status    BackupStatus   `gorm:"size:16;not null" json:"status"`
	Payload   datatypes.JSON `json:"-"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Snapshot is the content of a backup payload.
type Snapshot struct {
	Projects    []Project         `json:"projects"`
	Merchandise []MerchandiseItem `json:"merchandise"`
	Perks       []Perk            `json:"perks"`
	Media       []MediaAsset      `json:"media"`
	Users       []User            `json:"users"`
	Posts       []CommunityPost   `json:"posts,omitempty"`
	Messages    []ChannelMessage  `json:"channelMessages,omitempty"`
}
