package model

import (
	"time"

	"gorm.io/datatypes"
)

type PostCategory string

const (
	PostGeneral      PostCategory = "general"
	PostInvestment   PostCategory = "investment"
	PostPerks        PostCategory = "perks"
	PostNews         PostCategory = "news"
	PostFanArt       PostCategory = "fan-art"
	PostBehindScenes PostCategory = "behind-scenes"
	PostReview       PostCategory = "review"
)

func (c PostCategory) Valid() bool {
	switch c {
	case PostGeneral, PostInvestment, PostPerks, PostNews, PostFanArt, PostBehindScenes, PostReview:
		return true
	}
	return false
}

type CommunityPost struct {
	ID           string                      `gorm:"primaryKey;size:64;not null" json:"id"`
	UserID       string                      `gorm:"size:64;index" json:"userId"`
	UserName     string                      `gorm:"size:128" json:"userName"`
	UserAvatar   string                      `gorm:"size:512" json:"userAvatar"`
	UserVerified bool                        `json:"userVerified"`
	Content      string                      `gorm:"type:text;not null" json:"content"`
	MediaType    string                      `gorm:"size:16" json:"mediaType,omitempty"` // image, video, poll
	MediaURL     string                      `gorm:"size:1024" json:"mediaUrl,omitempty"`
	Likes        int                         `json:"likes"`
	Comments     int                         `json:"comments"`
	Shares       int                         `json:"shares"`
	Views        int                         `json:"views"`
	Tags         datatypes.JSONSlice[string] `json:"tags"`
	Trending     bool                        `gorm:"index" json:"trending"`
	Sponsored    bool                        `json:"sponsored"`
	Category     PostCategory                `gorm:"size:32;index" json:"category"`
	Timestamp    time.Time                   `gorm:"index" json:"timestamp"`
}

type Channel string

const (
	ChannelAnnouncements Channel = "announcements"
	ChannelInvestorHall  Channel = "investor-hall"
	ChannelCreatorTalks  Channel = "creator-talks"
	ChannelFanZone       Channel = "fan-zone"
	ChannelPolls         Channel = "polls"
	ChannelBehindScenes  Channel = "behind-scenes"
)

func (c Channel) Valid() bool {
	switch c {
	case ChannelAnnouncements, ChannelInvestorHall, ChannelCreatorTalks, ChannelFanZone, ChannelPolls, ChannelBehindScenes:
		return true
	}
	return false
}

type MessageType string

const (
	MessageText  MessageType = "text"
	MessageImage MessageType = "image"
	MessageVideo MessageType = "video"
)

func (t MessageType) Valid() bool {
	switch t {
	case MessageText, MessageImage, MessageVideo:
		return true
	}
	return false
}

// ChannelMessage is one chat line in a circle's channel.
type ChannelMessage struct {
	ID         string      `gorm:"primaryKey;size:64;not null" json:"id"`
	CircleID   string      `gorm:"size:64;index:idx_channel_messages_room,priority:1;not null" json:"circleId"`
	Channel    Channel     `gorm:"size:32;index:idx_channel_messages_room,priority:2;not null" json:"channel"`
	UserID     string      `gorm:"size:64" json:"userId"`
	UserName   string      `gorm:"size:128" json:"user"`
	UserAvatar string      `gorm:"size:512" json:"avatar,omitempty"`
	Type       MessageType `gorm:"size:16;not null;default:text" json:"type"`
	Content    string      `gorm:"type:text" json:"message"`
	MediaURL   string      `gorm:"size:1024" json:"mediaUrl,omitempty"`
	Timestamp  time.Time   `gorm:"index" json:"timestamp"`
}
