package repository

import (
	"context"
	"fmt"
	"slices"

	"circles-backend/internal/model"

	"gorm.io/gorm"
)

type ChannelMessageRepository interface {
	// List returns a channel's messages oldest first. An empty circle lists
	// every circle's messages.
	List(ctx context.Context, circleID string, channel model.Channel, limit int) ([]model.ChannelMessage, error)
	ListAll(ctx context.Context) ([]model.ChannelMessage, error)
	Create(ctx context.Context, tx *gorm.DB, msg *model.ChannelMessage) error
	ReplaceAll(ctx context.Context, tx *gorm.DB, msgs []model.ChannelMessage) error
}

type channelMessageRepoImpl struct {
	table[model.ChannelMessage]
}

func NewChannelMessageRepository(db *gorm.DB) ChannelMessageRepository {
	return &channelMessageRepoImpl{
		table: table[model.ChannelMessage]{db: db, resource: "channel message"},
	}
}

func (r *channelMessageRepoImpl) List(ctx context.Context, circleID string, channel model.Channel, limit int) ([]model.ChannelMessage, error) {
	q := r.db.WithContext(ctx).Where("channel = ?", channel)
	if circleID != "" {
		q = q.Where("circle_id = ?", circleID)
	}
	if limit > 0 {
		// newest window, flipped back to chronological order below
		q = q.Order("timestamp DESC, id DESC").Limit(limit)
	} else {
		q = q.Order("timestamp, id")
	}

	var msgs []model.ChannelMessage
	if err := q.Find(&msgs).Error; err != nil {
		return nil, fmt.Errorf("list channel messages: %w", err)
	}
	if limit > 0 {
		slices.Reverse(msgs)
	}
	return msgs, nil
}

func (r *channelMessageRepoImpl) ListAll(ctx context.Context) ([]model.ChannelMessage, error) {
	return r.list(ctx, "timestamp, id")
}

func (r *channelMessageRepoImpl) Create(ctx context.Context, tx *gorm.DB, msg *model.ChannelMessage) error {
	return r.create(ctx, tx, msg)
}

func (r *channelMessageRepoImpl) ReplaceAll(ctx context.Context, tx *gorm.DB, msgs []model.ChannelMessage) error {
	return r.replaceAll(ctx, tx, msgs)
}
