package service

import (
	"context"
	"strings"
	"time"

	"circles-backend/internal/errorx"
	"circles-backend/internal/model"
	"circles-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	maxPostLength    = 2000
	maxMessageLength = 1000
	channelHistory   = 200
)

type NewPost struct {
	Content   string
	Category  model.PostCategory
	MediaType string
	MediaURL  string
	Tags      []string
}

type NewChannelMessage struct {
	CircleID string
	Type     model.MessageType
	Content  string
	MediaURL string
}

type CommunityService interface {
	ListPosts(ctx context.Context, category model.PostCategory, trendingOnly bool) ([]model.CommunityPost, error)
	CreatePost(ctx context.Context, userID string, post NewPost) (*model.CommunityPost, error)
	LikePost(ctx context.Context, id string) (*model.CommunityPost, error)
	ListChannelMessages(ctx context.Context, circleID string, channel model.Channel) ([]model.ChannelMessage, error)
	PostChannelMessage(ctx context.Context, userID string, channel model.Channel, msg NewChannelMessage) (*model.ChannelMessage, error)
}

type communityServiceImpl struct {
	db          *gorm.DB
	postRepo    repository.PostRepository
	messageRepo repository.ChannelMessageRepository
	userRepo    repository.UserRepository
	now         func() time.Time
}

func NewCommunityService(
	db *gorm.DB,
	postRepo repository.PostRepository,
	messageRepo repository.ChannelMessageRepository,
	userRepo repository.UserRepository,
) CommunityService {
	return &communityServiceImpl{
		db:          db,
		postRepo:    postRepo,
		messageRepo: messageRepo,
		userRepo:    userRepo,
		now:         time.Now,
	}
}

func (s *communityServiceImpl) ListPosts(ctx context.Context, category model.PostCategory, trendingOnly bool) ([]model.CommunityPost, error) {
	return s.postRepo.List(ctx, repository.PostFilter{Category: category, TrendingOnly: trendingOnly})
}

// CreatePost publishes a post as userID. Inactive and suspended users
// cannot post.
func (s *communityServiceImpl) CreatePost(ctx context.Context, userID string, post NewPost) (*model.CommunityPost, error) {
	author, err := s.activeUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(post.Content)
	category := post.Category
	if category == "" {
		category = model.PostGeneral
	}

	v := errorx.NewValidationError()
	if content == "" {
		v.Add("content", "content is required")
	}
	if len(content) > maxPostLength {
		v.Add("content", "content is longer than %d characters", maxPostLength)
	}
	if !category.Valid() {
		v.Add("category", "unknown category %q", category)
	}
	switch post.MediaType {
	case "", "image", "video", "poll":
	default:
		v.Add("mediaType", "media type must be image, video or poll")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	p := &model.CommunityPost{
		ID:           uuid.NewString(),
		UserID:       author.ID,
		UserName:     author.Name,
		UserVerified: author.Role == "admin",
		Content:      content,
		MediaType:    post.MediaType,
		MediaURL:     post.MediaURL,
		Tags:         post.Tags,
		Category:     category,
		Timestamp:    s.now(),
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if err := s.postRepo.Create(ctx, s.db, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *communityServiceImpl) LikePost(ctx context.Context, id string) (*model.CommunityPost, error) {
	if err := s.postRepo.IncrementLikes(ctx, s.db, id); err != nil {
		return nil, err
	}
	return s.postRepo.FindByID(ctx, id)
}

func (s *communityServiceImpl) activeUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Status != model.UserStatusActive {
		return nil, errorx.New(errorx.Conflict, "user %s is %s", user.ID, user.Status)
	}
	return user, nil
}

// ListChannelMessages returns the latest messages of a circle's channel,
// oldest first. An empty circle id reads the channel across every circle.
func (s *communityServiceImpl) ListChannelMessages(ctx context.Context, circleID string, channel model.Channel) ([]model.ChannelMessage, error) {
	if !channel.Valid() {
		v := errorx.NewValidationError()
		v.Add("channel", "unknown channel %q", channel)
		return nil, v
	}
	return s.messageRepo.List(ctx, strings.TrimSpace(circleID), channel, channelHistory)
}

// PostChannelMessage appends a message to a circle's channel as userID.
// Media messages must carry a media url; text messages must carry content.
func (s *communityServiceImpl) PostChannelMessage(ctx context.Context, userID string, channel model.Channel, msg NewChannelMessage) (*model.ChannelMessage, error) {
	circleID := strings.TrimSpace(msg.CircleID)
	content := strings.TrimSpace(msg.Content)
	msgType := msg.Type
	if msgType == "" {
		msgType = model.MessageText
	}

	v := errorx.NewValidationError()
	if !channel.Valid() {
		v.Add("channel", "unknown channel %q", channel)
	}
	if circleID == "" {
		v.Add("circleId", "circle is required")
	}
	if !msgType.Valid() {
		v.Add("type", "message type must be text, image or video")
	}
	if msgType == model.MessageText && content == "" {
		v.Add("message", "message is required")
	}
	if msgType != model.MessageText && msg.MediaURL == "" {
		v.Add("mediaUrl", "media url is required for %s messages", msgType)
	}
	if len(content) > maxMessageLength {
		v.Add("message", "message is longer than %d characters", maxMessageLength)
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	author, err := s.activeUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	m := &model.ChannelMessage{
		ID:        uuid.NewString(),
		CircleID:  circleID,
		Channel:   channel,
		UserID:    author.ID,
		UserName:  author.Name,
		Type:      msgType,
		Content:   content,
		MediaURL:  msg.MediaURL,
		Timestamp: s.now(),
	}
	if err := s.messageRepo.Create(ctx, s.db, m); err != nil {
		return nil, err
	}
	return m, nil
}
