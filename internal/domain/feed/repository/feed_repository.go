package repository

import (
	"gemshop_api/internal/domain/feed/model"

	"gorm.io/gorm"
)

type FeedRepository interface {
	CreatePost(post *model.Post) error
	GetPostByID(id string) (*model.Post, error)
	GetPosts(status string, offset, limit int) ([]model.Post, int64, error)
	UpdatePostStatus(id string, status string) error

	CreateComment(comment *model.Comment) error
	GetCommentByID(id string) (*model.Comment, error)
	GetCommentsByPostID(postID string, offset, limit int) ([]model.Comment, int64, error)

	CreateLike(like *model.Like) error
	DeleteLike(userID, targetID, targetType string) error
	HasLiked(userID, targetID, targetType string) (bool, error)

	GetTopicByName(name string) (*model.Topic, error)
	CreateTopic(topic *model.Topic) error
	GetTopics(keyword string, offset, limit int) ([]model.Topic, int64, error)
}

type feedRepository struct {
	db *gorm.DB
}

func NewFeedRepository(db *gorm.DB) FeedRepository {
	return &feedRepository{db: db}
}

// --- Post ---

func (r *feedRepository) CreatePost(post *model.Post) error {
	return r.db.Create(post).Error
}

func (r *feedRepository) GetPostByID(id string) (*model.Post, error) {
	var post model.Post
	if err := r.db.Preload("Topics").Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *feedRepository) GetPosts(status string, offset, limit int) ([]model.Post, int64, error) {
	var posts []model.Post
	var total int64

	query := r.db.Model(&model.Post{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Topics").Order("created_at desc").Offset(offset).Limit(limit).Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *feedRepository) UpdatePostStatus(id string, status string) error {
	return r.db.Model(&model.Post{}).Where("id = ?", id).Update("status", status).Error
}

// --- Comment ---

func (r *feedRepository) CreateComment(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

func (r *feedRepository) GetCommentByID(id string) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *feedRepository) GetCommentsByPostID(postID string, offset, limit int) ([]model.Comment, int64, error) {
	var comments []model.Comment
	var total int64

	query := r.db.Model(&model.Comment{}).Where("post_id = ?", postID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at asc").Offset(offset).Limit(limit).Find(&comments).Error; err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// --- Like ---

func (r *feedRepository) CreateLike(like *model.Like) error {
	return r.db.Create(like).Error
}

func (r *feedRepository) DeleteLike(userID, targetID, targetType string) error {
	return r.db.Where("user_id = ? AND target_id = ? AND target_type = ?", userID, targetID, targetType).Delete(&model.Like{}).Error
}

func (r *feedRepository) HasLiked(userID, targetID, targetType string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Like{}).Where("user_id = ? AND target_id = ? AND target_type = ?", userID, targetID, targetType).Count(&count).Error
	return count > 0, err
}

// --- Topic ---

func (r *feedRepository) GetTopicByName(name string) (*model.Topic, error) {
	var topic model.Topic
	if err := r.db.Where("name = ?", name).First(&topic).Error; err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *feedRepository) CreateTopic(topic *model.Topic) error {
	return r.db.Create(topic).Error
}

func (r *feedRepository) GetTopics(keyword string, offset, limit int) ([]model.Topic, int64, error) {
	var topics []model.Topic
	var total int64

	query := r.db.Model(&model.Topic{})
	if keyword != "" {
		query = query.Where("name ILIKE ?", "%"+keyword+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&topics).Error; err != nil {
		return nil, 0, err
	}
	return topics, total, nil
}
