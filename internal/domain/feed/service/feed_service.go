package service

import (
	"encoding/json"
	"errors"

	"gemshop_api/internal/domain/feed/model"
	"gemshop_api/internal/domain/feed/repository"

	"gorm.io/gorm"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrPostNotApproved = errors.New("cannot comment on unapproved post")
)

type FeedService interface {
	PublishPost(userID, content string, mediaURLs []string, postType string, topicNames []string) (*model.Post, error)
	AuditPost(postID string, status string) error
	GetFeed(page, limit int) ([]model.Post, int64, error)
	GetPost(id string) (*model.Post, error)
	GetPendingPosts(page, limit int) ([]model.Post, int64, error)

	AddComment(userID, postID, content, parentID string) (*model.Comment, error)
	GetPostComments(postID string, page, limit int) ([]model.Comment, int64, error)

	// ToggleLike 点赞/取消点赞，返回操作后的点赞状态
	ToggleLike(userID, targetID, targetType string) (bool, error)

	GetTopicList(keyword string, page, limit int) ([]model.Topic, int64, error)
}

type feedService struct {
	repo repository.FeedRepository
}

func NewFeedService(repo repository.FeedRepository) FeedService {
	return &feedService{repo: repo}
}

func (s *feedService) PublishPost(userID, content string, mediaURLs []string, postType string, topicNames []string) (*model.Post, error) {
	mediaJSON, _ := json.Marshal(mediaURLs)

	if postType == "" {
		postType = model.PostTypeOutfit
	}

	// 话题不存在则顺手创建
	var topics []model.Topic
	for _, name := range topicNames {
		topic, err := s.repo.GetTopicByName(name)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				topic = &model.Topic{Name: name}
				if err := s.repo.CreateTopic(topic); err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
		topics = append(topics, *topic)
	}

	// 新帖默认待审，审核通过才进公开流
	post := &model.Post{
		UserID:    userID,
		Content:   content,
		MediaURLs: mediaJSON,
		Type:      postType,
		Status:    model.PostStatusPending,
		Topics:    topics,
	}

	if err := s.repo.CreatePost(post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *feedService) AuditPost(postID string, status string) error {
	if status != model.PostStatusApproved && status != model.PostStatusRejected {
		return errors.New("invalid audit status")
	}
	return s.repo.UpdatePostStatus(postID, status)
}

func (s *feedService) GetFeed(page, limit int) ([]model.Post, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return s.repo.GetPosts(model.PostStatusApproved, (page-1)*limit, limit)
}

func (s *feedService) GetPost(id string) (*model.Post, error) {
	post, err := s.repo.GetPostByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

func (s *feedService) GetPendingPosts(page, limit int) ([]model.Post, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return s.repo.GetPosts(model.PostStatusPending, (page-1)*limit, limit)
}

func (s *feedService) AddComment(userID, postID, content, parentID string) (*model.Comment, error) {
	// 只允许评论已过审的帖子
	post, err := s.repo.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if post.Status != model.PostStatusApproved {
		return nil, ErrPostNotApproved
	}

	comment := &model.Comment{
		PostID:  postID,
		UserID:  userID,
		Content: content,
		Level:   1,
	}

	// 回复逻辑：最多两层，回复二级评论仍挂在同一个根评论下
	if parentID != "" {
		parentComment, err := s.repo.GetCommentByID(parentID)
		if err != nil {
			return nil, errors.New("parent comment not found")
		}

		if parentComment.PostID != postID {
			return nil, errors.New("parent comment does not belong to this post")
		}

		comment.ParentID = parentID
		if parentComment.Level == 1 {
			comment.RootID = parentComment.ID
		} else {
			comment.RootID = parentComment.RootID
		}
		comment.Level = 2
	}

	if err := s.repo.CreateComment(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *feedService) GetPostComments(postID string, page, limit int) ([]model.Comment, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return s.repo.GetCommentsByPostID(postID, (page-1)*limit, limit)
}

func (s *feedService) ToggleLike(userID, targetID, targetType string) (bool, error) {
	liked, err := s.repo.HasLiked(userID, targetID, targetType)
	if err != nil {
		return false, err
	}

	if liked {
		err := s.repo.DeleteLike(userID, targetID, targetType)
		return false, err
	}

	err = s.repo.CreateLike(&model.Like{
		UserID:     userID,
		TargetID:   targetID,
		TargetType: targetType,
	})
	return true, err
}

func (s *feedService) GetTopicList(keyword string, page, limit int) ([]model.Topic, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return s.repo.GetTopics(keyword, (page-1)*limit, limit)
}
