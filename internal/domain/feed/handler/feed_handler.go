package handler

import (
	"errors"
	"net/http"

	"gemshop_api/internal/domain/feed/service"
	"gemshop_api/pkg/response"
	"gemshop_api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	feedService service.FeedService
}

func NewFeedHandler(feedService service.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// PublishPostInput 发帖入参
type PublishPostInput struct {
	Content   string   `json:"content" binding:"required"`
	MediaURLs []string `json:"mediaUrls"`
	Type      string   `json:"type" binding:"omitempty,oneof=outfit text video"`
	Topics    []string `json:"topics"`
}

// AddCommentInput 评论入参
type AddCommentInput struct {
	Content  string `json:"content" binding:"required"`
	ParentID string `json:"parentId"`
}

// ToggleLikeInput 点赞入参
type ToggleLikeInput struct {
	TargetID   string `json:"targetId" binding:"required"`
	TargetType string `json:"targetType" binding:"required,oneof=post comment"`
}

// AuditPostInput 审核入参
type AuditPostInput struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

// PublishPost 发布穿搭帖子
// @Summary 发布穿搭帖子
// @Tags Feed
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body PublishPostInput true "帖子内容"
// @Success 200 {object} response.Response
// @Router /posts [post]
func (h *FeedHandler) PublishPost(c *gin.Context) {
	var input PublishPostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	userID := c.GetString("userID")

	post, err := h.feedService.PublishPost(userID, input.Content, input.MediaURLs, input.Type, input.Topics)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "failed to publish post")
		return
	}

	response.Success(c, post)
}

// GetFeed 公开信息流 (只含已过审帖子)
// @Summary 公开信息流
// @Tags Feed
// @Produce json
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} response.Response
// @Router /feed [get]
func (h *FeedHandler) GetFeed(c *gin.Context) {
	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "invalid pagination params")
		return
	}

	posts, total, err := h.feedService.GetFeed(p.Page, p.Limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "failed to load feed")
		return
	}

	response.Success(c, gin.H{
		"list":  posts,
		"total": total,
	})
}

// GetPost 帖子详情
// @Summary 帖子详情
// @Tags Feed
// @Produce json
// @Param id path string true "帖子 ID"
// @Success 200 {object} response.Response
// @Router /posts/{id} [get]
func (h *FeedHandler) GetPost(c *gin.Context) {
	post, err := h.feedService.GetPost(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrPostNotFound, "post not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "failed to get post")
		return
	}

	response.Success(c, post)
}

// AddComment 评论帖子
// @Summary 评论帖子
// @Tags Feed
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "帖子 ID"
// @Param body body AddCommentInput true "评论内容"
// @Success 200 {object} response.Response
// @Router /posts/{id}/comments [post]
func (h *FeedHandler) AddComment(c *gin.Context) {
	var input AddCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	userID := c.GetString("userID")
	postID := c.Param("id")

	comment, err := h.feedService.AddComment(userID, postID, input.Content, input.ParentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			response.Error(c, http.StatusNotFound, response.ErrPostNotFound, "post not found")
		case errors.Is(err, service.ErrPostNotApproved):
			response.Error(c, http.StatusBadRequest, response.ErrPostNotApproved, err.Error())
		default:
			response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		}
		return
	}

	response.Success(c, comment)
}

// GetPostComments 帖子评论列表
// @Summary 帖子评论列表
// @Tags Feed
// @Produce json
// @Param id path string true "帖子 ID"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} response.Response
// @Router /posts/{id}/comments [get]
func (h *FeedHandler) GetPostComments(c *gin.Context) {
	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "invalid pagination params")
		return
	}

	comments, total, err := h.feedService.GetPostComments(c.Param("id"), p.Page, p.Limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "failed to list comments")
		return
	}

	response.Success(c, gin.H{
		"list":  comments,
		"total": total,
	})
}

// ToggleLike 点赞/取消点赞
// @Summary 点赞/取消点赞
// @Tags Feed
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ToggleLikeInput true "点赞目标"
// @Success 200 {object} response.Response
// @Router /likes [post]
func (h *FeedHandler) ToggleLike(c *gin.Context) {
	var input ToggleLikeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	userID := c.GetString("userID")

	liked, err := h.feedService.ToggleLike(userID, input.TargetID, input.TargetType)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "failed to toggle like")
		return
	}

	response.Success(c, gin.H{"liked": liked})
}

// GetTopics 话题列表
// @Summary 话题列表
// @Tags Feed
// @Produce json
// @Param keyword query string false "搜索关键词"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} response.Response
// @Router /topics [get]
func (h *FeedHandler) GetTopics(c *gin.Context) {
	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "invalid pagination params")
		return
	}

	topics, total, err := h.feedService.GetTopicList(c.Query("keyword"), p.Page, p.Limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "failed to list topics")
		return
	}

	response.Success(c, gin.H{
		"list":  topics,
		"total": total,
	})
}

// GetPendingPosts 待审帖子列表 (管理端)
// @Summary 待审帖子列表
// @Tags Feed
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} response.Response
// @Router /admin/posts/pending [get]
func (h *FeedHandler) GetPendingPosts(c *gin.Context) {
	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "invalid pagination params")
		return
	}

	posts, total, err := h.feedService.GetPendingPosts(p.Page, p.Limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "failed to list pending posts")
		return
	}

	response.Success(c, gin.H{
		"list":  posts,
		"total": total,
	})
}

// AuditPost 审核帖子 (管理端)
// @Summary 审核帖子
// @Tags Feed
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "帖子 ID"
// @Param body body AuditPostInput true "审核结果"
// @Success 200 {object} response.Response
// @Router /admin/posts/{id}/status [put]
func (h *FeedHandler) AuditPost(c *gin.Context) {
	var input AuditPostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	if err := h.feedService.AuditPost(c.Param("id"), input.Status); err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "failed to audit post")
		return
	}

	response.Success(c, gin.H{"status": input.Status})
}
