package handler

import (
	"errors"
	"net/http"
	"time"

	"gemshop_api/internal/domain/challenge/service"
	"gemshop_api/pkg/response"
	"gemshop_api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ChallengeHandler struct {
	challengeService service.ChallengeService
}

func NewChallengeHandler(challengeService service.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{challengeService: challengeService}
}

// CreateChallengeInput 创建挑战入参
type CreateChallengeInput struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	CoverURL    string    `json:"coverUrl"`
	RewardGems  int64     `json:"rewardGems" binding:"required,gt=0"`
	RewardTotal int       `json:"rewardTotal" binding:"required,gt=0"`
	StartTime   time.Time `json:"startTime" binding:"required"`
	EndTime     time.Time `json:"endTime" binding:"required,gtfield=StartTime"`
}

// CreateChallenge 创建挑战 (管理端)
// @Summary 创建挑战
// @Tags Challenge
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateChallengeInput true "挑战信息"
// @Success 200 {object} response.Response
// @Router /admin/challenges [post]
func (h *ChallengeHandler) CreateChallenge(c *gin.Context) {
	var input CreateChallengeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	challenge, err := h.challengeService.CreateChallenge(
		input.Title, input.Description, input.CoverURL,
		input.RewardGems, input.RewardTotal, input.StartTime, input.EndTime)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "failed to create challenge")
		return
	}

	response.Success(c, challenge)
}

// GetChallenges 挑战列表
// @Summary 挑战列表
// @Tags Challenge
// @Produce json
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} response.Response
// @Router /challenges [get]
func (h *ChallengeHandler) GetChallenges(c *gin.Context) {
	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "invalid pagination params")
		return
	}

	challenges, total, err := h.challengeService.GetChallenges(p.Page, p.Limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "failed to list challenges")
		return
	}

	response.Success(c, gin.H{
		"list":  challenges,
		"total": total,
	})
}

// GetChallenge 挑战详情
// @Summary 挑战详情
// @Tags Challenge
// @Produce json
// @Param id path string true "挑战 ID"
// @Success 200 {object} response.Response
// @Router /challenges/{id} [get]
func (h *ChallengeHandler) GetChallenge(c *gin.Context) {
	challenge, err := h.challengeService.GetChallenge(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrChallengeNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrChallengeNotFound, "challenge not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "failed to get challenge")
		return
	}

	response.Success(c, challenge)
}

// ClaimReward 领取挑战奖励
// @Summary 领取挑战奖励
// @Description 每个用户每个挑战限领一次，奖励异步入账
// @Tags Challenge
// @Produce json
// @Security BearerAuth
// @Param id path string true "挑战 ID"
// @Success 200 {object} response.Response
// @Router /challenges/{id}/claim [post]
func (h *ChallengeHandler) ClaimReward(c *gin.Context) {
	userID := c.GetString("userID")
	challengeID := c.Param("id")

	err := h.challengeService.ClaimReward(c.Request.Context(), userID, challengeID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrChallengeNotFound):
			response.Error(c, http.StatusNotFound, response.ErrChallengeNotFound, err.Error())
		case errors.Is(err, service.ErrOutOfStock):
			response.Error(c, http.StatusConflict, response.ErrRewardOutOfStock, err.Error())
		case errors.Is(err, service.ErrAlreadyClaimed):
			response.Error(c, http.StatusConflict, response.ErrChallengeClaimed, err.Error())
		case errors.Is(err, service.ErrNotActive):
			response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "failed to claim reward")
		}
		return
	}

	response.Success(c, gin.H{"claimed": true})
}

// GetMyClaims 我的领取记录
// @Summary 我的领取记录
// @Tags Challenge
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} response.Response
// @Router /claims/my [get]
func (h *ChallengeHandler) GetMyClaims(c *gin.Context) {
	userID := c.GetString("userID")

	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "invalid pagination params")
		return
	}

	claims, total, err := h.challengeService.GetMyClaims(userID, p.Page, p.Limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "failed to list claims")
		return
	}

	response.Success(c, gin.H{
		"list":  claims,
		"total": total,
	})
}
