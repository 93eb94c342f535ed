package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"gemshop_api/internal/domain/gems/client"
	"gemshop_api/internal/domain/gems/service"
	"gemshop_api/pkg/response"

	"github.com/gin-gonic/gin"
)

type GemsHandler struct {
	gemsService service.GemsService
}

func NewGemsHandler(gemsService service.GemsService) *GemsHandler {
	return &GemsHandler{gemsService: gemsService}
}

// AdjustInput 宝石增减入参
// 账本账户从登录态解析，客户端不传账本 ID
type AdjustInput struct {
	Amount   int64                  `json:"amount" binding:"required"`
	Type     string                 `json:"type" binding:"required,oneof=earn spend"`
	Reason   string                 `json:"reason" binding:"required"`
	Metadata map[string]interface{} `json:"metadata"`
}

// Adjust 提交宝石增减
// @Summary 提交宝石增减
// @Description 按 earn/spend 折算符号后转发给账本服务，账本错误原样透传
// @Tags Gems
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AdjustInput true "调整内容"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /gems/transaction [post]
func (h *GemsHandler) Adjust(c *gin.Context) {
	var input AdjustInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString("userID")

	data, err := h.gemsService.Adjust(c.Request.Context(), userID, input.Amount, input.Type, input.Reason, input.Metadata)
	if err != nil {
		// 账本拒绝：状态码和响应体原样透传
		var ledgerErr *client.LedgerError
		if errors.As(err, &ledgerErr) {
			c.Data(ledgerErr.StatusCode, "application/json", ledgerErr.Body)
			return
		}
		if errors.Is(err, service.ErrInvalidAmount) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    json.RawMessage(data),
	})
}

// GetBalance 查询宝石余额
// @Summary 查询宝石余额
// @Description 每次实时查账本，本地不缓存余额
// @Tags Gems
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /gems/balance [get]
func (h *GemsHandler) GetBalance(c *gin.Context) {
	userID := c.GetString("userID")

	data, err := h.gemsService.GetBalance(c.Request.Context(), userID)
	if err != nil {
		var ledgerErr *client.LedgerError
		if errors.As(err, &ledgerErr) {
			c.Data(ledgerErr.StatusCode, "application/json", ledgerErr.Body)
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrLedgerUnavailable, "failed to query gem balance")
		return
	}

	response.Success(c, json.RawMessage(data))
}
