package handler

import (
	"errors"
	"net/http"
	"strconv"

	"gemshop_api/internal/domain/order/service"
	"gemshop_api/pkg/response"
	"gemshop_api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// ItemInput 行项目入参
type ItemInput struct {
	ProductID uint    `json:"productId" binding:"required,gt=0"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	Price     float64 `json:"price" binding:"required,gt=0"`
}

// CreateOrderInput 下单入参
type CreateOrderInput struct {
	TotalPrice      float64     `json:"totalPrice" binding:"required,gt=0"`
	PaymentIntentID string      `json:"paymentIntentId" binding:"required"`
	UserID          string      `json:"userId" binding:"required"`
	Channel         string      `json:"channel" binding:"omitempty,oneof=stripe alipay wechat"`
	Items           []ItemInput `json:"items" binding:"required,min=1,dive"`
}

// VerifyOrderInput 核销入参
type VerifyOrderInput struct {
	OrderID uint `json:"orderId" binding:"required"`
}

// CreateOrder 创建订单
// @Summary 创建订单
// @Description 客户端支付发起后落单，订单与行项目同一事务写入
// @Tags Order
// @Accept json
// @Produce json
// @Param body body CreateOrderInput true "订单信息"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var input CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items := make([]service.ItemInput, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, service.ItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	order, err := h.orderService.CreateOrder(input.UserID, input.TotalPrice, input.PaymentIntentID, input.Channel, items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":   order.ID,
		"slug": order.Slug,
	})
}

// VerifyOrder 核销订单支付
// @Summary 核销订单支付
// @Description 向支付渠道核对支付状态，已收款则推进订单为 Completed
// @Tags Order
// @Accept json
// @Produce json
// @Param body body VerifyOrderInput true "订单 ID"
// @Success 200 {object} service.VerificationResult
// @Failure 404 {object} map[string]interface{}
// @Router /orders/verify [post]
func (h *OrderHandler) VerifyOrder(c *gin.Context) {
	var input VerifyOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "orderId is required"})
		return
	}

	result, err := h.orderService.VerifyFulfillment(input.OrderID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMyOrders 我的订单列表
// @Summary 我的订单列表
// @Tags Order
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} response.Response
// @Router /orders/my [get]
func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	userID := c.GetString("userID")

	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "invalid pagination params")
		return
	}

	orders, total, err := h.orderService.GetUserOrders(userID, p.Page, p.Limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "failed to list orders")
		return
	}

	response.Success(c, gin.H{
		"list":  orders,
		"total": total,
	})
}

// GetOrderBySlug 按短码查询订单
// @Summary 按短码查询订单
// @Tags Order
// @Produce json
// @Security BearerAuth
// @Param slug path string true "订单短码"
// @Success 200 {object} response.Response
// @Router /orders/slug/{slug} [get]
func (h *OrderHandler) GetOrderBySlug(c *gin.Context) {
	slug := c.Param("slug")

	order, err := h.orderService.GetOrderBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrOrderNotFound, "order not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "failed to get order")
		return
	}

	response.Success(c, order)
}

// GetOrder 按 ID 查询订单 (管理端)
// @Summary 按 ID 查询订单
// @Tags Order
// @Produce json
// @Security BearerAuth
// @Param id path int true "订单 ID"
// @Success 200 {object} response.Response
// @Router /admin/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "invalid order id")
		return
	}

	order, err := h.orderService.GetOrder(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrOrderNotFound, "order not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "failed to get order")
		return
	}

	response.Success(c, order)
}
