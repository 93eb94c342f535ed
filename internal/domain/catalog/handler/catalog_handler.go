package handler

import (
	"net/http"
	"strconv"

	"gemshop_api/internal/domain/catalog/service"
	"gemshop_api/pkg/response"
	"gemshop_api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(s service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

// CreateShopInput 创建店铺输入
type CreateShopInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	LogoURL     string `json:"logoUrl"`
}

// CreateProductInput 创建商品输入
type CreateProductInput struct {
	ShopID      uint     `json:"shopId" binding:"required"`
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Stock       int      `json:"stock" binding:"min=0"`
	ImageURLs   []string `json:"imageUrls"`
}

// UpdateProductInput 更新商品输入，缺省字段不改
type UpdateProductInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gt=0"`
	Stock       *int     `json:"stock" binding:"omitempty,min=0"`
	ImageURLs   []string `json:"imageUrls"`
	Status      *string  `json:"status" binding:"omitempty,oneof=on_sale off_sale"`
}

// CreateServiceInput 新增服务项目输入
type CreateServiceInput struct {
	ShopID          uint    `json:"shopId" binding:"required"`
	Name            string  `json:"name" binding:"required"`
	Price           float64 `json:"price" binding:"min=0"`
	DurationMinutes int     `json:"durationMinutes" binding:"min=0"`
}

// CreateShop 创建店铺
// @Summary 创建店铺
// @Tags Catalog
// @Accept json
// @Produce json
// @Param input body CreateShopInput true "Shop Info"
// @Success 200 {object} response.Response{data=model.Shop}
// @Router /shops [post]
func (h *CatalogHandler) CreateShop(c *gin.Context) {
	var input CreateShopInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	ownerID := getUserIdFromContext(c)
	shop, err := h.service.CreateShop(ownerID, input.Name, input.Description, input.LogoURL)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, shop)
}

// GetShops 获取店铺列表
// @Summary 获取店铺列表
// @Tags Catalog
// @Router /shops [get]
func (h *CatalogHandler) GetShops(c *gin.Context) {
	var p utils.Pagination
	c.ShouldBindQuery(&p)
	_, limit := p.GetPageOffset()

	shops, total, err := h.service.GetShops(p.Page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, utils.PageResult{List: shops, Total: total, Page: p.Page, Limit: limit})
}

// GetShop 获取店铺详情
func (h *CatalogHandler) GetShop(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Invalid shop id")
		return
	}

	shop, err := h.service.GetShop(uint(id))
	if err != nil {
		response.Error(c, http.StatusNotFound, response.ErrShopNotFound, "Shop not found")
		return
	}
	response.Success(c, shop)
}

// CreateProduct 上架商品
// @Summary 上架商品
// @Tags Catalog
// @Router /products [post]
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var input CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	product, err := h.service.CreateProduct(input.ShopID, input.Name, input.Description, input.Price, input.Stock, input.ImageURLs)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品
// @Summary 更新商品
// @Tags Catalog
// @Param id path int true "Product ID"
// @Router /products/{id} [put]
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Invalid product id")
		return
	}

	var input UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	product, err := h.service.UpdateProduct(uint(id), service.UpdateProductInput{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		ImageURLs:   input.ImageURLs,
		Status:      input.Status,
	})
	if err != nil {
		response.Error(c, http.StatusNotFound, response.ErrProductNotFound, err.Error())
		return
	}
	response.Success(c, product)
}

// GetProducts 获取商品列表
// @Summary 获取商品列表
// @Tags Catalog
// @Param shopId query int false "Shop ID"
// @Router /products [get]
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	var p utils.Pagination
	c.ShouldBindQuery(&p)
	_, limit := p.GetPageOffset()

	shopID, _ := strconv.ParseUint(c.Query("shopId"), 10, 64)

	products, total, err := h.service.GetProducts(uint(shopID), p.Page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, utils.PageResult{List: products, Total: total, Page: p.Page, Limit: limit})
}

// GetProduct 获取商品详情
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Invalid product id")
		return
	}

	product, err := h.service.GetProduct(uint(id))
	if err != nil {
		response.Error(c, http.StatusNotFound, response.ErrProductNotFound, "Product not found")
		return
	}
	response.Success(c, product)
}

// CreateService 新增可预约服务项目
// @Summary 新增服务项目
// @Tags Catalog
// @Router /services [post]
func (h *CatalogHandler) CreateService(c *gin.Context) {
	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	svc, err := h.service.CreateService(input.ShopID, input.Name, input.Price, input.DurationMinutes)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, svc)
}

// GetServices 获取可预约服务列表
// @Summary 获取服务列表
// @Tags Catalog
// @Router /services [get]
func (h *CatalogHandler) GetServices(c *gin.Context) {
	var p utils.Pagination
	c.ShouldBindQuery(&p)
	_, limit := p.GetPageOffset()

	shopID, _ := strconv.ParseUint(c.Query("shopId"), 10, 64)

	services, total, err := h.service.GetServices(uint(shopID), p.Page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, utils.PageResult{List: services, Total: total, Page: p.Page, Limit: limit})
}

func getUserIdFromContext(c *gin.Context) string {
	val, _ := c.Get("userID")
	if str, ok := val.(string); ok {
		return str
	}
	return ""
}
