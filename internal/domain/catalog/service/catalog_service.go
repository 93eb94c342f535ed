package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gemshop_api/internal/domain/catalog/model"
	"gemshop_api/internal/domain/catalog/repository"
	"gemshop_api/pkg/cache"
)

type CatalogService interface {
	CreateShop(ownerID, name, description, logoURL string) (*model.Shop, error)
	GetShop(id uint) (*model.Shop, error)
	GetShops(page, limit int) ([]model.Shop, int64, error)

	CreateProduct(shopID uint, name, description string, price float64, stock int, imageURLs []string) (*model.Product, error)
	UpdateProduct(id uint, input UpdateProductInput) (*model.Product, error)
	GetProduct(id uint) (*model.Product, error)
	GetProducts(shopID uint, page, limit int) ([]model.Product, int64, error)

	// ValidateProductsExist 校验一组商品 ID 是否全部存在（下单前调用）
	ValidateProductsExist(ids []uint) error

	CreateService(shopID uint, name string, price float64, durationMinutes int) (*model.ServiceOffering, error)
	GetServices(shopID uint, page, limit int) ([]model.ServiceOffering, int64, error)
}

// UpdateProductInput 商品更新字段，nil 表示不改
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
	ImageURLs   []string
	Status      *string
}

type catalogService struct {
	repo  repository.CatalogRepository
	cache cache.CacheService
}

// 缓存键常量
const (
	ProductCacheKeyPrefix = "product:"
	ShopCacheKeyPrefix    = "shop:"
	ProductCacheTTL       = time.Minute * 30
	ShopCacheTTL          = time.Hour
)

func NewCatalogService(repo repository.CatalogRepository, cache cache.CacheService) CatalogService {
	return &catalogService{repo: repo, cache: cache}
}

func (s *catalogService) CreateShop(ownerID, name, description, logoURL string) (*model.Shop, error) {
	shop := &model.Shop{
		Name:        name,
		OwnerID:     ownerID,
		Description: description,
		LogoURL:     logoURL,
		Status:      model.ShopStatusActive,
	}
	if err := s.repo.CreateShop(shop); err != nil {
		return nil, err
	}
	return shop, nil
}

// GetShop 获取店铺（带缓存）
func (s *catalogService) GetShop(id uint) (*model.Shop, error) {
	ctx := context.Background()
	key := fmt.Sprintf("%s%d", ShopCacheKeyPrefix, id)

	var cached model.Shop
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	shop, err := s.repo.GetShopByID(id)
	if err != nil {
		return nil, err
	}

	// 回填缓存失败不影响主流程
	_ = s.cache.Set(ctx, key, shop, ShopCacheTTL)
	return shop, nil
}

func (s *catalogService) GetShops(page, limit int) ([]model.Shop, int64, error) {
	offset := (page - 1) * limit
	return s.repo.GetShops(offset, limit)
}

func (s *catalogService) CreateProduct(shopID uint, name, description string, price float64, stock int, imageURLs []string) (*model.Product, error) {
	if _, err := s.repo.GetShopByID(shopID); err != nil {
		return nil, errors.New("shop not found")
	}

	imagesJSON, _ := json.Marshal(imageURLs)
	product := &model.Product{
		ShopID:      shopID,
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		ImageURLs:   imagesJSON,
		Status:      model.ProductStatusOnSale,
	}
	if err := s.repo.CreateProduct(product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct 更新商品并清掉缓存
func (s *catalogService) UpdateProduct(id uint, input UpdateProductInput) (*model.Product, error) {
	product, err := s.repo.GetProductByID(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.ImageURLs != nil {
		imagesJSON, _ := json.Marshal(input.ImageURLs)
		product.ImageURLs = imagesJSON
	}
	if input.Status != nil {
		product.Status = *input.Status
	}

	if err := s.repo.UpdateProduct(product); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s%d", ProductCacheKeyPrefix, id)
	_ = s.cache.Delete(context.Background(), key)
	return product, nil
}

// GetProduct 获取商品（带缓存）
func (s *catalogService) GetProduct(id uint) (*model.Product, error) {
	ctx := context.Background()
	key := fmt.Sprintf("%s%d", ProductCacheKeyPrefix, id)

	var cached model.Product
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	product, err := s.repo.GetProductByID(id)
	if err != nil {
		return nil, err
	}

	_ = s.cache.Set(ctx, key, product, ProductCacheTTL)
	return product, nil
}

func (s *catalogService) GetProducts(shopID uint, page, limit int) ([]model.Product, int64, error) {
	offset := (page - 1) * limit
	return s.repo.GetProducts(shopID, offset, limit)
}

// ValidateProductsExist 校验一组商品 ID 是否全部存在
// 价格仍以客户端提交为准（结算报价流程未上线前的权衡），但幽灵商品会在这里被拦下
func (s *catalogService) ValidateProductsExist(ids []uint) error {
	if len(ids) == 0 {
		return errors.New("no products to validate")
	}

	// 去重后再比对数量
	uniq := make(map[uint]struct{}, len(ids))
	deduped := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := uniq[id]; !ok {
			uniq[id] = struct{}{}
			deduped = append(deduped, id)
		}
	}

	count, err := s.repo.CountProductsByIDs(deduped)
	if err != nil {
		return err
	}
	if count != int64(len(deduped)) {
		return errors.New("one or more products do not exist")
	}
	return nil
}

func (s *catalogService) CreateService(shopID uint, name string, price float64, durationMinutes int) (*model.ServiceOffering, error) {
	if _, err := s.repo.GetShopByID(shopID); err != nil {
		return nil, errors.New("shop not found")
	}

	svc := &model.ServiceOffering{
		ShopID:          shopID,
		Name:            name,
		Price:           price,
		DurationMinutes: durationMinutes,
		Status:          "active",
	}
	if err := s.repo.CreateService(svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *catalogService) GetServices(shopID uint, page, limit int) ([]model.ServiceOffering, int64, error) {
	offset := (page - 1) * limit
	return s.repo.GetServices(shopID, offset, limit)
}
