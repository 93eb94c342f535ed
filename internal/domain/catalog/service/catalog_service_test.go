package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"gemshop_api/internal/domain/catalog/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockCatalogRepository is a mock of CatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) CreateShop(shop *model.Shop) error {
	args := m.Called(shop)
	return args.Error(0)
}

func (m *MockCatalogRepository) GetShopByID(id uint) (*model.Shop, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Shop), args.Error(1)
}

func (m *MockCatalogRepository) GetShops(offset, limit int) ([]model.Shop, int64, error) {
	args := m.Called(offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Shop), args.Get(1).(int64), args.Error(2)
}

func (m *MockCatalogRepository) CreateProduct(product *model.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockCatalogRepository) UpdateProduct(product *model.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockCatalogRepository) GetProductByID(id uint) (*model.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockCatalogRepository) GetProducts(shopID uint, offset, limit int) ([]model.Product, int64, error) {
	args := m.Called(shopID, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockCatalogRepository) CountProductsByIDs(ids []uint) (int64, error) {
	args := m.Called(ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCatalogRepository) CreateService(svc *model.ServiceOffering) error {
	args := m.Called(svc)
	return args.Error(0)
}

func (m *MockCatalogRepository) GetServiceByID(id uint) (*model.ServiceOffering, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ServiceOffering), args.Error(1)
}

func (m *MockCatalogRepository) GetServices(shopID uint, offset, limit int) ([]model.ServiceOffering, int64, error) {
	args := m.Called(shopID, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.ServiceOffering), args.Get(1).(int64), args.Error(2)
}

// memoryCache 内存版缓存，测试用
type memoryCache struct {
	store map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{store: make(map[string][]byte)}
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, ok := c.store[key]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	return json.Unmarshal(data, dest)
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.store[key] = data
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	delete(c.store, key)
	return nil
}

func (c *memoryCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := c.store[key]
	return ok, nil
}

func (c *memoryCache) InvalidatePattern(ctx context.Context, pattern string) error {
	return nil
}

func TestValidateProductsExist(t *testing.T) {
	t.Run("Duplicate ids are deduped before counting", func(t *testing.T) {
		mockRepo := new(MockCatalogRepository)
		svc := NewCatalogService(mockRepo, newMemoryCache())

		mockRepo.On("CountProductsByIDs", []uint{1, 2}).Return(int64(2), nil)

		err := svc.ValidateProductsExist([]uint{1, 2, 1, 2, 1})

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Missing product fails validation", func(t *testing.T) {
		mockRepo := new(MockCatalogRepository)
		svc := NewCatalogService(mockRepo, newMemoryCache())

		mockRepo.On("CountProductsByIDs", []uint{1, 99}).Return(int64(1), nil)

		err := svc.ValidateProductsExist([]uint{1, 99})

		assert.Error(t, err)
	})

	t.Run("Empty id list rejected", func(t *testing.T) {
		mockRepo := new(MockCatalogRepository)
		svc := NewCatalogService(mockRepo, newMemoryCache())

		err := svc.ValidateProductsExist(nil)

		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "CountProductsByIDs", mock.Anything)
	})
}

func TestGetProduct(t *testing.T) {
	t.Run("Cache miss loads from repository and backfills", func(t *testing.T) {
		mockRepo := new(MockCatalogRepository)
		cache := newMemoryCache()
		svc := NewCatalogService(mockRepo, cache)

		stored := &model.Product{Name: "Silk scarf", Price: 129.0}
		stored.ID = 8
		mockRepo.On("GetProductByID", uint(8)).Return(stored, nil).Once()

		product, err := svc.GetProduct(8)

		assert.NoError(t, err)
		assert.Equal(t, "Silk scarf", product.Name)

		// 第二次命中缓存，仓库不应再被调用
		again, err := svc.GetProduct(8)
		assert.NoError(t, err)
		assert.Equal(t, "Silk scarf", again.Name)
		mockRepo.AssertNumberOfCalls(t, "GetProductByID", 1)
	})
}

func TestUpdateProduct(t *testing.T) {
	t.Run("Only provided fields change and the cache entry is dropped", func(t *testing.T) {
		mockRepo := new(MockCatalogRepository)
		cache := newMemoryCache()
		svc := NewCatalogService(mockRepo, cache)

		existing := &model.Product{Name: "Silk scarf", Description: "100% silk", Price: 129.0, Stock: 10}
		existing.ID = 8
		_ = cache.Set(context.Background(), "product:8", existing, time.Minute)

		mockRepo.On("GetProductByID", uint(8)).Return(existing, nil)
		mockRepo.On("UpdateProduct", mock.AnythingOfType("*model.Product")).Return(nil)

		newPrice := 99.0
		product, err := svc.UpdateProduct(8, UpdateProductInput{Price: &newPrice})

		assert.NoError(t, err)
		assert.Equal(t, 99.0, product.Price)
		assert.Equal(t, "Silk scarf", product.Name)

		exists, _ := cache.Exists(context.Background(), "product:8")
		assert.False(t, exists)
	})

	t.Run("Unknown product returns the lookup error", func(t *testing.T) {
		mockRepo := new(MockCatalogRepository)
		svc := NewCatalogService(mockRepo, newMemoryCache())

		mockRepo.On("GetProductByID", uint(404)).Return(nil, gorm.ErrRecordNotFound)

		product, err := svc.UpdateProduct(404, UpdateProductInput{})

		assert.Nil(t, product)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		mockRepo.AssertNotCalled(t, "UpdateProduct", mock.Anything)
	})
}

func TestCreateService(t *testing.T) {
	t.Run("Service attached to an existing shop", func(t *testing.T) {
		mockRepo := new(MockCatalogRepository)
		svc := NewCatalogService(mockRepo, newMemoryCache())

		shop := &model.Shop{Name: "Atelier"}
		shop.ID = 7
		mockRepo.On("GetShopByID", uint(7)).Return(shop, nil)
		mockRepo.On("CreateService", mock.AnythingOfType("*model.ServiceOffering")).Return(nil)

		offering, err := svc.CreateService(7, "Fitting session", 199.0, 45)

		assert.NoError(t, err)
		assert.Equal(t, uint(7), offering.ShopID)
		assert.Equal(t, "active", offering.Status)
	})

	t.Run("Unknown shop rejected", func(t *testing.T) {
		mockRepo := new(MockCatalogRepository)
		svc := NewCatalogService(mockRepo, newMemoryCache())

		mockRepo.On("GetShopByID", uint(99)).Return(nil, gorm.ErrRecordNotFound)

		offering, err := svc.CreateService(99, "Fitting session", 199.0, 45)

		assert.Nil(t, offering)
		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "CreateService", mock.Anything)
	})
}
