package repository

import (
	"gemshop_api/internal/domain/catalog/model"

	"gorm.io/gorm"
)

type CatalogRepository interface {
	CreateShop(shop *model.Shop) error
	GetShopByID(id uint) (*model.Shop, error)
	GetShops(offset, limit int) ([]model.Shop, int64, error)

	CreateProduct(product *model.Product) error
	UpdateProduct(product *model.Product) error
	GetProductByID(id uint) (*model.Product, error)
	GetProducts(shopID uint, offset, limit int) ([]model.Product, int64, error)
	CountProductsByIDs(ids []uint) (int64, error)

	CreateService(svc *model.ServiceOffering) error
	GetServiceByID(id uint) (*model.ServiceOffering, error)
	GetServices(shopID uint, offset, limit int) ([]model.ServiceOffering, int64, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// --- Shop ---

func (r *catalogRepository) CreateShop(shop *model.Shop) error {
	return r.db.Create(shop).Error
}

func (r *catalogRepository) GetShopByID(id uint) (*model.Shop, error) {
	var shop model.Shop
	if err := r.db.First(&shop, id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *catalogRepository) GetShops(offset, limit int) ([]model.Shop, int64, error) {
	var shops []model.Shop
	var total int64

	query := r.db.Model(&model.Shop{}).Where("status = ?", model.ShopStatusActive)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&shops).Error; err != nil {
		return nil, 0, err
	}
	return shops, total, nil
}

// --- Product ---

func (r *catalogRepository) CreateProduct(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *catalogRepository) UpdateProduct(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *catalogRepository) GetProductByID(id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *catalogRepository) GetProducts(shopID uint, offset, limit int) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	query := r.db.Model(&model.Product{}).Where("status = ?", model.ProductStatusOnSale)
	if shopID != 0 {
		query = query.Where("shop_id = ?", shopID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// CountProductsByIDs 统计存在的商品数量（订单创建前校验用）
func (r *catalogRepository) CountProductsByIDs(ids []uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

// --- ServiceOffering ---

func (r *catalogRepository) CreateService(svc *model.ServiceOffering) error {
	return r.db.Create(svc).Error
}

func (r *catalogRepository) GetServiceByID(id uint) (*model.ServiceOffering, error) {
	var svc model.ServiceOffering
	if err := r.db.First(&svc, id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *catalogRepository) GetServices(shopID uint, offset, limit int) ([]model.ServiceOffering, int64, error) {
	var services []model.ServiceOffering
	var total int64

	query := r.db.Model(&model.ServiceOffering{}).Where("status = ?", "active")
	if shopID != 0 {
		query = query.Where("shop_id = ?", shopID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Find(&services).Error; err != nil {
		return nil, 0, err
	}
	return services, total, nil
}
