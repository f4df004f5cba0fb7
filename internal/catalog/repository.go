package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/C00lPIXER/aperture/pkg/db/models"
)

// Repository reads the catalog tables.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type listFilter struct {
	Terms       []string
	CategoryIDs []uuid.UUID
	BrandIDs    []uuid.UUID
}

func (r *Repository) dialect() string {
	return r.db.Dialector.Name()
}

func (r *Repository) scoped(ctx context.Context, filter listFilter) *gorm.DB {
	qb := r.db.WithContext(ctx).Model(&models.Product{}).Where("is_active = ?", true)
	if clause, args := searchClause(r.dialect(), filter.Terms); clause != "" {
		qb = qb.Where(clause, args...)
	}
	if len(filter.CategoryIDs) > 0 {
		qb = qb.Where("category_id IN ?", filter.CategoryIDs)
	}
	if len(filter.BrandIDs) > 0 {
		qb = qb.Where("brand_id IN ?", filter.BrandIDs)
	}
	return qb
}

// ListProducts returns one page of active products and the filtered total.
func (r *Repository) ListProducts(ctx context.Context, filter listFilter, order string, offset, limit int) ([]models.Product, int64, error) {
	var total int64
	if err := r.scoped(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Product
	err := r.scoped(ctx, filter).
		Preload("Category").
		Preload("Brand").
		Order(order).
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListFeatured returns active products whose category and brand are active.
func (r *Repository) ListFeatured(ctx context.Context, limit int) ([]models.Product, error) {
	activeCategories := r.db.Model(&models.Category{}).Select("id").Where("is_active = ?", true)
	activeBrands := r.db.Model(&models.Brand{}).Select("id").Where("is_active = ?", true)

	var rows []models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Brand").
		Where("is_active = ?", true).
		Where("category_id IN (?)", activeCategories).
		Where("brand_id IN (?)", activeBrands).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// FindProduct loads a product by id or slug.
func (r *Repository) FindProduct(ctx context.Context, idOrSlug string) (*models.Product, error) {
	qb := r.db.WithContext(ctx).Preload("Category").Preload("Brand")
	if id, err := uuid.Parse(idOrSlug); err == nil {
		qb = qb.Where("id = ?", id)
	} else {
		qb = qb.Where("slug = ?", idOrSlug)
	}
	var product models.Product
	if err := qb.First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ListRelated returns other active products of the same category.
func (r *Repository) ListRelated(ctx context.Context, product *models.Product, limit int) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Brand").
		Where("category_id = ? AND id <> ? AND is_active = ?", product.CategoryID, product.ID, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *Repository) ListBrands(ctx context.Context) ([]models.Brand, error) {
	var rows []models.Brand
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

// CategoryIDsByName resolves category names, ignoring unknown ones.
func (r *Repository) CategoryIDsByName(ctx context.Context, names []string) ([]uuid.UUID, error) {
	return r.idsByName(ctx, &models.Category{}, names)
}

// BrandIDsByName resolves brand names, ignoring unknown ones.
func (r *Repository) BrandIDsByName(ctx context.Context, names []string) ([]uuid.UUID, error) {
	return r.idsByName(ctx, &models.Brand{}, names)
}

func (r *Repository) idsByName(ctx context.Context, model any, names []string) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	if len(names) == 0 {
		return ids, nil
	}
	err := r.db.WithContext(ctx).Model(model).Where("name IN ?", names).Pluck("id", &ids).Error
	return ids, err
}
