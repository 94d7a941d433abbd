package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"fikhidmatik/internal/domain"
)

type ArtisanRepository struct {
	db *gorm.DB
}

func NewArtisanRepository(db *gorm.DB) *ArtisanRepository {
	return &ArtisanRepository{db: db}
}

// ArtisanFilter mirrors the public listing query parameters.
type ArtisanFilter struct {
	City        string
	Category    string
	MinRating   *float64
	IsAvailable *bool
	Search      string
	Skip        int
	Limit       int
}

// ArtisanListRow is an artisan joined with its user's display fields.
type ArtisanListRow struct {
	domain.Artisan
	FullName string `json:"full_name" gorm:"column:full_name"`
	Avatar   string `json:"avatar,omitempty" gorm:"column:avatar"`
}

func (r *ArtisanRepository) Create(ctx context.Context, a *domain.Artisan) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ArtisanRepository) GetByID(ctx context.Context, id int64) (*domain.Artisan, error) {
	var a domain.Artisan
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ArtisanRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Artisan, error) {
	var a domain.Artisan
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateFields applies a partial update. Only the supplied columns change.
func (r *ArtisanRepository) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&domain.Artisan{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// List runs the filtered listing, ordered by rating descending. Ties fall to
// store order.
func (r *ArtisanRepository) List(ctx context.Context, f ArtisanFilter) ([]ArtisanListRow, error) {
	q := r.db.WithContext(ctx).
		Table("artisans").
		Select("artisans.*, users.full_name, users.avatar").
		Joins("JOIN users ON users.id = artisans.user_id")

	if f.City != "" {
		q = q.Where("LOWER(artisans.city) LIKE ?", "%"+strings.ToLower(f.City)+"%")
	}
	if f.Category != "" {
		q = q.Where("artisans.id IN (SELECT artisan_id FROM artisan_services WHERE category = ?)", f.Category)
	}
	if f.MinRating != nil {
		q = q.Where("artisans.rating >= ?", *f.MinRating)
	}
	if f.IsAvailable != nil {
		q = q.Where("artisans.is_available = ?", *f.IsAvailable)
	}
	if f.Search != "" {
		needle := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(users.full_name) LIKE ? OR LOWER(artisans.bio) LIKE ?", needle, needle)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}

	var rows []ArtisanListRow
	err := q.Order("artisans.rating DESC").
		Offset(f.Skip).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ArtisanRepository) IncrementCompletedJobs(ctx context.Context, artisanID int64) error {
	return r.db.WithContext(ctx).Model(&domain.Artisan{}).
		Where("id = ?", artisanID).
		UpdateColumn("completed_jobs", gorm.Expr("completed_jobs + 1")).Error
}

// Services

func (r *ArtisanRepository) AddService(ctx context.Context, s *domain.ArtisanService) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ArtisanRepository) DeleteService(ctx context.Context, artisanID, serviceID int64) (bool, error) {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND artisan_id = ?", serviceID, artisanID).
		Delete(&domain.ArtisanService{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *ArtisanRepository) ListServices(ctx context.Context, artisanID int64) ([]domain.ArtisanService, error) {
	var out []domain.ArtisanService
	err := r.db.WithContext(ctx).
		Where("artisan_id = ?", artisanID).
		Order("id").
		Find(&out).Error
	return out, err
}

func (r *ArtisanRepository) ListServicesForArtisans(ctx context.Context, artisanIDs []int64) ([]domain.ArtisanService, error) {
	if len(artisanIDs) == 0 {
		return nil, nil
	}
	var out []domain.ArtisanService
	err := r.db.WithContext(ctx).
		Where("artisan_id IN ?", artisanIDs).
		Order("id").
		Find(&out).Error
	return out, err
}

// Portfolio

func (r *ArtisanRepository) AddPortfolio(ctx context.Context, p *domain.ArtisanPortfolio) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ArtisanRepository) DeletePortfolio(ctx context.Context, artisanID, portfolioID int64) (bool, error) {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND artisan_id = ?", portfolioID, artisanID).
		Delete(&domain.ArtisanPortfolio{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *ArtisanRepository) ListPortfolio(ctx context.Context, artisanID int64) ([]domain.ArtisanPortfolio, error) {
	var out []domain.ArtisanPortfolio
	err := r.db.WithContext(ctx).
		Where("artisan_id = ?", artisanID).
		Order("id").
		Find(&out).Error
	return out, err
}
