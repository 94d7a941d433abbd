package repository

import (
	"context"
	"errors"
	"math"

	"gorm.io/gorm"

	"fikhidmatik/internal/domain"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// maxAggregateRetries bounds the optimistic retry loop around the artisan
// aggregate update.
const maxAggregateRetries = 3

var errAggregateContended = errors.New("artisan aggregate contended")

// Create inserts the review and folds its rating into the artisan's running
// mean within one transaction. The incremental update
// round((rating*total_reviews + r) / (total_reviews+1), 2) keeps the stored
// aggregate equal to the mean of all review ratings; concurrent writers are
// serialized by a compare-and-swap on total_reviews.
func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	var lastErr error
	for attempt := 0; attempt < maxAggregateRetries; attempt++ {
		lastErr = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(rv).Error; err != nil {
				return err
			}

			var a domain.Artisan
			if err := tx.First(&a, rv.ArtisanID).Error; err != nil {
				return err
			}

			newTotal := a.TotalReviews + 1
			newRating := (a.Rating*float64(a.TotalReviews) + rv.Rating) / float64(newTotal)
			newRating = math.Round(newRating*100) / 100

			res := tx.Model(&domain.Artisan{}).
				Where("id = ? AND total_reviews = ?", a.ID, a.TotalReviews).
				Updates(map[string]any{
					"rating":        newRating,
					"total_reviews": newTotal,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errAggregateContended
			}
			return nil
		})

		if !errors.Is(lastErr, errAggregateContended) {
			return lastErr
		}
		rv.ID = 0
	}
	return lastErr
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	var rv domain.Review
	if err := r.db.WithContext(ctx).First(&rv, id).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewRepository) ExistsForBooking(ctx context.Context, bookingID int64) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&domain.Review{}).
		Where("booking_id = ?", bookingID).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

func (r *ReviewRepository) ListByArtisan(ctx context.Context, artisanID int64, skip, limit int) ([]domain.Review, error) {
	if limit <= 0 {
		limit = 20
	}
	var out []domain.Review
	err := r.db.WithContext(ctx).
		Where("artisan_id = ?", artisanID).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// SetArtisanResponse records the one-time artisan reply. Returns false when a
// response is already present.
func (r *ReviewRepository) SetArtisanResponse(ctx context.Context, reviewID int64, response string) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&domain.Review{}).
		Where("id = ? AND artisan_response IS NULL", reviewID).
		Updates(map[string]any{
			"artisan_response": response,
			"responded_at":     gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

type bucketRow struct {
	Bucket float64 `gorm:"column:bucket"`
	Count  int     `gorm:"column:cnt"`
}

type subAverages struct {
	Quality       *float64 `gorm:"column:quality"`
	Punctuality   *float64 `gorm:"column:punctuality"`
	Communication *float64 `gorm:"column:communication"`
}

// Distribution buckets review ratings by floor(rating) into bins 1..5.
func (r *ReviewRepository) Distribution(ctx context.Context, artisanID int64) (map[int]int, error) {
	var rows []bucketRow
	err := r.db.WithContext(ctx).Model(&domain.Review{}).
		Select("FLOOR(rating) AS bucket, COUNT(id) AS cnt").
		Where("artisan_id = ?", artisanID).
		Group("FLOOR(rating)").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	dist := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	for _, row := range rows {
		if b := int(row.Bucket); b >= 1 && b <= 5 {
			dist[b] += row.Count
		}
	}
	return dist, nil
}

// SubRatingAverages computes the means of the optional sub-ratings. NULLs are
// excluded by AVG; a missing mean reads as 0.
func (r *ReviewRepository) SubRatingAverages(ctx context.Context, artisanID int64) (quality, punctuality, communication float64, err error) {
	var row subAverages
	err = r.db.WithContext(ctx).Model(&domain.Review{}).
		Select("AVG(quality_rating) AS quality, AVG(punctuality_rating) AS punctuality, AVG(communication_rating) AS communication").
		Where("artisan_id = ?", artisanID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, 0, err
	}

	round2 := func(p *float64) float64 {
		if p == nil {
			return 0
		}
		return math.Round(*p*100) / 100
	}
	return round2(row.Quality), round2(row.Punctuality), round2(row.Communication), nil
}
