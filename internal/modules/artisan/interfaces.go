package artisan

import (
	"context"

	"fikhidmatik/internal/domain"
	"fikhidmatik/internal/repository"
)

type ArtisanRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Artisan, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Artisan, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]any) error
	List(ctx context.Context, f repository.ArtisanFilter) ([]repository.ArtisanListRow, error)

	AddService(ctx context.Context, s *domain.ArtisanService) error
	DeleteService(ctx context.Context, artisanID, serviceID int64) (bool, error)
	ListServices(ctx context.Context, artisanID int64) ([]domain.ArtisanService, error)
	ListServicesForArtisans(ctx context.Context, artisanIDs []int64) ([]domain.ArtisanService, error)

	AddPortfolio(ctx context.Context, p *domain.ArtisanPortfolio) error
	DeletePortfolio(ctx context.Context, artisanID, portfolioID int64) (bool, error)
	ListPortfolio(ctx context.Context, artisanID int64) ([]domain.ArtisanPortfolio, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
