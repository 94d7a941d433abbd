package artisan

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fikhidmatik/internal/domain"
	"fikhidmatik/internal/repository"
)

type Service struct {
	artisans ArtisanRepository
	users    UserRepository
}

func NewService(artisans ArtisanRepository, users UserRepository) *Service {
	return &Service{artisans: artisans, users: users}
}

func (s *Service) List(ctx context.Context, f repository.ArtisanFilter) ([]ListItem, error) {
	if f.MinRating != nil && (*f.MinRating < 0 || *f.MinRating > 5) {
		return nil, ErrValidation
	}

	rows, err := s.artisans.List(ctx, f)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}

	services, err := s.artisans.ListServicesForArtisans(ctx, ids)
	if err != nil {
		return nil, err
	}
	byArtisan := make(map[int64][]domain.ArtisanService, len(ids))
	for _, sv := range services {
		byArtisan[sv.ArtisanID] = append(byArtisan[sv.ArtisanID], sv)
	}

	out := make([]ListItem, 0, len(rows))
	for _, r := range rows {
		svcs := byArtisan[r.ID]
		if svcs == nil {
			svcs = []domain.ArtisanService{}
		}
		out = append(out, ListItem{
			ID:           r.ID,
			UserID:       r.UserID,
			FullName:     r.FullName,
			Avatar:       r.Avatar,
			Bio:          r.Bio,
			City:         r.City,
			Rating:       r.Rating,
			TotalReviews: r.TotalReviews,
			IsAvailable:  r.IsAvailable,
			IsVerified:   r.IsVerified,
			Services:     svcs,
		})
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Detail, error) {
	a, err := s.artisans.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	user, err := s.users.GetByID(ctx, a.UserID)
	if err != nil {
		return nil, err
	}

	services, err := s.artisans.ListServices(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	portfolio, err := s.artisans.ListPortfolio(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	if services == nil {
		services = []domain.ArtisanService{}
	}
	if portfolio == nil {
		portfolio = []domain.ArtisanPortfolio{}
	}

	return &Detail{
		Artisan:   *a,
		FullName:  user.FullName,
		Avatar:    user.Avatar,
		Services:  services,
		Portfolio: portfolio,
	}, nil
}

// UpdateMyProfile applies a partial update: only fields present in the
// request change.
func (s *Service) UpdateMyProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*domain.Artisan, error) {
	a, err := s.profileOf(ctx, userID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if req.ExperienceYears != nil {
		fields["experience_years"] = *req.ExperienceYears
	}
	if req.City != nil {
		fields["city"] = *req.City
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.Latitude != nil {
		fields["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		fields["longitude"] = *req.Longitude
	}
	if req.ServiceRadiusKm != nil {
		fields["service_radius_km"] = *req.ServiceRadiusKm
	}
	if req.IsAvailable != nil {
		fields["is_available"] = *req.IsAvailable
	}
	if req.WorkingHours != nil {
		fields["working_hours"] = *req.WorkingHours
	}
	if req.IDDocument != nil {
		fields["id_document"] = *req.IDDocument
	}

	if err := s.artisans.UpdateFields(ctx, a.ID, fields); err != nil {
		return nil, err
	}
	return s.artisans.GetByID(ctx, a.ID)
}

func (s *Service) AddService(ctx context.Context, userID int64, req CreateServiceRequest) (*domain.ArtisanService, error) {
	a, err := s.profileOf(ctx, userID)
	if err != nil {
		return nil, err
	}

	priceType := domain.PriceType(req.PriceType)
	if priceType == "" {
		priceType = domain.PriceFixed
	}

	sv := &domain.ArtisanService{
		ArtisanID:   a.ID,
		Category:    req.Category,
		Name:        req.Name,
		Description: req.Description,
		PriceMin:    req.PriceMin,
		PriceMax:    req.PriceMax,
		PriceType:   priceType,
	}
	if err := s.artisans.AddService(ctx, sv); err != nil {
		return nil, err
	}
	return sv, nil
}

func (s *Service) RemoveService(ctx context.Context, userID, serviceID int64) error {
	a, err := s.profileOf(ctx, userID)
	if err != nil {
		return err
	}

	ok, err := s.artisans.DeleteService(ctx, a.ID, serviceID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *Service) AddPortfolio(ctx context.Context, userID int64, req CreatePortfolioRequest) (*domain.ArtisanPortfolio, error) {
	a, err := s.profileOf(ctx, userID)
	if err != nil {
		return nil, err
	}

	p := &domain.ArtisanPortfolio{
		ArtisanID:   a.ID,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		BeforeImage: req.BeforeImage,
	}
	if err := s.artisans.AddPortfolio(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) RemovePortfolio(ctx context.Context, userID, portfolioID int64) error {
	a, err := s.profileOf(ctx, userID)
	if err != nil {
		return err
	}

	ok, err := s.artisans.DeletePortfolio(ctx, a.ID, portfolioID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *Service) profileOf(ctx context.Context, userID int64) (*domain.Artisan, error) {
	a, err := s.artisans.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return a, nil
}
