package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"fikhidmatik/internal/database"
	"fikhidmatik/internal/domain"
	"fikhidmatik/internal/modules/catalog"
	"fikhidmatik/internal/repository"
)

func main() {
	db, err := database.Connect("fikhidmatik.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (children first to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM messages")
	db.Exec("DELETE FROM conversations")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM artisan_portfolio")
	db.Exec("DELETE FROM artisan_services")
	db.Exec("DELETE FROM artisans")
	db.Exec("DELETE FROM refresh_tokens")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	artisans := repository.NewArtisanRepository(db)
	bookings := repository.NewBookingRepository(db)
	reviews := repository.NewReviewRepository(db)

	// ================== USERS ==================
	log.Println("Creating users...")

	admin := &domain.User{
		Email:        "admin@fikhidmatik.ma",
		PasswordHash: mustHash("admin123"),
		FullName:     "Administrateur",
		Role:         domain.RoleAdmin,
		IsActive:     true,
		IsVerified:   true,
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatal("create admin:", err)
	}
	log.Println("Admin created: admin@fikhidmatik.ma / admin123")

	customers := make([]*domain.User, 0, 3)
	customerNames := []string{"Amine Benali", "Fatima Zahra", "Youssef El Idrissi"}
	for i, name := range customerNames {
		u := &domain.User{
			Email:        fmt.Sprintf("client%d@gmail.com", i+1),
			Phone:        fmt.Sprintf("+2126612345%02d", i+10),
			PasswordHash: mustHash("client123"),
			FullName:     name,
			Role:         domain.RoleCustomer,
			IsActive:     true,
			IsVerified:   true,
		}
		if err := users.Create(ctx, u); err != nil {
			log.Fatal("create customer:", err)
		}
		customers = append(customers, u)
	}

	// ================== ARTISANS ==================
	log.Println("Creating artisans...")

	type artisanSpec struct {
		name     string
		city     string
		category string
		bio      string
		years    int
	}
	specs := []artisanSpec{
		{"Hassan Le Plombier", "Casablanca", "plumbing", "Plombier professionnel, intervention rapide", 12},
		{"Karim Électricien", "Rabat", "electrical", "Installations et dépannages électriques", 8},
		{"Omar Peintre", "Marrakech", "painting", "Peinture intérieure et extérieure", 5},
	}

	profiles := make([]*domain.Artisan, 0, len(specs))
	for i, sp := range specs {
		u := &domain.User{
			Email:        fmt.Sprintf("artisan%d@fikhidmatik.ma", i+1),
			Phone:        fmt.Sprintf("+2126698765%02d", i+10),
			PasswordHash: mustHash("artisan123"),
			FullName:     sp.name,
			Role:         domain.RoleArtisan,
			IsActive:     true,
			IsVerified:   true,
		}
		if err := users.Create(ctx, u); err != nil {
			log.Fatal("create artisan user:", err)
		}

		a := &domain.Artisan{
			UserID:          u.ID,
			Bio:             sp.bio,
			ExperienceYears: sp.years,
			City:            sp.city,
			ServiceRadiusKm: 20,
			IsAvailable:     true,
			IsVerified:      true,
		}
		if err := artisans.Create(ctx, a); err != nil {
			log.Fatal("create artisan profile:", err)
		}
		profiles = append(profiles, a)

		min := 150.0 + float64(rand.Intn(200))
		max := min + 300
		if err := artisans.AddService(ctx, &domain.ArtisanService{
			ArtisanID:   a.ID,
			Category:    sp.category,
			Name:        categoryLabel(sp.category),
			Description: sp.bio,
			PriceMin:    &min,
			PriceMax:    &max,
			PriceType:   domain.PriceFixed,
		}); err != nil {
			log.Fatal("create service:", err)
		}

		if err := artisans.AddPortfolio(ctx, &domain.ArtisanPortfolio{
			ArtisanID: a.ID,
			Title:     fmt.Sprintf("Chantier %d", i+1),
			ImageURL:  fmt.Sprintf("/static/portfolio/%d.jpg", i+1),
		}); err != nil {
			log.Fatal("create portfolio:", err)
		}
	}

	// ================== BOOKINGS ==================
	log.Println("Creating bookings...")

	statuses := []domain.BookingStatus{
		domain.BookingPending,
		domain.BookingAccepted,
		domain.BookingInProgress,
		domain.BookingCompleted,
		domain.BookingCompleted,
		domain.BookingCancelled,
	}

	completed := make([]*domain.Booking, 0, 2)
	for i, status := range statuses {
		customer := customers[i%len(customers)]
		a := profiles[i%len(profiles)]

		price := 200.0 + float64(rand.Intn(400))
		b := &domain.Booking{
			CustomerID:         customer.ID,
			ArtisanID:          a.ID,
			ServiceCategory:    specs[i%len(specs)].category,
			ServiceDescription: "Intervention à domicile",
			ScheduledDate:      time.Now().AddDate(0, 0, i-3),
			ScheduledTime:      "10:00",
			Address:            fmt.Sprintf("%d Rue Hassan II", 10+i),
			City:               a.City,
			EstimatedPrice:     &price,
			Status:             domain.BookingPending,
			PaymentStatus:      domain.PaymentPending,
		}
		if err := bookings.Create(ctx, b); err != nil {
			log.Fatal("create booking:", err)
		}

		if status != domain.BookingPending {
			fields := map[string]any{"status": string(status)}
			if status == domain.BookingCompleted {
				fields["final_price"] = price + 50
				fields["payment_status"] = string(domain.PaymentPaid)
				fields["stripe_payment_id"] = "pi_" + uuid.NewString()
			}
			if err := bookings.UpdateFields(ctx, b.ID, fields); err != nil {
				log.Fatal("update booking:", err)
			}
			b.Status = status
		}
		if status == domain.BookingCompleted {
			if err := artisans.IncrementCompletedJobs(ctx, a.ID); err != nil {
				log.Fatal("increment completed jobs:", err)
			}
			completed = append(completed, b)
		}
	}

	// ================== REVIEWS ==================
	log.Println("Creating reviews...")

	ratings := []float64{4, 5}
	for i, b := range completed {
		quality := ratings[i]
		if err := reviews.Create(ctx, &domain.Review{
			BookingID:     b.ID,
			CustomerID:    b.CustomerID,
			ArtisanID:     b.ArtisanID,
			Rating:        ratings[i],
			QualityRating: &quality,
			Comment:       "Travail soigné, je recommande",
		}); err != nil {
			log.Fatal("create review:", err)
		}
	}

	log.Println("Seed complete.")
}

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("hash password:", err)
	}
	return string(hash)
}

func categoryLabel(id string) string {
	for _, c := range catalog.Categories {
		if c.ID == id {
			return c.NameFR
		}
	}
	return id
}
