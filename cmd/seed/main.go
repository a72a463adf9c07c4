package main

import (
	"context"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"rentalapp/internal/database"
	"rentalapp/internal/domain"
	"rentalapp/internal/repository"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "rentalapp.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM messages")
	db.Exec("DELETE FROM conversations")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM favorites")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM properties")
	db.Exec("DELETE FROM verification_codes")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	properties := repository.NewPropertyRepository(db)
	bookings := repository.NewBookingRepository(db)
	reviews := repository.NewReviewRepository(db)

	log.Println("Creating users...")

	hostHash, _ := bcrypt.GenerateFromPassword([]byte("Host1234"), bcrypt.DefaultCost)
	host := &domain.User{
		Email:         "alex@alexhomes.com",
		PasswordHash:  string(hostHash),
		Name:          "Alex Homes",
		Phone:         "+14155550134",
		Country:       "United States",
		Role:          domain.RoleHost,
		EmailVerified: true,
	}
	if err := users.Create(ctx, host); err != nil {
		log.Fatal("host create failed:", err)
	}

	guestHash, _ := bcrypt.GenerateFromPassword([]byte("Guest1234"), bcrypt.DefaultCost)
	guest := &domain.User{
		Email:         "jane@example.com",
		PasswordHash:  string(guestHash),
		Name:          "Jane Cooper",
		Phone:         "+14155550188",
		Country:       "United States",
		Role:          domain.RoleGuest,
		WalletBalance: 25000,
		EmailVerified: true,
	}
	if err := users.Create(ctx, guest); err != nil {
		log.Fatal("guest create failed:", err)
	}

	log.Println("Creating properties...")

	listings := []*domain.Property{
		{
			HostID:          host.ID,
			Name:            "Sunset Villa",
			Address:         "12 Palm Grove",
			City:            "Malibu",
			Country:         "United States",
			Description:     "Ocean-view villa with a private pool and full kitchen.",
			PricePerNight:   650,
			Bedrooms:        4,
			Bathrooms:       3,
			Area:            280,
			Amenities:       []string{"wifi", "pool", "kitchen", "parking", "air_conditioning"},
			Photos:          []string{"/static/properties/sunset-villa-1.jpg"},
			Rating:          4.8,
			ReviewCount:     42,
			DiscountPercent: 0,
			MaxGuests:       8,
			CheckInTime:     "15:00",
			CheckOutTime:    "11:00",
			IsAvailable:     true,
		},
		{
			HostID:          host.ID,
			Name:            "Downtown Loft",
			Address:         "88 5th Avenue",
			City:            "New York",
			Country:         "United States",
			Description:     "Bright loft a short walk from the subway.",
			PricePerNight:   320,
			Bedrooms:        1,
			Bathrooms:       1,
			Area:            62,
			Amenities:       []string{"wifi", "kitchen", "washer"},
			Photos:          []string{"/static/properties/downtown-loft-1.jpg"},
			Rating:          4.3,
			ReviewCount:     17,
			DiscountPercent: 15,
			MaxGuests:       3,
			CheckInTime:     "14:00",
			CheckOutTime:    "10:00",
			IsAvailable:     true,
		},
		{
			HostID:        host.ID,
			Name:          "Lakeside Cabin",
			Address:       "7 Pine Trail",
			City:          "Tahoe City",
			Country:       "United States",
			Description:   "Quiet cabin by the lake, pets welcome.",
			PricePerNight: 180,
			Bedrooms:      2,
			Bathrooms:     1,
			Area:          95,
			Amenities:     []string{"wifi", "fireplace", "parking", "pets_allowed"},
			Photos:        []string{"/static/properties/lakeside-cabin-1.jpg"},
			Rating:        4.6,
			ReviewCount:   28,
			MaxGuests:     5,
			CheckInTime:   "16:00",
			CheckOutTime:  "11:00",
			IsAvailable:   true,
		},
	}
	for _, p := range listings {
		if err := properties.Create(ctx, p); err != nil {
			log.Fatal("property create failed:", err)
		}
	}

	log.Println("Creating booking history...")

	checkIn := time.Now().AddDate(0, 0, -40).Truncate(24 * time.Hour)
	checkOut := checkIn.AddDate(0, 0, 3)
	past := &domain.Booking{
		Ref:           "seed-completed-1",
		PropertyID:    listings[2].ID,
		UserID:        guest.ID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Nights:        3,
		Adults:        2,
		Subtotal:      540,
		Tax:           43.2,
		TotalPrice:    583.2,
		PaymentMethod: domain.PayCreditCard,
		PaymentStatus: domain.PaymentCompleted,
		Status:        domain.BookingCompleted,
	}
	if err := bookings.Create(ctx, past); err != nil {
		log.Fatal("booking create failed:", err)
	}

	upIn := time.Now().AddDate(0, 0, 14).Truncate(24 * time.Hour)
	upOut := upIn.AddDate(0, 0, 5)
	upcoming := &domain.Booking{
		Ref:           "seed-upcoming-1",
		PropertyID:    listings[0].ID,
		UserID:        guest.ID,
		CheckIn:       upIn,
		CheckOut:      upOut,
		Nights:        5,
		Adults:        2,
		Children:      1,
		Subtotal:      3250,
		Tax:           260,
		TotalPrice:    3510,
		PaymentMethod: domain.PayWallet,
		PaymentStatus: domain.PaymentCompleted,
		Status:        domain.BookingPending,
	}
	if err := bookings.Create(ctx, upcoming); err != nil {
		log.Fatal("booking create failed:", err)
	}

	log.Println("Creating reviews...")
	for i, comment := range []string{
		"Great stay, would come back.",
		"Clean and exactly as described.",
	} {
		r := &domain.Review{
			PropertyID: listings[2].ID,
			UserID:     guest.ID,
			Rating:     4 + i%2,
			Comment:    comment,
		}
		if err := reviews.Create(ctx, r); err != nil {
			log.Fatal("review create failed:", err)
		}
	}
	if avg, count, err := reviews.AggregateForProperty(ctx, listings[2].ID); err == nil {
		_ = properties.UpdateRating(ctx, listings[2].ID, avg, count)
	}

	log.Println("Seed completed!")
	log.Printf("Host: %s / Host1234", host.Email)
	log.Printf("Guest: %s / Guest1234", guest.Email)
}
