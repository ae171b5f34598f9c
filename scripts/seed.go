package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/rentnest/rentnest/backend/internal/adapters/database"
	"github.com/rentnest/rentnest/backend/internal/domain/entities"
	"github.com/rentnest/rentnest/backend/internal/infrastructure/clients/postgres"
	"github.com/rentnest/rentnest/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating listings before seeding")
		if _, err := pgClient.DB().ExecContext(ctx, `TRUNCATE TABLE listings`); err != nil {
			log.Fatalf("Failed to truncate listings: %v", err)
		}
	}

	repo := database.NewListingAdapter(pgClient)

	for _, listing := range demoListings() {
		if err := repo.Create(ctx, listing); err != nil {
			log.Fatalf("Failed to seed listing %q: %v", listing.Title, err)
		}
		log.Printf("Seeded listing: %s", listing.Title)
	}

	log.Println("Seeding complete")
}

func demoListings() []*entities.Listing {
	now := time.Now().UTC()

	base := func(offset time.Duration) (string, time.Time) {
		return uuid.New().String(), now.Add(-offset)
	}

	id1, t1 := base(72 * time.Hour)
	id2, t2 := base(48 * time.Hour)
	id3, t3 := base(24 * time.Hour)

	return []*entities.Listing{
		{
			ID:           id1,
			OwnerID:      "demo-owner-1",
			Title:        "Two bedroom family flat in Dhanmondi",
			Description:  "South-facing flat close to Dhanmondi Lake, schools and grocery stores.",
			PropertyType: entities.PropertyTypeApartment,
			Location: entities.Location{
				Division: "Dhaka",
				District: "Dhaka",
				Area:     "Dhanmondi",
				Address:  "House 12, Road 5",
			},
			Rent:     entities.Rent{Amount: 25000, Currency: "BDT", Period: entities.RentPeriodMonthly},
			Features: entities.Features{Bedrooms: 2, Bathrooms: 2, Size: entities.Size{Value: 1100, Unit: "sqft"}, Furnished: entities.SemiFurnished},
			Amenities: []string{
				"lift", "generator", "parking",
			},
			Contact:     entities.Contact{Name: "Rahim Uddin", Phone: "01712345678"},
			Terms:       entities.Terms{MinimumStay: "6 months", SecurityDeposit: 50000, UtilitiesIncluded: false},
			IsAvailable: true,
			CreatedAt:   t1,
			UpdatedAt:   t1,
		},
		{
			ID:           id2,
			OwnerID:      "demo-owner-1",
			Title:        "Single room for students near Chittagong College",
			Description:  "Quiet room with attached bath, suitable for one student.",
			PropertyType: entities.PropertyTypeRoom,
			Location: entities.Location{
				Division: "Chattogram",
				District: "Chattogram",
				Area:     "Chawkbazar",
				Address:  "Kapasgola Road 3",
			},
			Rent:        entities.Rent{Amount: 4500, Currency: "BDT", Period: entities.RentPeriodMonthly},
			Features:    entities.Features{Bedrooms: 1, Bathrooms: 1, Furnished: entities.Furnished},
			Amenities:   []string{"wifi"},
			Contact:     entities.Contact{Name: "Selina Akter", Phone: "01898765432"},
			Terms:       entities.Terms{SecurityDeposit: 4500, UtilitiesIncluded: true},
			IsAvailable: true,
			CreatedAt:   t2,
			UpdatedAt:   t2,
		},
		{
			ID:           id3,
			OwnerID:      "demo-owner-2",
			Title:        "Furnished sublet in Uttara Sector 7",
			Description:  "Short-term sublet with balcony and all utilities included.",
			PropertyType: entities.PropertyTypeSublet,
			Location: entities.Location{
				Division: "Dhaka",
				District: "Dhaka",
				Area:     "Uttara",
				Address:  "Sector 7, Road 14",
			},
			Rent:        entities.Rent{Amount: 12000, Currency: "BDT", Period: entities.RentPeriodMonthly},
			Features:    entities.Features{Bedrooms: 1, Bathrooms: 1, Size: entities.Size{Value: 650, Unit: "sqft"}, Furnished: entities.Furnished},
			Amenities:   []string{"wifi", "generator"},
			Contact:     entities.Contact{Name: "Tanvir Hasan", Phone: "01611223344", Email: "tanvir@example.com"},
			Terms:       entities.Terms{MinimumStay: "1 month", UtilitiesIncluded: true, PetsAllowed: true},
			IsAvailable: false,
			CreatedAt:   t3,
			UpdatedAt:   t3,
		},
	}
}
