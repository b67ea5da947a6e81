package main

import (
	_ "embed"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"royalstay/internal/pricing"
	"royalstay/internal/promos"
	"royalstay/internal/rooms"
	"royalstay/internal/shared/config"
	"royalstay/internal/shared/database"

	"github.com/golang-jwt/jwt/v4"
	"github.com/gosimple/slug"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed seed.yaml
var defaultSeed []byte

type SeedFile struct {
	Rooms  []RoomSeed  `yaml:"rooms"`
	Promos []PromoSeed `yaml:"promos"`
	Users  []UserSeed  `yaml:"users"`
}

type RoomSeed struct {
	Name          string   `yaml:"name"`
	Category      string   `yaml:"category"`
	Description   string   `yaml:"description"`
	NightlyRate   float64  `yaml:"nightly_rate"`
	BreakfastRate *float64 `yaml:"breakfast_rate"`
	TotalRooms    int      `yaml:"total_rooms"`
}

type PromoSeed struct {
	Code             string  `yaml:"code"`
	Description      string  `yaml:"description"`
	DiscountType     string  `yaml:"discount_type"`
	DiscountValue    float64 `yaml:"discount_value"`
	MinAmount        float64 `yaml:"min_amount"`
	MaxDiscount      float64 `yaml:"max_discount"`
	UsageLimit       int     `yaml:"usage_limit"`
	PerCustomerLimit int     `yaml:"per_customer_limit"`
	ValidDays        int     `yaml:"valid_days"`
}

// UserSeed only mints development tokens, accounts live in the identity provider
type UserSeed struct {
	ID    string `yaml:"id"`
	Email string `yaml:"email"`
	Role  string `yaml:"role"`
}

type Seeder struct {
	db  *database.DB
	now time.Time
}

func main() {
	file := flag.String("file", "", "seed file (defaults to the embedded seed.yaml)")
	clean := flag.Bool("clean", true, "truncate rooms, promos and bookings first")
	tokens := flag.Bool("tokens", true, "print development access tokens for the seeded users")
	flag.Parse()

	_ = godotenv.Load()

	fmt.Println("🌱 Starting RoyalStay Database Seeder...")

	seed, err := loadSeed(*file)
	if err != nil {
		log.Fatalf("Failed to read seed file: %v", err)
	}

	cfg := config.Load()
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db, now: time.Now().UTC()}

	if *clean {
		fmt.Println("\n🧹 Cleaning database...")
		if err := seeder.CleanDatabase(); err != nil {
			log.Fatalf("Failed to clean database: %v", err)
		}
	}

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(seed); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	if *tokens {
		fmt.Println("\n🔑 Development tokens (valid 24h):")
		for _, u := range seed.Users {
			token, err := devToken(cfg.JWT.Secret, u, seeder.now)
			if err != nil {
				log.Fatalf("Failed to sign token for %s: %v", u.Email, err)
			}
			fmt.Printf("  %s (%s)\n  %s\n", u.Email, u.Role, token)
		}
	}

	fmt.Println("\n🎉 Seeding completed!")
}

func loadSeed(path string) (*SeedFile, error) {
	data := defaultSeed
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, err
		}
	}
	return parseSeed(data)
}

func parseSeed(data []byte) (*SeedFile, error) {
	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("invalid seed yaml: %w", err)
	}
	for _, r := range seed.Rooms {
		// ParseCategory falls back to STANDARD, catch typos here
		if pricing.ParseCategory(r.Category) == pricing.CategoryStandard && !strings.EqualFold(strings.TrimSpace(r.Category), "standard") {
			return nil, fmt.Errorf("room %q has unknown category %q", r.Name, r.Category)
		}
		if r.NightlyRate <= 0 || r.TotalRooms <= 0 {
			return nil, fmt.Errorf("room %q needs a positive rate and room count", r.Name)
		}
	}
	for _, p := range seed.Promos {
		if !promos.DiscountType(p.DiscountType).IsValid() {
			return nil, fmt.Errorf("promo %q has unknown discount type %q", p.Code, p.DiscountType)
		}
	}
	return &seed, nil
}

// CleanDatabase truncates the booking tables, dependants first
func (s *Seeder) CleanDatabase() error {
	tables := []string{"promo_redemptions", "bookings", "promo_codes", "rooms"}

	return s.db.PostgreSQL.Transaction(func(tx *gorm.DB) error {
		for _, table := range tables {
			fmt.Printf("  Truncating table: %s\n", table)
			if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
				return fmt.Errorf("failed to truncate table %s: %w", table, err)
			}
		}
		return nil
	})
}

func (s *Seeder) SeedAll(seed *SeedFile) error {
	return s.db.PostgreSQL.Transaction(func(tx *gorm.DB) error {
		for _, r := range seed.Rooms {
			room := buildRoom(r)
			if err := tx.Create(room).Error; err != nil {
				return fmt.Errorf("failed to create room %s: %w", r.Name, err)
			}
			fmt.Printf("    ✅ Room: %s (%s) x%d at %.0f\n", room.Name, room.Category, room.TotalRooms, room.NightlyRate)
		}

		for _, p := range seed.Promos {
			promo := buildPromo(p, s.now)
			if err := tx.Create(promo).Error; err != nil {
				return fmt.Errorf("failed to create promo %s: %w", p.Code, err)
			}
			fmt.Printf("    ✅ Promo: %s\n", promo.Code)
		}
		return nil
	})
}

func buildRoom(r RoomSeed) *rooms.Room {
	return &rooms.Room{
		Name:           r.Name,
		Slug:           slug.Make(r.Name),
		Category:       pricing.ParseCategory(r.Category),
		Description:    r.Description,
		NightlyRate:    r.NightlyRate,
		BreakfastRate:  r.BreakfastRate,
		TotalRooms:     r.TotalRooms,
		AvailableRooms: r.TotalRooms,
		IsAvailable:    true,
	}
}

func buildPromo(p PromoSeed, now time.Time) *promos.PromoCode {
	promo := &promos.PromoCode{
		Code:             promos.NormalizeCode(p.Code),
		Description:      p.Description,
		DiscountType:     promos.DiscountType(p.DiscountType),
		DiscountValue:    p.DiscountValue,
		MinAmount:        p.MinAmount,
		MaxDiscount:      p.MaxDiscount,
		UsageLimit:       p.UsageLimit,
		PerCustomerLimit: p.PerCustomerLimit,
		Active:           true,
	}
	if p.ValidDays > 0 {
		until := now.AddDate(0, 0, p.ValidDays)
		promo.ValidFrom = &now
		promo.ValidUntil = &until
	}
	return promo
}

func devToken(secret string, u UserSeed, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"user_id": u.ID,
		"email":   u.Email,
		"role":    u.Role,
		"type":    "access",
		"iat":     now.Unix(),
		"exp":     now.Add(24 * time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
