package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/thekada/kada-backend/config"
	"github.com/thekada/kada-backend/internal/app/model"
	"github.com/thekada/kada-backend/internal/app/repository"
	"github.com/thekada/kada-backend/internal/db"
	"github.com/thekada/kada-backend/pkg/util"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Seeds the baseline data a fresh deployment needs: the admin account,
// default business settings, website content and the training curriculum.
// Optionally imports a franchise roster from an XLSX file:
//
//	go run cmd/seed/main.go [roster.xlsx]
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	seedAdminUser(db.GetDB())
	seedSettings(db.GetDB())
	seedContent(db.GetDB())
	seedTraining(db.GetDB())

	if len(os.Args) > 1 {
		importFranchiseRoster(os.Args[1])
	}

	fmt.Println("Seed completed successfully!")
}

func seedAdminUser(gdb *gorm.DB) {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@thekada.in"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "changeme123"
		fmt.Println("SEED_ADMIN_PASSWORD not set, using default (change it immediately)")
	}

	var existing model.User
	err := gdb.Where("email = ?", email).First(&existing).Error
	if err == nil {
		fmt.Printf("Admin user %s already exists, skipping\n", email)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatal("Failed to check for admin user:", err)
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		log.Fatal("Failed to hash admin password:", err)
	}

	admin := model.User{
		Email:        email,
		PasswordHash: hash,
		Name:         "Kada Admin",
		Role:         model.RoleAdmin,
	}
	if err := gdb.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin user:", err)
	}

	fmt.Printf("Admin user created: %s\n", email)
}

func seedSettings(gdb *gorm.DB) {
	defaults := map[string]string{
		"payout_platform_charge": "0",
		"support_email":          "support@thekada.in",
		"support_phone":          "+91 80000 00000",
	}

	settingsRepo := repository.NewSettingsRepository(gdb)
	existing, err := settingsRepo.ReadAll()
	if err != nil {
		log.Fatal("Failed to read settings:", err)
	}

	created := 0
	for key, value := range defaults {
		if _, ok := existing[key]; ok {
			continue
		}
		if err := settingsRepo.Upsert(key, value, 0); err != nil {
			log.Fatal("Failed to seed setting:", err)
		}
		created++
	}

	fmt.Printf("Settings seeded: %d new, %d already present\n", created, len(defaults)-created)
}

func seedContent(gdb *gorm.DB) {
	sections := []model.ContentSection{
		{
			Slug:      "hero",
			Title:     "Own Your Delivery Zone",
			Body:      "Run a hyper-local delivery franchise in your neighbourhood. We handle the platform, you own the zone.",
			Published: true,
		},
		{
			Slug:      "how-it-works",
			Title:     "How It Works",
			Body:      "Pick a free zone, choose a plan, complete KYC, and start earning a revenue share on every delivered order.",
			Published: true,
		},
		{
			Slug:      "pricing",
			Title:     "Plans & Revenue Share",
			Body:      "Free and Standard plans share 60% of commission revenue, Premium shares 70%, Elite shares 80%.",
			Published: true,
		},
		{
			Slug:      "faq",
			Title:     "Frequently Asked Questions",
			Body:      "Answers about zones, payouts, KYC requirements and plan upgrades.",
			Published: true,
		},
	}

	created := 0
	for _, section := range sections {
		var existing model.ContentSection
		err := gdb.Where("slug = ?", section.Slug).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatal("Failed to check content section:", err)
		}
		if err := gdb.Create(&section).Error; err != nil {
			log.Fatal("Failed to seed content section:", err)
		}
		created++
	}

	fmt.Printf("Content sections seeded: %d new\n", created)
}

func seedTraining(gdb *gorm.DB) {
	modules := []model.TrainingModule{
		{Title: "Getting Started With Your Zone", MinPlan: model.PlanFree, Position: 1, Published: true,
			Body: "Setting up your franchise account, understanding your zone boundaries and the order flow."},
		{Title: "Managing Daily Orders", MinPlan: model.PlanFree, Position: 2, Published: true,
			Body: "Accepting, preparing and handing off orders. What the status transitions mean for your payout."},
		{Title: "Growing Order Volume", MinPlan: model.PlanBasic, Position: 3, Published: true,
			Body: "Local promotion tactics and repeat-customer programmes for Standard plan owners and above."},
		{Title: "Reading Your Revenue Dashboard", MinPlan: model.PlanPremium, Position: 4, Published: true,
			Body: "Commission breakdowns, platform charges and how your weekly payout is computed."},
		{Title: "Multi-Zone Operations", MinPlan: model.PlanElite, Position: 5, Published: true,
			Body: "Running several zones: staffing, handoffs and consolidated settlement."},
	}

	created := 0
	for _, module := range modules {
		var existing model.TrainingModule
		err := gdb.Where("title = ?", module.Title).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatal("Failed to check training module:", err)
		}
		if err := gdb.Create(&module).Error; err != nil {
			log.Fatal("Failed to seed training module:", err)
		}
		created++
	}

	fmt.Printf("Training modules seeded: %d new\n", created)
}

// importFranchiseRoster bulk-imports franchise applications from an XLSX
// sheet with columns: zone_id, city, name, email, phone, plan.
func importFranchiseRoster(filePath string) {
	fmt.Printf("Reading XLSX file: %s\n", filePath)
	franchises, err := readFranchisesFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total franchises to import: %d\n", len(franchises))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	franchiseRepo := repository.NewFranchiseRepository(db.GetDB())
	if err := franchiseRepo.BulkCreate(franchises, 100); err != nil {
		log.Fatal("Failed to bulk create franchises:", err)
	}

	fmt.Printf("Franchises imported: %d\n", len(franchises))
}

var validRosterPlans = map[model.FranchisePlan]bool{
	model.PlanFree:    true,
	model.PlanBasic:   true,
	model.PlanPremium: true,
	model.PlanElite:   true,
}

func readFranchisesFromXLSX(filePath string) ([]model.Franchise, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var franchises []model.Franchise
	seenZones := make(map[string]bool)
	skippedCount := 0

	for i, row := range rows {
		if i == 0 {
			// header row
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 4 {
			skippedCount++
			continue
		}

		zoneID := strings.TrimSpace(row[0])
		city := strings.TrimSpace(row[1])
		name := strings.TrimSpace(row[2])
		email := strings.TrimSpace(row[3])

		phone := ""
		if len(row) > 4 {
			phone = strings.TrimSpace(row[4])
		}
		plan := model.PlanFree
		if len(row) > 5 {
			if p := model.FranchisePlan(strings.ToLower(strings.TrimSpace(row[5]))); p != "" {
				plan = p
			}
		}

		if zoneID == "" || city == "" || name == "" {
			skippedCount++
			continue
		}
		if !validRosterPlans[plan] {
			skippedCount++
			continue
		}
		if seenZones[zoneID] {
			skippedCount++
			continue
		}
		seenZones[zoneID] = true

		franchises = append(franchises, model.Franchise{
			ZoneID:       zoneID,
			City:         city,
			Name:         name,
			Email:        email,
			Phone:        phone,
			PlanSelected: plan,
			Status:       model.StatusPendingVerification,
		})
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", len(rows)-1)
	fmt.Printf("  Valid franchises: %d\n", len(franchises))
	fmt.Printf("  Skipped rows: %d\n", skippedCount)

	return franchises, nil
}
