package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rafaelsantos7520/draymodas/config"
	"github.com/rafaelsantos7520/draymodas/models"
	"github.com/rafaelsantos7520/draymodas/services"
	"github.com/sirupsen/logrus"
)

var (
	defaultCategories = []string{"Vestidos", "Blusas", "Saias", "Calças", "Conjuntos"}
	defaultSizes      = []models.SizeRequest{
		{Name: "PP", Description: "Extra pequeno"},
		{Name: "P", Description: "Pequeno"},
		{Name: "M", Description: "Médio"},
		{Name: "G", Description: "Grande"},
		{Name: "GG", Description: "Extra grande"},
	}
)

// main seeds the default categories and sizes, and optionally a super admin.
// Usage: SEED_ADMIN_EMAIL=... SEED_ADMIN_PASSWORD=... go run ./cmd/seed
// Without SEED_ADMIN_EMAIL the admin details are asked for on stdin.
func main() {
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("DRAYMODAS - Catalog & Super Admin Seeder")
	fmt.Println("════════════════════════════════════════════════════════════")

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	config.InitLogger(cfg)

	if err := config.InitDB(cfg); err != nil {
		logrus.Fatalf("database: %v", err)
	}
	defer config.CloseDB()

	ctx, cancel := config.WithCustomTimeout(time.Minute)
	defer cancel()

	categories := services.NewCategoryService(config.DB, nil)
	sizes := services.NewSizeService(config.DB, nil)
	if err := seedCatalog(ctx, categories, sizes); err != nil {
		logrus.Fatalf("seed catalog: %v", err)
	}

	if os.Getenv("SEED_SKIP_ADMIN") != "" {
		return
	}

	email, name, password := os.Getenv("SEED_ADMIN_EMAIL"), os.Getenv("SEED_ADMIN_NAME"), os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" {
		email, password, name = getAdminCredentials()
	}
	if name == "" {
		name = "Super Admin"
	}

	auth := services.NewAdminAuthService(config.DB, nil)
	admin, err := auth.CreateAdmin(ctx, email, name, password, models.RoleSuperAdmin)
	switch {
	case errors.Is(err, services.ErrConflict):
		logrus.WithField("email", email).Warn("admin already exists, skipping")
		return
	case err != nil:
		logrus.Fatalf("Failed to create super admin: %v", err)
	}

	fmt.Println()
	fmt.Println("✅ Super Admin Created Successfully!")
	fmt.Printf("ID:    %s\n", admin.ID)
	fmt.Printf("Email: %s\n", admin.Email)
	fmt.Printf("Name:  %s\n", admin.Name)
	fmt.Printf("Role:  %s\n", admin.Role)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("1. Start the API server: go run .")
	fmt.Println("2. Login at POST /api/v1/admin/auth/login with email and password")
	fmt.Println("3. Use the returned token (or the admin_token cookie) for CMS requests")
}

// seedCatalog creates the default categories and sizes. Existing names are left alone.
func seedCatalog(ctx context.Context, categories *services.CategoryService, sizes *services.SizeService) error {
	for _, name := range defaultCategories {
		_, err := categories.Create(ctx, models.CategoryRequest{Name: name})
		switch {
		case err == nil:
			logrus.WithField("category", name).Info("category created")
		case errors.Is(err, services.ErrConflict):
			logrus.WithField("category", name).Debug("category exists")
		default:
			return err
		}
	}

	for _, req := range defaultSizes {
		_, err := sizes.Create(ctx, req)
		switch {
		case err == nil:
			logrus.WithField("size", req.Name).Info("size created")
		case errors.Is(err, services.ErrConflict):
			logrus.WithField("size", req.Name).Debug("size exists")
		default:
			return err
		}
	}
	return nil
}

// getAdminCredentials prompts user for admin details
func getAdminCredentials() (email, password, name string) {
	fmt.Println("Enter Super Admin Details:")
	fmt.Println()

	for {
		fmt.Print("Email: ")
		fmt.Scanln(&email)
		if email = strings.TrimSpace(email); email != "" {
			break
		}
		fmt.Println("❌ Email cannot be empty")
	}

	fmt.Print("Name: ")
	fmt.Scanln(&name)

	for {
		fmt.Print("Password (min 8 characters): ")
		fmt.Scanln(&password)
		if !services.ValidatePassword(password) {
			fmt.Println("❌ Password must be at least 8 characters")
			continue
		}
		break
	}

	for {
		fmt.Print("Confirm Password: ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm == password {
			break
		}
		fmt.Println("❌ Passwords do not match")
	}

	fmt.Println()
	return email, password, name
}
