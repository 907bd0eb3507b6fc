package database

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/chenglu1/admin-console/internal/models"
)

// DefaultAdminPassword is only used on first start; operators are expected
// to change it immediately.
const DefaultAdminPassword = "admin123"

// Seed creates the admin role, the admin user and the base menu tree when
// they do not exist yet. Safe to call on every start.
func Seed() error {
	return DB.Transaction(func(tx *gorm.DB) error {
		role, err := seedAdminRole(tx)
		if err != nil {
			return err
		}
		if err := seedAdminUser(tx, role); err != nil {
			return err
		}
		return seedMenus(tx, role)
	})
}

func seedAdminRole(tx *gorm.DB) (*models.Role, error) {
	var role models.Role
	err := tx.Where("name = ?", models.AdminRoleName).First(&role).Error
	if err == nil {
		return &role, nil
	}

	role = models.Role{
		ID:          uuid.New(),
		Name:        models.AdminRoleName,
		Description: "Full access to the console",
	}
	if err := tx.Create(&role).Error; err != nil {
		return nil, fmt.Errorf("failed to seed admin role: %w", err)
	}
	slog.Info("seeded admin role")
	return &role, nil
}

func seedAdminUser(tx *gorm.DB, role *models.Role) error {
	var user models.User
	if err := tx.Where("username = ?", "admin").First(&user).Error; err == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	user = models.User{
		ID:       uuid.New(),
		Username: "admin",
		Password: string(hash),
		Nickname: "Administrator",
		Status:   models.UserStatusActive,
		Roles:    []models.Role{*role},
	}
	if err := tx.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	slog.Info("seeded admin user", "username", user.Username)
	return nil
}

func seedMenus(tx *gorm.DB, role *models.Role) error {
	var count int64
	if err := tx.Model(&models.Menu{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	system := models.Menu{ID: uuid.New(), Name: "System", Path: "/system", Icon: "setting", Sort: 1}
	if err := tx.Create(&system).Error; err != nil {
		return err
	}

	children := []models.Menu{
		{ID: uuid.New(), ParentID: &system.ID, Name: "Users", Path: "/system/users", Component: "system/users", Icon: "user", Sort: 1},
		{ID: uuid.New(), ParentID: &system.ID, Name: "Roles", Path: "/system/roles", Component: "system/roles", Icon: "team", Sort: 2},
		{ID: uuid.New(), ParentID: &system.ID, Name: "Menus", Path: "/system/menus", Component: "system/menus", Icon: "menu", Sort: 3},
		{ID: uuid.New(), ParentID: &system.ID, Name: "Operation Logs", Path: "/system/logs", Component: "system/logs", Icon: "file-text", Sort: 4},
		{ID: uuid.New(), ParentID: &system.ID, Name: "Monitor", Path: "/system/monitor", Component: "system/monitor", Icon: "dashboard", Sort: 5},
	}
	if err := tx.Create(&children).Error; err != nil {
		return err
	}

	all := append([]models.Menu{system}, children...)
	if err := tx.Model(role).Association("Menus").Replace(&all); err != nil {
		return err
	}

	slog.Info("seeded base menus", "count", len(all))
	return nil
}
