package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chenglu1/admin-console/internal/dto"
	"github.com/chenglu1/admin-console/internal/models"
)

var (
	ErrRoleNotFound  = errors.New("role not found")
	ErrRoleNameTaken = errors.New("role name already exists")
	ErrRoleInUse     = errors.New("role is still assigned to users")
)

type RoleService struct {
	db *gorm.DB
}

func NewRoleService(db *gorm.DB) *RoleService {
	return &RoleService{db: db}
}

func (s *RoleService) List() ([]models.Role, error) {
	var roles []models.Role
	if err := s.db.Preload("Menus").Order("created_at").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func (s *RoleService) Get(id uuid.UUID) (*models.Role, error) {
	var role models.Role
	if err := s.db.Preload("Menus").First(&role, "id = ?", id).Error; err != nil {
		return nil, ErrRoleNotFound
	}
	return &role, nil
}

func (s *RoleService) Create(req *dto.CreateRoleRequest) (*models.Role, error) {
	if req.Name == "" {
		return nil, errors.New("role name is required")
	}

	var existing models.Role
	if err := s.db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return nil, ErrRoleNameTaken
	}

	role := models.Role{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.db.Create(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (s *RoleService) Update(id uuid.UUID, req *dto.UpdateRoleRequest) (*models.Role, error) {
	role, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" && req.Name != role.Name {
		var existing models.Role
		if err := s.db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
			return nil, ErrRoleNameTaken
		}
		role.Name = req.Name
	}
	role.Description = req.Description

	if err := s.db.Save(role).Error; err != nil {
		return nil, err
	}
	return role, nil
}

func (s *RoleService) Delete(id uuid.UUID) error {
	role, err := s.Get(id)
	if err != nil {
		return err
	}

	count := s.db.Model(role).Association("Users").Count()
	if count > 0 {
		return ErrRoleInUse
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(role).Association("Menus").Clear(); err != nil {
			return err
		}
		return tx.Delete(role).Error
	})
}

// AssignMenus replaces the role's menu set.
func (s *RoleService) AssignMenus(id uuid.UUID, menuIDs []uuid.UUID) (*models.Role, error) {
	role, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	var menus []models.Menu
	if len(menuIDs) > 0 {
		if err := s.db.Find(&menus, "id IN ?", menuIDs).Error; err != nil {
			return nil, err
		}
	}

	if err := s.db.Model(role).Association("Menus").Replace(&menus); err != nil {
		return nil, err
	}
	return s.Get(id)
}
