package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/chenglu1/admin-console/internal/dto"
	"github.com/chenglu1/admin-console/internal/models"
)

var (
	ErrUsernameTaken = errors.New("username already exists")
	ErrUserNotFound  = errors.New("user not found")
	// ErrProtectedUser guards the seeded admin account against deletion and
	// disabling.
	ErrProtectedUser = errors.New("the built-in admin account cannot be modified this way")
)

// ProtectedUsername is the seeded privileged account.
const ProtectedUsername = "admin"

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) List(q *dto.ListUsersQuery) (*dto.PageResponse, error) {
	page, pageSize := normalizePage(q.Page, q.PageSize)

	tx := s.db.Model(&models.User{}).Preload("Roles")
	if q.Username != "" {
		tx = tx.Where("username LIKE ?", "%"+q.Username+"%")
	}
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, err
	}

	var users []models.User
	if err := tx.Order("created_at").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&users).Error; err != nil {
		return nil, err
	}

	return &dto.PageResponse{Total: total, Page: page, PageSize: pageSize, Items: users}, nil
}

func (s *UserService) Get(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Roles").First(&user, "id = ?", id).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func (s *UserService) Create(req *dto.CreateUserRequest) (*models.User, error) {
	if req.Username == "" || len(req.Password) < 8 {
		return nil, errors.New("username required and password must be at least 8 characters")
	}

	var existing models.User
	if err := s.db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:       uuid.New(),
		Username: req.Username,
		Password: string(hash),
		Nickname: req.Nickname,
		Email:    req.Email,
		Status:   models.UserStatusActive,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return s.replaceRoles(tx, &user, req.RoleIDs)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(user.ID)
}

func (s *UserService) Update(id uuid.UUID, req *dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(user).Updates(map[string]interface{}{
			"nickname": req.Nickname,
			"email":    req.Email,
		}).Error; err != nil {
			return err
		}
		return s.replaceRoles(tx, user, req.RoleIDs)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(id)
}

// Delete soft-deletes the user. Refresh tokens go with the account via the
// storage-level cascade. The seeded admin is refused.
func (s *UserService) Delete(id uuid.UUID) error {
	user, err := s.Get(id)
	if err != nil {
		return err
	}
	if user.Username == ProtectedUsername {
		return ErrProtectedUser
	}
	return s.db.Select("Roles").Delete(user).Error
}

func (s *UserService) ChangePassword(id uuid.UUID, password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	user, err := s.Get(id)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.db.Model(user).Update("password", string(hash)).Error
}

func (s *UserService) ChangeStatus(id uuid.UUID, status string) error {
	if status != models.UserStatusActive && status != models.UserStatusDisabled {
		return fmt.Errorf("unknown status %q", status)
	}
	user, err := s.Get(id)
	if err != nil {
		return err
	}
	if user.Username == ProtectedUsername && status == models.UserStatusDisabled {
		return ErrProtectedUser
	}
	return s.db.Model(user).Update("status", status).Error
}

func (s *UserService) replaceRoles(tx *gorm.DB, user *models.User, roleIDs []uuid.UUID) error {
	if roleIDs == nil {
		return nil
	}
	var roles []models.Role
	if len(roleIDs) > 0 {
		if err := tx.Find(&roles, "id IN ?", roleIDs).Error; err != nil {
			return err
		}
	}
	return tx.Model(user).Association("Roles").Replace(&roles)
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
