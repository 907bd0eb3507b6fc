package services

import (
	"errors"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chenglu1/admin-console/internal/dto"
	"github.com/chenglu1/admin-console/internal/models"
)

var (
	ErrMenuNotFound    = errors.New("menu not found")
	ErrMenuHasChildren = errors.New("menu still has child entries")
)

type MenuService struct {
	db *gorm.DB
}

func NewMenuService(db *gorm.DB) *MenuService {
	return &MenuService{db: db}
}

// Tree returns the full navigation tree.
func (s *MenuService) Tree() ([]*dto.MenuNode, error) {
	var menus []models.Menu
	if err := s.db.Find(&menus).Error; err != nil {
		return nil, err
	}
	return BuildTree(menus), nil
}

// TreeForUser returns the tree restricted to menus reachable through the
// user's roles.
func (s *MenuService) TreeForUser(userID uuid.UUID) ([]*dto.MenuNode, error) {
	var menus []models.Menu
	err := s.db.Distinct("menus.*").
		Joins("JOIN role_menus ON role_menus.menu_id = menus.id").
		Joins("JOIN user_roles ON user_roles.role_id = role_menus.role_id").
		Where("user_roles.user_id = ?", userID).
		Find(&menus).Error
	if err != nil {
		return nil, err
	}
	return BuildTree(menus), nil
}

func (s *MenuService) Create(req *dto.CreateMenuRequest) (*models.Menu, error) {
	if req.Name == "" {
		return nil, errors.New("menu name is required")
	}
	if req.ParentID != nil {
		if _, err := s.get(*req.ParentID); err != nil {
			return nil, ErrMenuNotFound
		}
	}

	menu := models.Menu{
		ID:        uuid.New(),
		ParentID:  req.ParentID,
		Name:      req.Name,
		Path:      req.Path,
		Component: req.Component,
		Icon:      req.Icon,
		Sort:      req.Sort,
		Hidden:    req.Hidden,
	}
	if err := s.db.Create(&menu).Error; err != nil {
		return nil, err
	}
	return &menu, nil
}

func (s *MenuService) Update(id uuid.UUID, req *dto.UpdateMenuRequest) (*models.Menu, error) {
	menu, err := s.get(id)
	if err != nil {
		return nil, err
	}

	menu.ParentID = req.ParentID
	menu.Name = req.Name
	menu.Path = req.Path
	menu.Component = req.Component
	menu.Icon = req.Icon
	menu.Sort = req.Sort
	menu.Hidden = req.Hidden

	if err := s.db.Save(menu).Error; err != nil {
		return nil, err
	}
	return menu, nil
}

// Delete removes a leaf menu. Deletion is refused while children exist so
// the tree never orphans nodes.
func (s *MenuService) Delete(id uuid.UUID) error {
	menu, err := s.get(id)
	if err != nil {
		return err
	}

	var children int64
	if err := s.db.Model(&models.Menu{}).Where("parent_id = ?", id).Count(&children).Error; err != nil {
		return err
	}
	if children > 0 {
		return ErrMenuHasChildren
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM role_menus WHERE menu_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(menu).Error
	})
}

func (s *MenuService) get(id uuid.UUID) (*models.Menu, error) {
	var menu models.Menu
	if err := s.db.First(&menu, "id = ?", id).Error; err != nil {
		return nil, ErrMenuNotFound
	}
	return &menu, nil
}

// BuildTree assembles flat menu rows into a sorted tree. Rows whose parent
// is absent from the input surface as roots, so a role-filtered subset still
// renders.
func BuildTree(menus []models.Menu) []*dto.MenuNode {
	nodes := make(map[uuid.UUID]*dto.MenuNode, len(menus))
	for i := range menus {
		nodes[menus[i].ID] = &dto.MenuNode{Menu: menus[i]}
	}

	var roots []*dto.MenuNode
	for _, n := range nodes {
		if n.ParentID != nil {
			if parent, ok := nodes[*n.ParentID]; ok {
				parent.Children = append(parent.Children, n)
				continue
			}
		}
		roots = append(roots, n)
	}

	var sortNodes func([]*dto.MenuNode)
	sortNodes = func(ns []*dto.MenuNode) {
		sort.Slice(ns, func(i, j int) bool {
			if ns[i].Sort != ns[j].Sort {
				return ns[i].Sort < ns[j].Sort
			}
			return ns[i].Name < ns[j].Name
		})
		for _, n := range ns {
			sortNodes(n.Children)
		}
	}
	sortNodes(roots)

	return roots
}
