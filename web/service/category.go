package service

import (
	"strings"

	"cms-ui/database"
	"cms-ui/database/model"
	"cms-ui/util/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryService manages the structured site taxonomy table.
type CategoryService struct{}

func (s *CategoryService) GetCategories() ([]*model.Category, error) {
	db := database.GetDB()
	if db == nil {
		return nil, gorm.ErrInvalidDB
	}
	categories := make([]*model.Category, 0)
	err := db.Model(model.Category{}).Order("position asc").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *CategoryService) GetCategory(id string) (*model.Category, error) {
	db := database.GetDB()
	if db == nil {
		return nil, gorm.ErrInvalidDB
	}
	category := &model.Category{}
	err := db.Model(model.Category{}).Where("id = ?", id).First(category).Error
	if err != nil {
		return nil, err
	}
	return category, nil
}

// SaveCategory creates or updates a category. A missing id gets a
// fresh uuid, a missing slug is derived from the name.
func (s *CategoryService) SaveCategory(category *model.Category) error {
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return common.NewValidationErrorf("category name can not be empty")
	}
	if category.Id == "" {
		category.Id = uuid.NewString()
	}
	if category.Slug == "" {
		category.Slug = slugify(category.Name)
	}

	db := database.GetDB()
	if db == nil {
		return gorm.ErrInvalidDB
	}
	existing := &model.Category{}
	err := db.Model(model.Category{}).Where("id = ?", category.Id).First(existing).Error
	if database.IsNotFound(err) {
		return db.Create(category).Error
	} else if err != nil {
		return err
	}
	return db.Save(category).Error
}

func (s *CategoryService) DeleteCategory(id string) error {
	db := database.GetDB()
	if db == nil {
		return gorm.ErrInvalidDB
	}
	return db.Delete(&model.Category{}, "id = ?", id).Error
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	return slug
}
