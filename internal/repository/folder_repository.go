package repository

import (
	"github.com/artemshak/tutor-platform/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FolderRepository интерфейс для работы с папками уроков
type FolderRepository interface {
	Create(folder *models.Folder) error
	Update(folder *models.Folder) error
	Delete(id uuid.UUID) error
	GetByID(id uuid.UUID) (*models.Folder, error)
	ListByTeacher(teacherID uuid.UUID) ([]*models.Folder, error)
	ListChildren(parentID uuid.UUID) ([]*models.Folder, error)
}

type folderRepository struct{ db *gorm.DB }

// NewFolderRepository создает новый репозиторий папок
func NewFolderRepository(db *gorm.DB) FolderRepository {
	return &folderRepository{db: db}
}

func (r *folderRepository) Create(folder *models.Folder) error {
	if folder.ID == uuid.Nil {
		folder.ID = uuid.New()
	}
	return r.db.Create(folder).Error
}

func (r *folderRepository) Update(folder *models.Folder) error { return r.db.Save(folder).Error }

// Delete удаляет папку; вложенные папки и уроки удаляются каскадно
func (r *folderRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Folder{}, "id = ?", id).Error
}

func (r *folderRepository) GetByID(id uuid.UUID) (*models.Folder, error) {
	var f models.Folder
	err := r.db.Preload("Lessons").First(&f, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *folderRepository) ListByTeacher(teacherID uuid.UUID) ([]*models.Folder, error) {
	var fs []*models.Folder
	err := r.db.Where("teacher_id = ?", teacherID).Order("created_at DESC").Find(&fs).Error
	return fs, err
}

func (r *folderRepository) ListChildren(parentID uuid.UUID) ([]*models.Folder, error) {
	var fs []*models.Folder
	err := r.db.Where("parent_id = ?", parentID).Order("name").Find(&fs).Error
	return fs, err
}
