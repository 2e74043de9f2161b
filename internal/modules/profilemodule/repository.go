package profilemodule

import (
	"errors"

	"github.com/mantonx/paradiso/internal/database"
	"gorm.io/gorm"
)

// Repository owns all profile reads and writes
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a profile repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new profile. The unique constraint on name is the
// backstop for concurrent creates; callers pre-check and get a Conflict
// from here only when they lose that race.
func (r *Repository) Create(name string) (*database.Profile, error) {
	profile := database.Profile{Name: name}
	if err := r.db.Create(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// List returns all profiles, newest first
func (r *Repository) List() ([]database.Profile, error) {
	var profiles []database.Profile
	if err := r.db.Order("created_at DESC").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// GetByName returns the profile with the exact given name, or nil.
// Comparison is case-sensitive by design of the original schema.
func (r *Repository) GetByName(name string) (*database.Profile, error) {
	var profile database.Profile
	err := r.db.Where("name = ?", name).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetByID returns the profile with the given id, or nil
func (r *Repository) GetByID(id uint32) (*database.Profile, error) {
	var profile database.Profile
	err := r.db.First(&profile, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Delete removes a profile; dependent votes, viewed marks, ratings and
// comments cascade in the storage engine. Returns false if it never existed.
func (r *Repository) Delete(id uint32) (bool, error) {
	result := r.db.Delete(&database.Profile{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
