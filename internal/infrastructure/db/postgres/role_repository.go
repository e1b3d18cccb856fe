package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/vetclinic/user-service/internal/core/domain"
)

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) FindByName(ctx context.Context, name domain.RoleName) (*domain.Role, error) {
	var m roleModel
	if err := r.db.WithContext(ctx).Where("name = ?", string(name)).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnknownRole
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	role := m.toDomain()
	return &role, nil
}

// EnsureRoles creates any missing role. Existing rows are left untouched.
func (r *RoleRepository) EnsureRoles(ctx context.Context, names []domain.RoleName) error {
	db := r.db.WithContext(ctx)
	for _, name := range names {
		var m roleModel
		if err := db.Where(roleModel{Name: string(name)}).FirstOrCreate(&m).Error; err != nil {
			return fmt.Errorf("seed role %s: %w", name, err)
		}
	}
	return nil
}
