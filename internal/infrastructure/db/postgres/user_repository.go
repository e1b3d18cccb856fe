package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/vetclinic/user-service/internal/core/domain"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts the user and copies the generated id and timestamps back.
// A unique-email violation is reported as domain.ErrDuplicateEmail.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	m := fromDomainUser(user)
	if err := r.db.WithContext(ctx).Omit("Role").Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}

	user.ID = m.ID
	user.CreatedAt = m.CreatedAt
	user.UpdatedAt = m.UpdatedAt
	return nil
}

// Update writes every mutable column, zero values included.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	m := fromDomainUser(user)
	m.UpdatedAt = r.db.NowFunc()
	res := r.db.WithContext(ctx).
		Model(&userModel{ID: user.ID}).
		Select("fullname", "telephone", "address", "email", "password", "is_active", "must_change_password", "role_id", "updated_at").
		Updates(&m)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	user.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).Preload("Role").First(&m, id).Error; err != nil {
		return nil, notFound(err, "find user by id")
	}
	u := m.toDomain()
	return &u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).Preload("Role").Where("email = ?", email).First(&m).Error; err != nil {
		return nil, notFound(err, "find user by email")
	}
	u := m.toDomain()
	return &u, nil
}

// List returns one page ordered newest first, with the total row count.
func (r *UserRepository) List(ctx context.Context, offset, limit int) ([]domain.User, int64, error) {
	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Model(&userModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	var rows []userModel
	err := db.Preload("Role").
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return toDomainUsers(rows), total, nil
}

// ListActiveByRole returns active users holding role, ordered by name.
func (r *UserRepository) ListActiveByRole(ctx context.Context, role domain.RoleName) ([]domain.User, error) {
	db := r.db.WithContext(ctx)
	roleID := db.Model(&roleModel{}).Select("id").Where("name = ?", string(role))

	var rows []userModel
	err := db.Preload("Role").
		Where("is_active = ?", true).
		Where("role_id = (?)", roleID).
		Order("fullname ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	return toDomainUsers(rows), nil
}

func toDomainUsers(rows []userModel) []domain.User {
	out := make([]domain.User, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toDomain())
	}
	return out
}

func notFound(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrUserNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
