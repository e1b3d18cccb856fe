package postgres

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/vetclinic/user-service/internal/core/domain"
)

const uniqueViolation = "23505"

type roleModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:50;uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (roleModel) TableName() string { return "roles" }

func (m roleModel) toDomain() domain.Role {
	return domain.Role{ID: m.ID, Name: domain.RoleName(m.Name)}
}

// userModel is the users row. Booleans carry no column default so that an
// explicit false is written as false.
type userModel struct {
	ID                 uint      `gorm:"primaryKey"`
	FullName           string    `gorm:"column:fullname;size:255"`
	Telephone          string    `gorm:"size:50"`
	Address            string    `gorm:"size:255"`
	Email              string    `gorm:"size:255;uniqueIndex;not null"`
	Password           string    `gorm:"not null"`
	IsActive           bool      `gorm:"not null"`
	MustChangePassword bool      `gorm:"not null"`
	RoleID             uint      `gorm:"not null;index"`
	Role               roleModel `gorm:"foreignKey:RoleID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CreatedAt          time.Time `gorm:"index"`
	UpdatedAt          time.Time
}

func (userModel) TableName() string { return "users" }

func fromDomainUser(u *domain.User) userModel {
	return userModel{
		ID:                 u.ID,
		FullName:           u.FullName,
		Telephone:          u.Telephone,
		Address:            u.Address,
		Email:              u.Email,
		Password:           u.PasswordHash,
		IsActive:           u.IsActive,
		MustChangePassword: u.MustChangePassword,
		RoleID:             u.RoleID,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

func (m userModel) toDomain() domain.User {
	return domain.User{
		ID:                 m.ID,
		FullName:           m.FullName,
		Telephone:          m.Telephone,
		Address:            m.Address,
		Email:              m.Email,
		PasswordHash:       m.Password,
		IsActive:           m.IsActive,
		MustChangePassword: m.MustChangePassword,
		RoleID:             m.RoleID,
		Role:               m.Role.toDomain(),
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
