package domain

import "time"

// User models an account in the clinic system. PasswordHash always holds a
// bcrypt hash once the user has been persisted.
type User struct {
	ID                 uint      `json:"id"`
	FullName           string    `json:"fullname"`
	Telephone          string    `json:"telephone"`
	Address            string    `json:"address"`
	Email              string    `json:"email"`
	PasswordHash       string    `json:"-"`
	IsActive           bool      `json:"isActive"`
	MustChangePassword bool      `json:"mustChangePassword"`
	RoleID             uint      `json:"-"`
	Role               Role      `json:"role"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// HasRole reports whether the user's role is one of names.
func (u *User) HasRole(names ...RoleName) bool {
	for _, n := range names {
		if u.Role.Name == n {
			return true
		}
	}
	return false
}

// UserPage is one page of a newest-first user listing.
type UserPage struct {
	Users      []User
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// HasNext reports whether a page exists after this one.
func (p *UserPage) HasNext() bool { return p.Page < p.TotalPages }

// HasPrev reports whether a page exists before this one.
func (p *UserPage) HasPrev() bool { return p.Page > 1 }
