package model

import "time"

// Role is the authorization role of a user.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Principal is the authenticated actor of a request.
type Principal struct {
	ID       string
	Role     Role
	IsActive bool
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// User is a storefront account. The password hash never leaves the repository.
type User struct {
	ID        string     `json:"id" db:"id"`
	FirstName string     `json:"firstName" db:"first_name"`
	LastName  string     `json:"lastName" db:"last_name"`
	Email     string     `json:"email" db:"email"`
	Role      Role       `json:"role" db:"role"`
	IsActive  bool       `json:"isActive" db:"is_active"`
	Image     *UserImage `json:"userImage,omitempty" db:"-"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
}

// Principal returns the user as an acting principal.
func (u *User) Principal() Principal {
	return Principal{ID: u.ID, Role: u.Role, IsActive: u.IsActive}
}

// UserSummary is the user projection embedded in coupon relations.
type UserSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// UserImage points at a user's avatar in the blob store.
type UserImage struct {
	ID       string `json:"id"`
	ImageURL string `json:"imageUrl"`
	PublicID string `json:"publicId"`
}

// UpdateUserRequest is a partial account update. Password is accepted only so
// the service can reject it explicitly.
type UpdateUserRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty"`
	Password  *string `json:"password,omitempty"`
}

// UserPage is a page of users with pagination metadata.
type UserPage struct {
	Users       []User `json:"users"`
	TotalUsers  int    `json:"totalUsers"`
	CurrentPage int    `json:"currentPage"`
	TotalPages  int    `json:"totalPages"`
}
