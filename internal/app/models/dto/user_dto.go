package dto

// UpdateUserRequest represents a partial user update; only provided fields
// are applied.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"` // re-hashed when present
	Phone    *string `json:"phone,omitempty"`
	Role     *string `json:"role,omitempty"`
}

// RolesResponse lists the assignable roles
type RolesResponse struct {
	Roles []string `json:"roles"`
}
