package models

// User represents a registered storefront account. The password is stored
// and compared in plain text: this is a documented demo-scope limitation of
// the storefront, not an oversight, and the persisted shape depends on it.
type User struct {
	Username string  `json:"username" validate:"required,min=3,max=100"`
	FullName string  `json:"fullName" validate:"required,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    string  `json:"phone" validate:"required,max=30"`
	Address  string  `json:"address" validate:"required,max=300"`
	Password string  `json:"password" validate:"required,min=1"`
	History  []Order `json:"history"`
	Blocked  bool    `json:"blocked"`
}
