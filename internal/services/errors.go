package services

import "errors"

// Sentinel errors surfaced by the services. Handlers map these to HTTP
// status codes with errors.Is; anything else is treated as internal.
// Persistence failures never appear here: the storage adapter absorbs them.
var (
	ErrValidation         = errors.New("missing or invalid required fields")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrItemNotFound       = errors.New("item not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrBannerNotFound     = errors.New("banner not found")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountBlocked     = errors.New("account is blocked")
	ErrNotAuthenticated   = errors.New("not logged in")
	ErrNotAuthorized      = errors.New("admin access required")
	ErrIncorrectPassword  = errors.New("incorrect password")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrTerminalStatus     = errors.New("order status is terminal")
	ErrBannerLimit        = errors.New("banner limit reached")
)
