package services

import (
	"fmt"
	"strings"
	"sync"

	"lapak/internal/models"
	"lapak/internal/repositories"
)

// AccountService manages user accounts, the admin account, and the persisted
// session records.
//
// Passwords are stored and compared in plain text. That is a deliberate,
// documented property of this demo storefront (the persisted record shapes
// depend on it), not something to harden here.
type AccountService struct {
	users   repositories.UserRepository
	admin   repositories.AdminRepository
	session repositories.SessionRepository

	defaultAdminUser string
	defaultAdminPass string

	mu *sync.Mutex
}

// NewAccountService creates a new AccountService. The default admin
// credentials are used to auto-provision the admin record on first
// admin-gated access. mu must be the lock shared with the order service,
// which also rewrites the users record (history appends, status updates).
func NewAccountService(
	users repositories.UserRepository,
	admin repositories.AdminRepository,
	session repositories.SessionRepository,
	defaultAdminUser, defaultAdminPass string,
	mu *sync.Mutex,
) *AccountService {
	return &AccountService{
		users:            users,
		admin:            admin,
		session:          session,
		defaultAdminUser: defaultAdminUser,
		defaultAdminPass: defaultAdminPass,
		mu:               mu,
	}
}

// Register creates a new account and logs it in. All profile fields are
// required; a taken username is rejected without touching the user list.
func (s *AccountService) Register(user models.User) (*models.User, error) {
	for name, value := range map[string]string{
		"username": user.Username,
		"fullName": user.FullName,
		"email":    user.Email,
		"phone":    user.Phone,
		"address":  user.Address,
		"password": user.Password,
	} {
		if strings.TrimSpace(value) == "" {
			return nil, fmt.Errorf("%w: %s is required", ErrValidation, name)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.users.All()
	for _, existing := range users {
		if existing.Username == user.Username {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateUsername, user.Username)
		}
	}

	user.History = []models.Order{}
	user.Blocked = false
	users = append(users, user)
	s.users.Save(users)
	s.session.SetLoggedInUser(user.Username)
	return &user, nil
}

// Login authenticates a user and establishes the session. An unknown
// username and a wrong password are deliberately indistinguishable; a
// blocked account is reported as such even when the password is correct.
func (s *AccountService) Login(username, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users.All() {
		if user.Username != username {
			continue
		}
		if user.Password != password {
			return nil, ErrInvalidCredentials
		}
		if user.Blocked {
			return nil, ErrAccountBlocked
		}
		s.session.SetLoggedInUser(username)
		return &user, nil
	}
	return nil, ErrInvalidCredentials
}

// Logout clears the user session record.
func (s *AccountService) Logout() {
	s.session.ClearLoggedInUser()
}

// CurrentUser returns the logged-in user's account, if a session exists and
// still names a registered account.
func (s *AccountService) CurrentUser() (*models.User, bool) {
	username, ok := s.session.LoggedInUser()
	if !ok {
		return nil, false
	}
	for _, user := range s.users.All() {
		if user.Username == username {
			return &user, true
		}
	}
	return nil, false
}

// Users returns every registered account (admin view).
func (s *AccountService) Users() []models.User {
	return s.users.All()
}

// BlockUser marks an account blocked; blocked accounts cannot log in.
func (s *AccountService) BlockUser(username string) error {
	return s.setBlocked(username, true)
}

// UnblockUser lifts a block.
func (s *AccountService) UnblockUser(username string) error {
	return s.setBlocked(username, false)
}

func (s *AccountService) setBlocked(username string, blocked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.users.All()
	for i := range users {
		if users[i].Username == username {
			users[i].Blocked = blocked
			s.users.Save(users)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUserNotFound, username)
}

// DeleteUser removes an account entirely, history included.
func (s *AccountService) DeleteUser(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.users.All()
	for i := range users {
		if users[i].Username == username {
			users = append(users[:i], users[i+1:]...)
			s.users.Save(users)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUserNotFound, username)
}

// ensureAdmin returns the admin account, provisioning it with the configured
// defaults the first time any admin-gated path is reached.
func (s *AccountService) ensureAdmin() models.AdminAccount {
	account, ok := s.admin.Load()
	if !ok {
		account = models.AdminAccount{
			Username: s.defaultAdminUser,
			Password: s.defaultAdminPass,
		}
		s.admin.Save(account)
	}
	return account
}

// AdminLogin authenticates against the admin record and sets the persisted
// admin session flag.
func (s *AccountService) AdminLogin(username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account := s.ensureAdmin()
	if account.Username != username || account.Password != password {
		return ErrInvalidCredentials
	}
	s.session.SetAdminLoggedIn(true)
	return nil
}

// AdminLogout clears the admin session flag.
func (s *AccountService) AdminLogout() {
	s.session.SetAdminLoggedIn(false)
}

// AdminLoggedIn reports whether an admin session is active, provisioning the
// admin record on the way if needed.
func (s *AccountService) AdminLoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureAdmin()
	return s.session.AdminLoggedIn()
}

// ChangeAdminPassword rotates the admin password after checking the old one.
func (s *AccountService) ChangeAdminPassword(oldPassword, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return fmt.Errorf("%w: new password is required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account := s.ensureAdmin()
	if account.Password != oldPassword {
		return ErrIncorrectPassword
	}
	account.Password = newPassword
	s.admin.Save(account)
	return nil
}
