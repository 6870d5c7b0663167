package repositories

import (
	"lapak/internal/models"
	"lapak/internal/storage"
)

// SessionRepository defines access to the persisted session records. The
// session has no expiry; it survives restarts by design of the storefront.
// adminLoggedIn is stored as the string "true"/"false" to match the shape
// other frontends of the same store expect.
type SessionRepository interface {
	LoggedInUser() (string, bool)
	SetLoggedInUser(username string)
	ClearLoggedInUser()
	AdminLoggedIn() bool
	SetAdminLoggedIn(loggedIn bool)
}

// AdminRepository defines access to the back-office credential record.
type AdminRepository interface {
	Load() (models.AdminAccount, bool)
	Save(account models.AdminAccount)
}

// RecordSessionRepository persists session state through the storage adapter.
type RecordSessionRepository struct {
	store storage.Adapter
}

// NewSessionRepository creates a new RecordSessionRepository.
func NewSessionRepository(store storage.Adapter) *RecordSessionRepository {
	return &RecordSessionRepository{store: store}
}

// LoggedInUser returns the session username, if a session exists.
func (r *RecordSessionRepository) LoggedInUser() (string, bool) {
	var username string
	if !r.store.Read(storage.KeyLoggedInUser, &username) || username == "" {
		return "", false
	}
	return username, true
}

// SetLoggedInUser persists the session username.
func (r *RecordSessionRepository) SetLoggedInUser(username string) {
	r.store.Write(storage.KeyLoggedInUser, username)
}

// ClearLoggedInUser removes the session record entirely.
func (r *RecordSessionRepository) ClearLoggedInUser() {
	r.store.Delete(storage.KeyLoggedInUser)
}

// AdminLoggedIn reports whether an admin session is active.
func (r *RecordSessionRepository) AdminLoggedIn() bool {
	var flag string
	r.store.Read(storage.KeyAdminLoggedIn, &flag)
	return flag == "true"
}

// SetAdminLoggedIn persists the admin session flag.
func (r *RecordSessionRepository) SetAdminLoggedIn(loggedIn bool) {
	flag := "false"
	if loggedIn {
		flag = "true"
	}
	r.store.Write(storage.KeyAdminLoggedIn, flag)
}

// RecordAdminRepository persists the admin account through the adapter.
type RecordAdminRepository struct {
	store storage.Adapter
}

// NewAdminRepository creates a new RecordAdminRepository.
func NewAdminRepository(store storage.Adapter) *RecordAdminRepository {
	return &RecordAdminRepository{store: store}
}

// Load returns the admin account record, if one has been provisioned.
func (r *RecordAdminRepository) Load() (models.AdminAccount, bool) {
	var account models.AdminAccount
	ok := r.store.Read(storage.KeyAdminUser, &account)
	return account, ok && account.Username != ""
}

// Save overwrites the admin account record.
func (r *RecordAdminRepository) Save(account models.AdminAccount) {
	r.store.Write(storage.KeyAdminUser, account)
}
