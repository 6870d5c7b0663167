package repositories

import (
	"lapak/internal/models"
	"lapak/internal/storage"
)

// UserRepository defines access to the users record. The whole list is read
// and written as a unit; business rules about its contents live in services.
type UserRepository interface {
	All() []models.User
	Save(users []models.User)
}

// RecordUserRepository persists users through the storage adapter.
type RecordUserRepository struct {
	store storage.Adapter
}

// NewUserRepository creates a new RecordUserRepository.
func NewUserRepository(store storage.Adapter) *RecordUserRepository {
	return &RecordUserRepository{store: store}
}

// All returns every registered user, or an empty list when none exist yet.
func (r *RecordUserRepository) All() []models.User {
	var users []models.User
	r.store.Read(storage.KeyUsers, &users)
	return users
}

// Save overwrites the persisted user list.
func (r *RecordUserRepository) Save(users []models.User) {
	r.store.Write(storage.KeyUsers, users)
}
