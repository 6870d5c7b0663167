package storage

// Keys under which storefront records are persisted. The key names and the
// JSON shapes stored behind them are shared with other frontends of the same
// store, so they must not be renamed.
const (
	KeyUsers         = "users"         // []models.User
	KeyCategories    = "categories"    // []models.Category
	KeyCart          = "cart"          // []models.CartLine
	KeyOrders        = "orders"        // []models.Order (the global ledger)
	KeyBanners       = "banners"       // []string, max 10
	KeyAdminUser     = "adminUser"     // models.AdminAccount
	KeyAdminLoggedIn = "adminLoggedIn" // "true" / "false"
	KeyLoggedInUser  = "loggedInUser"  // username, absent when logged out
)

// Adapter is the persistence boundary. It fails soft: a read that misses or
// errors leaves out untouched (the caller's zero value is the empty default)
// and returns false, and a write that fails is logged and dropped. Storage
// trouble must never surface to the storefront as an error; the store stays
// usable at the cost of silent data loss on a failed write.
type Adapter interface {
	// Read unmarshals the record stored under key into out and reports
	// whether anything was found and decoded.
	Read(key string, out any) bool

	// Write replaces the record under key with the JSON encoding of v.
	// Fire-and-forget: failures are logged, never returned.
	Write(key string, v any)

	// WriteAll replaces several records at once. Backends that can do so
	// apply all of them atomically; others apply them in sequence.
	WriteAll(records map[string]any)

	// Delete removes the record under key if present.
	Delete(key string)
}
