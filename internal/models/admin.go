package models

// AdminAccount is the single back-office credential record. It is
// auto-provisioned with configured defaults on first admin-gated access.
type AdminAccount struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
