package domain

import "time"

// Tenant is a lender organization using the intake service. API access is
// authenticated with a key id + secret pair; only the bcrypt hash of the
// secret is stored.
type Tenant struct {
	ID            int32     `json:"id"`
	Name          string    `json:"name"`
	APIKeyID      string    `json:"api_key_id"`
	APIKeyHash    string    `json:"-"`
	ContactEmail  string    `json:"contact_email"`
	CRMAccountRef string    `json:"crm_account_ref"`
	CreatedOn     time.Time `json:"created_on"`
}
