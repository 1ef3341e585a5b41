package domain

import "time"

// Customer is the subject of a request. Customers are scoped to their tenant;
// the email is where tokenized links get delivered.
type Customer struct {
	ID        int32     `json:"id"`
	TenantID  int32     `json:"tenant_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Language  string    `json:"language"`
	CreatedOn time.Time `json:"created_on"`
}
