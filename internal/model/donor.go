package model

import "time"

// Donor is a contributor submission awaiting or holding approval.
type Donor struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Location    *string   `json:"location"`
	Phone       string    `json:"phone"`
	PaymentRef  *string   `json:"creditcart"` // payment instrument reference
	IsApproved  bool      `json:"isApproved"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DonorPatch holds fields that can be updated on a donor.
// A nil field keeps the stored value.
type DonorPatch struct {
	Name        *string
	Email       *string
	Location    *string
	Phone       *string
	PaymentRef  *string
	IsApproved  *bool
	Description *string
}

// Apply copies every non-nil patch field onto d.
func (p DonorPatch) Apply(d *Donor) {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Email != nil {
		d.Email = *p.Email
	}
	if p.Location != nil {
		d.Location = nullable(*p.Location)
	}
	if p.Phone != nil {
		d.Phone = *p.Phone
	}
	if p.PaymentRef != nil {
		d.PaymentRef = nullable(*p.PaymentRef)
	}
	if p.IsApproved != nil {
		d.IsApproved = *p.IsApproved
	}
	if p.Description != nil {
		d.Description = nullable(*p.Description)
	}
}

// nullable maps an empty optional column value to NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
