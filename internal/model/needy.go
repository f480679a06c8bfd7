package model

import "time"

// Needy is a beneficiary submission awaiting or holding approval for aid.
// The supporting document is held either inline (PDF, base64) or as a path
// reference into the uploads directory (DocumentPath).
type Needy struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Location        *string   `json:"location"`
	Phone           string    `json:"phone"`
	IsApproved      bool      `json:"isApproved"`
	Description     *string   `json:"description"`
	PDF             *string   `json:"pdf"`
	DocumentPath    *string   `json:"documentPath"`
	BankTransferRef *string   `json:"bankTransferRef"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// HasDocument reports whether either document strategy holds a value.
func (n *Needy) HasDocument() bool {
	return (n.PDF != nil && *n.PDF != "") || (n.DocumentPath != nil && *n.DocumentPath != "")
}

// NeedyPatch holds fields that can be updated on a needy record.
// A nil field keeps the stored value. An empty PDF or DocumentPath clears it.
type NeedyPatch struct {
	Name            *string
	Email           *string
	Location        *string
	Phone           *string
	IsApproved      *bool
	Description     *string
	PDF             *string
	DocumentPath    *string
	BankTransferRef *string
}

// Apply copies every non-nil patch field onto n.
func (p NeedyPatch) Apply(n *Needy) {
	if p.Name != nil {
		n.Name = *p.Name
	}
	if p.Email != nil {
		n.Email = *p.Email
	}
	if p.Location != nil {
		n.Location = nullable(*p.Location)
	}
	if p.Phone != nil {
		n.Phone = *p.Phone
	}
	if p.IsApproved != nil {
		n.IsApproved = *p.IsApproved
	}
	if p.Description != nil {
		n.Description = nullable(*p.Description)
	}
	if p.PDF != nil {
		n.PDF = nullable(*p.PDF)
	}
	if p.DocumentPath != nil {
		n.DocumentPath = nullable(*p.DocumentPath)
	}
	if p.BankTransferRef != nil {
		n.BankTransferRef = nullable(*p.BankTransferRef)
	}
}
