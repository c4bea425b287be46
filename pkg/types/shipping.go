package types

import "strings"

// ShippingInfo is the delivery form collected during checkout and snapshotted
// into every order.
type ShippingInfo struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,basic_email"`
	Phone      string `json:"phone" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Address    string `json:"address" validate:"required"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (s ShippingInfo) Trimmed() ShippingInfo {
	return ShippingInfo{
		Name:       strings.TrimSpace(s.Name),
		Email:      strings.TrimSpace(s.Email),
		Phone:      strings.TrimSpace(s.Phone),
		PostalCode: strings.TrimSpace(s.PostalCode),
		Address:    strings.TrimSpace(s.Address),
	}
}

// IsZero reports whether no field has been filled in.
func (s ShippingInfo) IsZero() bool {
	return s == ShippingInfo{}
}
