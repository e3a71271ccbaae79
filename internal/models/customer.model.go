package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	BillingPerMonth  = "per_month"
	BillingPlusChems = "plus_chems"
	BillingPerStop   = "per_stop"
	BillingWithChems = "with_chems"
)

type Customer struct {
	BaseUUIDModel
	CompanyID      *uuid.UUID       `gorm:"type:uuid"                json:"company_id,omitempty"`
	Name           string           `gorm:"type:text;not null"       json:"name"`
	Email          *string          `gorm:"type:text"                json:"email,omitempty"`
	Phone          *string          `gorm:"type:text"                json:"phone,omitempty"`
	Address        string           `gorm:"type:text;not null"       json:"address"`
	City           *string          `gorm:"type:text"                json:"city,omitempty"`
	State          *string          `gorm:"type:text"                json:"state,omitempty"`
	ZipCode        *string          `gorm:"type:text"                json:"zip_code,omitempty"`
	Latitude       *float64         `gorm:"type:double precision"    json:"latitude,omitempty"`
	Longitude      *float64         `gorm:"type:double precision"    json:"longitude,omitempty"`
	GateCode       *string          `gorm:"type:text"                json:"gate_code,omitempty"`
	ServiceNotes   *string          `gorm:"type:text"                json:"service_notes,omitempty"`
	BillingModel   *string          `gorm:"type:text"                json:"billing_model,omitempty"`
	MonthlyRate    *decimal.Decimal `gorm:"type:decimal(10,2)"       json:"monthly_rate,omitempty"`
	AutopayEnabled bool             `gorm:"type:bool;default:false"  json:"autopay_enabled"`
}

// IsValidBillingModel reports whether s names a supported billing model.
func IsValidBillingModel(s string) bool {
	switch s {
	case BillingPerMonth, BillingPlusChems, BillingPerStop, BillingWithChems:
		return true
	}
	return false
}

// CustomerFilters shape the customer list query. Search matches name, address,
// or phone.
type CustomerFilters struct {
	Search       string
	BillingModel string
	Limit        int
	Offset       int
}

// CustomerPatch is a partial update: nil fields were absent from the request
// and are left untouched.
type CustomerPatch struct {
	Name           *string
	Email          *string
	Phone          *string
	Address        *string
	City           *string
	State          *string
	ZipCode        *string
	Latitude       *float64
	Longitude      *float64
	GateCode       *string
	ServiceNotes   *string
	BillingModel   *string
	MonthlyRate    *decimal.Decimal
	AutopayEnabled *bool
}

// Updates maps the patch onto column assignments. An empty map means the
// update is a no-op and must not touch the row.
func (p CustomerPatch) Updates() map[string]any {
	updates := make(map[string]any)

	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.Email != nil {
		updates["email"] = *p.Email
	}
	if p.Phone != nil {
		updates["phone"] = *p.Phone
	}
	if p.Address != nil {
		updates["address"] = *p.Address
	}
	if p.City != nil {
		updates["city"] = *p.City
	}
	if p.State != nil {
		updates["state"] = *p.State
	}
	if p.ZipCode != nil {
		updates["zip_code"] = *p.ZipCode
	}
	if p.Latitude != nil {
		updates["latitude"] = *p.Latitude
	}
	if p.Longitude != nil {
		updates["longitude"] = *p.Longitude
	}
	if p.GateCode != nil {
		updates["gate_code"] = *p.GateCode
	}
	if p.ServiceNotes != nil {
		updates["service_notes"] = *p.ServiceNotes
	}
	if p.BillingModel != nil {
		updates["billing_model"] = *p.BillingModel
	}
	if p.MonthlyRate != nil {
		updates["monthly_rate"] = *p.MonthlyRate
	}
	if p.AutopayEnabled != nil {
		updates["autopay_enabled"] = *p.AutopayEnabled
	}

	return updates
}
