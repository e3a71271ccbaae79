package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	FrequencyWeekly   = "weekly"
	FrequencyBiweekly = "biweekly"
	FrequencyMonthly  = "monthly"
)

// RecurringService is a recurrence rule, not a materialized visit. Exactly one
// of DayOfWeek/DayOfMonth is meaningful for the chosen frequency; the create
// path nulls the other.
type RecurringService struct {
	BaseUUIDModel
	CustomerID    uuid.UUID  `gorm:"type:uuid;not null;index"       json:"customer_id"`
	Customer      *Customer  `gorm:"constraint:OnDelete:CASCADE"    json:"-"`
	ServiceType   string     `gorm:"type:text;not null"             json:"service_type"`
	Frequency     string     `gorm:"type:text;not null"             json:"frequency"`
	DayOfWeek     *int       `gorm:"type:smallint"                  json:"day_of_week,omitempty"`
	DayOfMonth    *int       `gorm:"type:smallint"                  json:"day_of_month,omitempty"`
	StartDate     time.Time  `gorm:"type:date;not null"             json:"start_date"`
	EndDate       *time.Time `gorm:"type:date"                      json:"end_date,omitempty"`
	IsActive      bool       `gorm:"type:bool;not null;default:true" json:"is_active"`
	TechnicianID  *uuid.UUID `gorm:"type:uuid"                      json:"technician_id,omitempty"`
	ScheduledTime *string    `gorm:"type:time"                      json:"scheduled_time,omitempty"`
	ServiceNotes  *string    `gorm:"type:text"                      json:"service_notes,omitempty"`
}

func IsValidFrequency(s string) bool {
	switch s {
	case FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly:
		return true
	}
	return false
}

type RecurringServiceFilters struct {
	CustomerID *uuid.UUID
	IsActive   *bool
	Frequency  string
}

// RecurringServicePatch is a partial update: nil fields were absent from the
// request. Cross-field checks on update only see fields carried by the patch.
type RecurringServicePatch struct {
	Frequency     *string
	DayOfWeek     *int
	DayOfMonth    *int
	StartDate     *time.Time
	EndDate       *time.Time
	IsActive      *bool
	TechnicianID  *uuid.UUID
	ScheduledTime *string
	ServiceNotes  *string
}

func (p RecurringServicePatch) Updates() map[string]any {
	updates := make(map[string]any)

	if p.Frequency != nil {
		updates["frequency"] = *p.Frequency
	}
	if p.DayOfWeek != nil {
		updates["day_of_week"] = *p.DayOfWeek
	}
	if p.DayOfMonth != nil {
		updates["day_of_month"] = *p.DayOfMonth
	}
	if p.StartDate != nil {
		updates["start_date"] = *p.StartDate
	}
	if p.EndDate != nil {
		updates["end_date"] = *p.EndDate
	}
	if p.IsActive != nil {
		updates["is_active"] = *p.IsActive
	}
	if p.TechnicianID != nil {
		updates["technician_id"] = *p.TechnicianID
	}
	if p.ScheduledTime != nil {
		updates["scheduled_time"] = *p.ScheduledTime
	}
	if p.ServiceNotes != nil {
		updates["service_notes"] = *p.ServiceNotes
	}

	return updates
}
