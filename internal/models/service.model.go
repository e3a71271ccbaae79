package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ServiceTypeRegular = "regular"
	ServiceTypeRepair  = "repair"
	ServiceTypeOneOff  = "one_off"
)

const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusSkipped    = "skipped"
)

// Service is one concrete, independently schedulable visit. Status moves
// through the transitions in the service controller, but a general update may
// also set it directly.
type Service struct {
	BaseUUIDModel
	CustomerID    uuid.UUID  `gorm:"type:uuid;not null;index"              json:"customer_id"`
	Customer      *Customer  `gorm:"constraint:OnDelete:CASCADE"           json:"-"`
	RouteID       *uuid.UUID `gorm:"type:uuid"                             json:"route_id,omitempty"`
	TechnicianID  *uuid.UUID `gorm:"type:uuid"                             json:"technician_id,omitempty"`
	ServiceType   string     `gorm:"type:text;not null"                    json:"service_type"`
	ScheduledDate time.Time  `gorm:"type:date;not null;index"              json:"scheduled_date"`
	ScheduledTime *string    `gorm:"type:time"                             json:"scheduled_time,omitempty"`
	Status        string     `gorm:"type:text;not null;default:scheduled"  json:"status"`
	CompletedAt   *time.Time `gorm:"type:timestamptz"                      json:"completed_at,omitempty"`
	ServiceNotes  *string    `gorm:"type:text"                             json:"service_notes,omitempty"`
}

func IsValidServiceType(s string) bool {
	switch s {
	case ServiceTypeRegular, ServiceTypeRepair, ServiceTypeOneOff:
		return true
	}
	return false
}

func IsValidServiceStatus(s string) bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusSkipped:
		return true
	}
	return false
}

type ServiceFilters struct {
	CustomerID *uuid.UUID
	Status     string
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      int
	Offset     int
}

// ServicePatch is a partial update: nil fields were absent from the request.
type ServicePatch struct {
	CustomerID    *uuid.UUID
	RouteID       *uuid.UUID
	TechnicianID  *uuid.UUID
	ServiceType   *string
	ScheduledDate *time.Time
	ScheduledTime *string
	Status        *string
	CompletedAt   *time.Time
	ServiceNotes  *string
}

func (p ServicePatch) Updates() map[string]any {
	updates := make(map[string]any)

	if p.CustomerID != nil {
		updates["customer_id"] = *p.CustomerID
	}
	if p.RouteID != nil {
		updates["route_id"] = *p.RouteID
	}
	if p.TechnicianID != nil {
		updates["technician_id"] = *p.TechnicianID
	}
	if p.ServiceType != nil {
		updates["service_type"] = *p.ServiceType
	}
	if p.ScheduledDate != nil {
		updates["scheduled_date"] = *p.ScheduledDate
	}
	if p.ScheduledTime != nil {
		updates["scheduled_time"] = *p.ScheduledTime
	}
	if p.Status != nil {
		updates["status"] = *p.Status
	}
	if p.CompletedAt != nil {
		updates["completed_at"] = *p.CompletedAt
	}
	if p.ServiceNotes != nil {
		updates["service_notes"] = *p.ServiceNotes
	}

	return updates
}
