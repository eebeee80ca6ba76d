package employee

import (
	"time"
)

type Employee struct {
	ID           string
	FullName     string
	EmployeeCode string
	PINHash      string
	Role         Role
	// GPSRequired forces clock-in through the geofence; when false the
	// employee selects an assigned area manually.
	GPSRequired bool
	// WorkAreaIDs lists assigned areas in precedence order. The geofence is
	// evaluated against them in this order.
	WorkAreaIDs []string
	// DeviceIDs are the registered devices. The 2-device cap is a product
	// policy reported at login, not enforced here.
	DeviceIDs []string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Role string

const (
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// MaxRegisteredDevices is the soft cap on devices per employee.
const MaxRegisteredDevices = 2

// HasDevice reports whether deviceID is registered for the employee.
func (e Employee) HasDevice(deviceID string) bool {
	for _, id := range e.DeviceIDs {
		if id == deviceID {
			return true
		}
	}
	return false
}

// IsAssignedTo reports whether areaID is among the employee's assigned areas.
func (e Employee) IsAssignedTo(areaID string) bool {
	for _, id := range e.WorkAreaIDs {
		if id == areaID {
			return true
		}
	}
	return false
}
