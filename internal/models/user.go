package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RolePassenger Role = "passenger"
	RoleDriver    Role = "driver"
)

// Valid reports whether r is one of the two account roles.
// Roles are fixed at registration; there is no role-switch endpoint.
func (r Role) Valid() bool {
	return r == RolePassenger || r == RoleDriver
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	Email        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"` // Never expose password hash in JSON
	Role         Role      `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CanManage reports whether the user may mutate the ride: the owning
// passenger always can; once a driver is assigned, only that driver can
// act alongside the passenger. While the ride has no driver, any user may
// act on it, which is how a driver accepts a ride from the feed.
func (u *User) CanManage(ride *Ride) bool {
	if ride.PassengerID == u.ID {
		return true
	}
	return ride.DriverID == nil || *ride.DriverID == u.ID
}
