package entity

import "github.com/google/uuid"

// DeviceToken is an FCM registration token for a member or owner
// device. Registration happens in the notification subsystem; the
// reservation flow only reads tokens to push status updates.
type DeviceToken struct {
	BaseSimple
	UserID uuid.UUID `db:"user_id"`
	Token  string    `db:"token"`
}
