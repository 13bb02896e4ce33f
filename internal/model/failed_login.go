package model

import "time"

// FailedLogin is an append-only audit entry for a rejected authentication
// attempt. Rows are only ever inserted; there is no update or delete path.
type FailedLogin struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Identifier    string    `json:"identifier" gorm:"size:150;not null;index"`
	SourceAddress string    `json:"source_address,omitempty" gorm:"size:45"`
	Reason        string    `json:"reason,omitempty" gorm:"type:text"`
	CreatedAt     time.Time `json:"created_at" gorm:"index"`
}
