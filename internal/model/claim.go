package model

import "time"

// CollegeClaim records which employee actively owns a college pipeline.
// college_key is the normalized name (see CollegeKey); the primary key
// makes ownership exclusive at the store, closing the window where two
// employees pass the availability pre-check concurrently.
type CollegeClaim struct {
	CollegeKey string    `gorm:"type:varchar(255);primaryKey" json:"college_key"`
	EmployeeID string    `gorm:"type:uuid;not null"           json:"employee_id"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName maps the model to its table.
func (CollegeClaim) TableName() string { return "college_claims" }
