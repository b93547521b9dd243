package model

// Employee roles.
const (
	RoleEmployee = "EMPLOYEE"
	RoleAdmin    = "ADMIN"
)

// Employee is a CRM user. Exactly one Employee exists per identity
// (user_id unique); the record is created lazily on first login.
type Employee struct {
	ID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID   string `gorm:"type:uuid;not null;uniqueIndex"                 json:"user_id"`
	Email    string `gorm:"type:varchar(255);not null"                     json:"email"`
	Name     string `gorm:"type:varchar(100);not null"                     json:"name"`
	Role     string `gorm:"type:varchar(20);not null;default:'EMPLOYEE'"   json:"role"`
	IsActive bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName maps the model to its table.
func (Employee) TableName() string { return "employees" }
