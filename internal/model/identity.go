package model

// Identity is a login account, the stand-in for the delegated identity
// provider. It carries credentials only; everything business-facing lives
// on Employee.
type Identity struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	Name         string `gorm:"type:varchar(100);not null;default:''"          json:"name"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	BaseModel
}

// TableName maps the model to its table.
func (Identity) TableName() string { return "identities" }
