package model

// User is the identity record paired with an Employee. Created and
// soft-deleted atomically with its employee.
type User struct {
	UserID             string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Email              string `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash       string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role               string `gorm:"type:varchar(20);not null;default:'employee'"   json:"role"` // admin | manager | employee
	Status             string `gorm:"type:varchar(20);not null;default:'active'"     json:"status"`
	MustChangePassword bool   `gorm:"not null;default:true"                          json:"must_change_password"`
	VersionedModel
}

func (User) TableName() string { return "users" }
