package model

// Employee is a schedulable worker.
type Employee struct {
	EmployeeID string             `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"employee_id"`
	Code       string             `gorm:"type:varchar(20);not null;uniqueIndex"          json:"code"` // EMP-YYYY-NNNN
	FirstName  string             `gorm:"type:varchar(100);not null"                     json:"first_name"`
	LastName   string             `gorm:"type:varchar(100);not null"                     json:"last_name"`
	Email      string             `gorm:"type:varchar(255);not null"                     json:"email"`
	Phone      string             `gorm:"type:varchar(30)"                               json:"phone,omitempty"`
	Role       string             `gorm:"type:varchar(50);not null"                      json:"role"`
	Department string             `gorm:"type:varchar(100);not null"                     json:"department"`
	Location   string             `gorm:"type:varchar(100);not null"                     json:"location"`
	Skills     StringArray        `gorm:"type:text[]"                                    json:"skills"`
	// Availability keeps one window per weekday; shifts must fit inside it.
	Availability WeeklyAvailability `gorm:"type:jsonb"                                   json:"availability"`
	Status       string             `gorm:"type:varchar(20);not null;default:'active'"   json:"status"` // active | inactive
	ProfileImg   string             `gorm:"type:varchar(500)"                            json:"profile_img,omitempty"`
	UserID       string             `gorm:"type:uuid;not null"                           json:"user_id"`
	VersionedModel

	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

func (Employee) TableName() string { return "employees" }

// FullName joins first and last name.
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
