package entity

type User struct {
	Base
	Name   string `gorm:"unique"`
	Role   string `gorm:"default:USER"`
	Bio    string
	Avatar string

	// TotalPoints is the running sum of points awarded by unlocked
	// achievements. It only ever increases.
	TotalPoints uint64
}

const (
	SuperAdminRole = "SUPER_ADMIN"
	AdminRole      = "ADMIN"
	UserRole       = "USER"
)
