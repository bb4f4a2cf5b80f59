package entity

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleAdmin   UserRole = "admin"
)

type User struct {
	Base
	Name         string   `db:"name"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	Phone        *string  `db:"phone"`
	College      string   `db:"college"`
	Role         UserRole `db:"role"`
	IsActive     bool     `db:"is_active"`
}
