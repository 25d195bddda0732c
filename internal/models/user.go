package models

// UserRole is the campus role carried in identity tokens.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleFaculty UserRole = "FACULTY"
	RoleStaff   UserRole = "STAFF"
	RoleStudent UserRole = "STUDENT"
)
