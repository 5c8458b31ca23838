package entity

// Role names carried in staff access tokens
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)
