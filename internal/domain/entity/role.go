package entity

// Role ID constants, matching the seeded rows of the roles table
const (
	RoleIDAdmin  = 1
	RoleIDDoctor = 2
)
