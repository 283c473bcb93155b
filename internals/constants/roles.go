package constants

// Role claim values recognized by the JWT guard.
const (
	RoleAdmin      = "admin"
	RoleAccountant = "accountant"
	RoleTeacher    = "teacher"
)

// FeeStructureWriters may create, revise, and archive fee structures.
var FeeStructureWriters = []string{RoleAdmin, RoleAccountant}
