package core

type Role string

const (
	RoleUnset     Role = ""
	RoleEmployee  Role = "employee"
	RoleHRManager Role = "hr_manager"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUnset, RoleEmployee, RoleHRManager:
		return true
	}
	return false
}

// Caller 通過驗證的呼叫者
type Caller struct {
	Email   string
	Role    Role
	HREmail string
}

func (c Caller) IsHR() bool {
	return c.Role == RoleHRManager
}

const (
	ContextCallerKey = "auth_caller"
)
