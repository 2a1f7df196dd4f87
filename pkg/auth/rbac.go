package auth

import (
	"github.com/defectdesk/defectdesk-engine/pkg/models"
)

// Operation enumerates the permission-gated operations of the system.
type Operation string

const (
	OpCreateDefect  Operation = "CreateDefect"
	OpChangeStatus  Operation = "ChangeStatus"
	OpAddComment    Operation = "AddComment"
	OpListDefects   Operation = "ListDefects"
	OpListProjects  Operation = "ListProjects"
	OpListEngineers Operation = "ListEngineers"
)

// permissions maps each operation to the roles allowed to perform it.
// A nil entry means any authenticated role. Only defect creation is
// manager-restricted; status changes are intentionally open to all
// authenticated roles (engineers update their own work).
var permissions = map[Operation][]models.Role{
	OpCreateDefect:  {models.RoleManager},
	OpChangeStatus:  nil,
	OpAddComment:    nil,
	OpListDefects:   nil,
	OpListProjects:  nil,
	OpListEngineers: nil,
}

// CanPerform reports whether the given role may perform the operation.
// It is pure and total over the enumerated operation set: unknown roles
// and unknown operations are denied.
func CanPerform(role models.Role, op Operation) bool {
	if !role.Valid() {
		return false
	}

	allowed, ok := permissions[op]
	if !ok {
		return false
	}
	if allowed == nil {
		return true
	}

	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
