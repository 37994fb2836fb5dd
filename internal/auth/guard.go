package auth

import "github.com/justsurfingit/job-corner/internal/apperrors"

// Principal is the authenticated caller resolved from a session for one request.
type Principal struct {
	AccountID string
	Role      Role
}

type Action int

const (
	ActionCreateJob Action = iota + 1
	ActionUpdateJob
	ActionDeleteJob
	ActionListJobApplicants
	ActionApply
	ActionListOwnApplications
)

var actionNames = map[Action]string{
	ActionCreateJob:           "create_job",
	ActionUpdateJob:           "update_job",
	ActionDeleteJob:           "delete_job",
	ActionListJobApplicants:   "list_job_applicants",
	ActionApply:               "apply",
	ActionListOwnApplications: "list_own_applications",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// requiredRole returns the only role allowed to perform the action.
func (a Action) requiredRole() Role {
	switch a {
	case ActionCreateJob, ActionUpdateJob, ActionDeleteJob, ActionListJobApplicants:
		return RoleCompany
	case ActionApply, ActionListOwnApplications:
		return RoleEmployee
	default:
		return ""
	}
}

func (a Action) ownerScoped() bool {
	switch a {
	case ActionUpdateJob, ActionDeleteJob, ActionListJobApplicants:
		return true
	default:
		return false
	}
}

// Resource describes the target of an owner-scoped action.
type Resource struct {
	OwnerID string
}

type Decision struct {
	Allowed bool
	Reason  error
}

func allow() Decision            { return Decision{Allowed: true} }
func deny(reason error) Decision { return Decision{Reason: reason} }

// Err is nil for an allowed decision and the deny reason otherwise.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return d.Reason
}

// IsOwner reports whether accountID owns a resource owned by ownerID.
func IsOwner(ownerID, accountID string) bool {
	return ownerID != "" && ownerID == accountID
}

// Authorize evaluates the access rules in order; the first match wins.
// Owner-scoped actions are denied when resource is nil.
func Authorize(p *Principal, action Action, resource *Resource) Decision {
	if p == nil || p.AccountID == "" {
		return deny(apperrors.ErrUnauthenticated)
	}
	required := action.requiredRole()
	if required == "" {
		return deny(apperrors.ErrForbidden)
	}
	if required == RoleCompany && p.Role != RoleCompany {
		return deny(apperrors.ErrForbidden)
	}
	if required == RoleEmployee && p.Role != RoleEmployee {
		return deny(apperrors.ErrForbidden)
	}
	if action.ownerScoped() {
		if resource == nil || !IsOwner(resource.OwnerID, p.AccountID) {
			return deny(apperrors.ErrForbidden)
		}
	}
	return allow()
}

// RequireRole checks the session and role rules only, before the target resource is loaded.
func RequireRole(p *Principal, action Action) error {
	if p == nil || p.AccountID == "" {
		return apperrors.ErrUnauthenticated
	}
	if required := action.requiredRole(); required == "" || p.Role != required {
		return apperrors.ErrForbidden
	}
	return nil
}
