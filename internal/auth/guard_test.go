package auth

import (
	"errors"
	"testing"

	"github.com/justsurfingit/job-corner/internal/apperrors"
)

func TestAuthorizeRuleTable(t *testing.T) {
	company := &Principal{AccountID: "company-1", Role: RoleCompany}
	otherCompany := &Principal{AccountID: "company-2", Role: RoleCompany}
	employee := &Principal{AccountID: "employee-1", Role: RoleEmployee}
	owned := &Resource{OwnerID: "company-1"}

	cases := []struct {
		name      string
		principal *Principal
		action    Action
		resource  *Resource
		want      error
	}{
		{"no session create", nil, ActionCreateJob, nil, apperrors.ErrUnauthenticated},
		{"no session apply", nil, ActionApply, nil, apperrors.ErrUnauthenticated},
		{"empty account id", &Principal{Role: RoleCompany}, ActionCreateJob, nil, apperrors.ErrUnauthenticated},
		{"company creates", company, ActionCreateJob, nil, nil},
		{"employee creates", employee, ActionCreateJob, nil, apperrors.ErrForbidden},
		{"employee updates", employee, ActionUpdateJob, owned, apperrors.ErrForbidden},
		{"employee deletes", employee, ActionDeleteJob, owned, apperrors.ErrForbidden},
		{"employee lists applicants", employee, ActionListJobApplicants, owned, apperrors.ErrForbidden},
		{"company applies", company, ActionApply, nil, apperrors.ErrForbidden},
		{"company lists own applications", company, ActionListOwnApplications, nil, apperrors.ErrForbidden},
		{"employee applies", employee, ActionApply, nil, nil},
		{"employee lists own applications", employee, ActionListOwnApplications, nil, nil},
		{"owner updates", company, ActionUpdateJob, owned, nil},
		{"owner deletes", company, ActionDeleteJob, owned, nil},
		{"owner lists applicants", company, ActionListJobApplicants, owned, nil},
		{"non owner updates", otherCompany, ActionUpdateJob, owned, apperrors.ErrForbidden},
		{"non owner deletes", otherCompany, ActionDeleteJob, owned, apperrors.ErrForbidden},
		{"non owner lists applicants", otherCompany, ActionListJobApplicants, owned, apperrors.ErrForbidden},
		{"owner scoped without resource", company, ActionDeleteJob, nil, apperrors.ErrForbidden},
		{"unknown action", company, Action(99), nil, apperrors.ErrForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			decision := Authorize(tc.principal, tc.action, tc.resource)
			if tc.want == nil {
				if !decision.Allowed || decision.Err() != nil {
					t.Fatalf("expected allow, got %v", decision.Reason)
				}
				return
			}
			if decision.Allowed {
				t.Fatalf("expected deny %v, got allow", tc.want)
			}
			if !errors.Is(decision.Err(), tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, decision.Err())
			}
		})
	}
}

func TestRequireRoleMatchesAuthorizeWithoutOwnership(t *testing.T) {
	principals := []*Principal{
		nil,
		{AccountID: "company-1", Role: RoleCompany},
		{AccountID: "employee-1", Role: RoleEmployee},
	}
	actions := []Action{
		ActionCreateJob, ActionUpdateJob, ActionDeleteJob,
		ActionListJobApplicants, ActionApply, ActionListOwnApplications,
	}
	for _, p := range principals {
		for _, action := range actions {
			var resource *Resource
			if p != nil {
				resource = &Resource{OwnerID: p.AccountID}
			}
			want := Authorize(p, action, resource).Err()
			got := RequireRole(p, action)
			if !errors.Is(got, want) && !(got == nil && want == nil) {
				t.Fatalf("action %s principal %+v: require=%v authorize=%v", action, p, got, want)
			}
		}
	}
}

func TestIsOwner(t *testing.T) {
	if !IsOwner("c1", "c1") {
		t.Fatalf("expected owner")
	}
	if IsOwner("c1", "c2") {
		t.Fatalf("expected non owner")
	}
	if IsOwner("", "") {
		t.Fatalf("empty owner must never match")
	}
}

func TestParseRole(t *testing.T) {
	if role, err := ParseRole("company"); err != nil || role != RoleCompany {
		t.Fatalf("unexpected parse result %q %v", role, err)
	}
	if _, err := ParseRole("admin"); err == nil {
		t.Fatalf("expected error for unknown role")
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	ok, err := CheckPassword(hash, "s3cret!")
	if err != nil || !ok {
		t.Fatalf("expected match, got %v %v", ok, err)
	}
	ok, err = CheckPassword(hash, "wrong")
	if err != nil || ok {
		t.Fatalf("expected mismatch, got %v %v", ok, err)
	}
}
