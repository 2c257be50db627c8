package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// Roles carried in JWT claims. User identity itself is issued by the external
// identity provider; this package only decides what a role may do.
const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleHR       = "hr"
	RoleAdmin    = "admin"
)

type Enforcer interface {
	Enforce(role, resource, action string) (bool, error)
}

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// policies is the static permission table: role, resource, action. Managers
// and HR inherit everything employees can do; admin inherits HR.
var policies = [][3]string{
	{RoleEmployee, "calendar", "read"},
	{RoleEmployee, "leave", "read"},
	{RoleEmployee, "leave", "create"},
	{RoleEmployee, "leave", "cancel"},
	{RoleEmployee, "balance", "read"},
	{RoleEmployee, "holiday", "read"},
	{RoleEmployee, "workweek", "read"},
	{RoleEmployee, "leavetype", "read"},
	{RoleEmployee, "company", "read"},
	{RoleEmployee, "company", "register"},
	{RoleEmployee, "assistant", "draft"},

	{RoleManager, "leave", "approve"},
	{RoleManager, "holiday", "manage"},
	{RoleManager, "workweek", "manage"},
	{RoleManager, "balance", "read_all"},

	{RoleHR, "leavetype", "manage"},
	{RoleHR, "balance", "manage"},
}

var groupings = [][2]string{
	{RoleManager, RoleEmployee},
	{RoleHR, RoleManager},
	{RoleAdmin, RoleHR},
}

type enforcer struct {
	e *casbin.Enforcer
}

// NewEnforcer builds the casbin enforcer from the embedded model and the
// static role policy table.
func NewEnforcer() (Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	for _, g := range groupings {
		if _, err := e.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}

	return &enforcer{e: e}, nil
}

func (en *enforcer) Enforce(role, resource, action string) (bool, error) {
	return en.e.Enforce(role, resource, action)
}
