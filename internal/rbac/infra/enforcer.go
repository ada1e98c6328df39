package infra

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"go-payroll/internal/domain"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// Role is the sole authorization input: policies are keyed by role name, not
// by individual principals.
var policies = [][]string{
	{domain.RoleAdmin, "employee", "read"},
	{domain.RoleAdmin, "employee", "create"},
	{domain.RoleAdmin, "employee", "update"},
	{domain.RoleAdmin, "employee", "delete"},
	{domain.RoleAdmin, "attendance", "read"},
	{domain.RoleAdmin, "attendance", "create"},
	{domain.RoleAdmin, "payroll", "read"},
	{domain.RoleAdmin, "payroll", "generate"},
	{domain.RoleAdmin, "analytics", "read"},
	{domain.RoleAdmin, "analytics", "forecast"},
	{domain.RoleAdmin, "audit", "read"},

	{domain.RoleHR, "employee", "read"},
	{domain.RoleHR, "employee", "create"},
	{domain.RoleHR, "employee", "update"},
	{domain.RoleHR, "employee", "delete"},
	{domain.RoleHR, "attendance", "read"},
	{domain.RoleHR, "attendance", "create"},
	{domain.RoleHR, "payroll", "read"},
	{domain.RoleHR, "payroll", "generate"},
	{domain.RoleHR, "analytics", "read"},
	{domain.RoleHR, "analytics", "forecast"},

	{domain.RoleEmployee, "employee", "read"},
	{domain.RoleEmployee, "attendance", "read"},
	{domain.RoleEmployee, "payroll", "read"},
	{domain.RoleEmployee, "analytics", "read"},
}

func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	return enforcer, nil
}
