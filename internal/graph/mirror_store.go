package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

// MirrorStore maintains the derived employee-payroll graph. It is not the
// system of record: every write is an idempotent MERGE keyed by business keys,
// and callers must treat failures as non-fatal.
//
//go:generate mockgen -source=mirror_store.go -destination=mock/mirror_store_mock.go -package=mock
type MirrorStore interface {
	UpsertEmployee(ctx context.Context, emp EmployeeNode) error
	UpsertPayroll(ctx context.Context, p PayrollNode) error
}

type EmployeeNode struct {
	EmployeeID  string
	Name        string
	Department  string
	Designation string
}

type PayrollNode struct {
	EmployeeID string
	Month      string
	Year       int
	BaseSalary float64
	Bonuses    float64
	Deductions float64
	Tax        float64
	NetSalary  float64
}

type mirrorStore struct {
	driver neo4j.DriverWithContext
	logger *zap.Logger
}

func NewMirrorStore(driver neo4j.DriverWithContext, logger *zap.Logger) MirrorStore {
	l := zap.L().Named("graph.mirror")
	if logger != nil {
		l = logger.Named("graph.mirror")
	}
	return &mirrorStore{driver: driver, logger: l}
}

func (s *mirrorStore) UpsertEmployee(ctx context.Context, emp EmployeeNode) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return tx.Run(ctx, `
			MERGE (e:Employee {id: $employee_id})
			SET e.name = $name,
			    e.department = $department,
			    e.designation = $designation
		`, map[string]any{
			"employee_id": emp.EmployeeID,
			"name":        emp.Name,
			"department":  emp.Department,
			"designation": emp.Designation,
		})
	})
	return err
}

func (s *mirrorStore) UpsertPayroll(ctx context.Context, p PayrollNode) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return tx.Run(ctx, `
			MERGE (e:Employee {id: $employee_id})
			MERGE (p:Payroll {employee_id: $employee_id, month: $month, year: $year})
			SET p.net_salary = $net_salary,
			    p.base_salary = $base_salary,
			    p.bonuses = $bonuses,
			    p.deductions = $deductions,
			    p.tax = $tax
			MERGE (e)-[:HAS_PAYROLL]->(p)
		`, map[string]any{
			"employee_id": p.EmployeeID,
			"month":       p.Month,
			"year":        p.Year,
			"net_salary":  p.NetSalary,
			"base_salary": p.BaseSalary,
			"bonuses":     p.Bonuses,
			"deductions":  p.Deductions,
			"tax":         p.Tax,
		})
	})
	return err
}
