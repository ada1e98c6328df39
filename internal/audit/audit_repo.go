package audit

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=audit_repo.go -destination=mock/audit_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, entry *Entry) error
	FindRecent(ctx context.Context, limit int) ([]Entry, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// Create joins the caller's transaction when one is attached, so the audit
// entry commits atomically with the payroll record.
func (r *repository) Create(ctx context.Context, entry *Entry) error {
	if r.tx != nil {
		query := `
            INSERT INTO audit_trail (id, action, employee_id, performed_by, details, timestamp)
            VALUES ($1, $2, $3, $4, $5, $6)
        `
		_, err := r.tx.ExecContext(
			ctx, query,
			entry.ID, entry.Action, entry.EmployeeID, entry.PerformedBy, entry.Details, entry.Timestamp,
		)
		return err
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) FindRecent(ctx context.Context, limit int) ([]Entry, error) {
	var entries []Entry
	err := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
