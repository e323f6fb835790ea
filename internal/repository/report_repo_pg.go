package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/saraye/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	GetByID(ctx context.Context, id string) (*domain.Report, error)
	ListByStatus(ctx context.Context, status domain.ReportStatus) ([]domain.Report, error)
	// Resolve closes an OPEN report. With REMOVE_LISTING the reported property
	// is deactivated in the same transaction.
	Resolve(ctx context.Context, id string, action domain.ModerationAction) (*domain.Report, error)
}

type PGReportRepository struct {
	db *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) ReportRepository {
	return &PGReportRepository{db: db}
}

const reportColumns = `id, property_id, reporter_id, description, status, resolution, created_at, resolved_at`

func scanReport(row pgx.Row) (*domain.Report, error) {
	var rp domain.Report
	if err := row.Scan(&rp.ID, &rp.PropertyID, &rp.ReporterID, &rp.Description, &rp.Status, &rp.Resolution, &rp.CreatedAt, &rp.ResolvedAt); err != nil {
		return nil, err
	}
	return &rp, nil
}

func (r *PGReportRepository) Create(ctx context.Context, report *domain.Report) error {
	err := r.db.QueryRow(ctx, `INSERT INTO reports (id, property_id, reporter_id, description, status, resolution)
		VALUES ($1, $2, $3, $4, $5, '')
		RETURNING created_at`,
		report.ID, report.PropertyID, report.ReporterID, report.Description, report.Status).Scan(&report.CreatedAt)
	return classify(err)
}

func (r *PGReportRepository) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	rp, err := scanReport(r.db.QueryRow(ctx, `SELECT `+reportColumns+` FROM reports WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("report", id)
		}
		return nil, classify(err)
	}
	return rp, nil
}

func (r *PGReportRepository) ListByStatus(ctx context.Context, status domain.ReportStatus) ([]domain.Report, error) {
	rows, err := r.db.Query(ctx, `SELECT `+reportColumns+` FROM reports WHERE status=$1 ORDER BY created_at, id`, status)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	reports := make([]domain.Report, 0)
	for rows.Next() {
		rp, err := scanReport(rows)
		if err != nil {
			return nil, classify(err)
		}
		reports = append(reports, *rp)
	}
	return reports, classify(rows.Err())
}

func (r *PGReportRepository) Resolve(ctx context.Context, id string, action domain.ModerationAction) (*domain.Report, error) {
	var resolved *domain.Report
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `UPDATE reports SET status=$1, resolution=$2, resolved_at=now()
			WHERE id=$3 AND status=$4
			RETURNING `+reportColumns, domain.ReportStatusResolved, action, id, domain.ReportStatusOpen)
		rp, err := scanReport(row)
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM reports WHERE id=$1)`, id).Scan(&exists); err != nil {
				return err
			}
			if !exists {
				return notFound("report", id)
			}
			return fmt.Errorf("%w: report %s is already resolved", domain.ErrIllegalTransition, id)
		}
		if err != nil {
			return err
		}

		if action == domain.ModerationRemoveListing {
			if _, err := tx.Exec(ctx, `UPDATE properties SET active=false WHERE id=$1`, rp.PropertyID); err != nil {
				return err
			}
		}
		resolved = rp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resolved, nil
}

var _ ReportRepository = (*PGReportRepository)(nil)
