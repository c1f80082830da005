package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/aerowis/internal/app/models"
	"github.com/yigit/aerowis/internal/db"
	"github.com/yigit/aerowis/internal/domain"
	"github.com/yigit/aerowis/internal/pkg/apperrors"
	"github.com/yigit/aerowis/internal/pkg/dberrors"
	"github.com/yigit/aerowis/internal/pkg/helpers"
	"github.com/yigit/aerowis/internal/pkg/logger"
)

var financeColumns = helpers.NewColumnSet("amount", "type", "payment_method", "payment_date")

// Receipt ids compare by length first so ".../1000" sorts after ".../999"
const (
	receiptOrderDesc = "LENGTH(f.receipt_id) DESC, f.receipt_id DESC"
	receiptOrderAsc  = "LENGTH(f.receipt_id), f.receipt_id"
)

// ReceiptIDFunc builds the next receipt id from the latest one issued in the
// financial year, nil when the year has none yet
type ReceiptIDFunc func(latest *string) (string, error)

// FinanceRepository handles fee payment database operations
type FinanceRepository struct {
	db db.Pool
	sb squirrel.StatementBuilderType
}

// NewFinanceRepository creates a new FinanceRepository
func NewFinanceRepository(pool db.Pool) *FinanceRepository {
	return &FinanceRepository{
		db: pool,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *FinanceRepository) selectRecords() squirrel.SelectBuilder {
	return r.sb.Select(
		"f.receipt_id", "f.student_id", "f.amount", "f.type", "f.payment_method", "f.payment_date", "s.name",
	).From("finance f").
		Join("students s ON s.reg_no = f.student_id")
}

func scanFinanceRecord(row pgx.Row) (*models.FinanceRecord, error) {
	var rec models.FinanceRecord
	var method string
	if err := row.Scan(
		&rec.ReceiptID, &rec.StudentID, &rec.Amount, &rec.Type, &method, &rec.PaymentDate, &rec.StudentName,
	); err != nil {
		return nil, err
	}
	rec.PaymentMethod = domain.PaymentMethod(method)
	return &rec, nil
}

func (r *FinanceRepository) latestReceipt(ctx context.Context, q db.Querier, prefix string) (*string, error) {
	sql, args, err := r.sb.Select("f.receipt_id").From("finance f").
		Where(squirrel.Like{"f.receipt_id": prefix + "%"}).
		OrderBy(receiptOrderDesc).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building latest receipt SQL")
		return nil, fmt.Errorf("failed to build latest receipt query: %w", err)
	}

	var latest string
	if err := q.QueryRow(ctx, sql, args...).Scan(&latest); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		logger.Error().Err(err).Str("prefix", prefix).Msg("Error scanning latest receipt")
		return nil, fmt.Errorf("error finding latest receipt: %w", err)
	}
	return &latest, nil
}

// FindLatestReceiptForPrefix returns the highest receipt id starting with prefix, or nil
func (r *FinanceRepository) FindLatestReceiptForPrefix(ctx context.Context, prefix string) (*string, error) {
	return r.latestReceipt(ctx, r.db, prefix)
}

// Issue assigns the next receipt id of the financial year and inserts rec in one
// transaction. Writers of the same year are serialized by an advisory lock; a
// receipt taken anyway surfaces as apperrors.ErrReceiptConflict.
func (r *FinanceRepository) Issue(ctx context.Context, fy string, next ReceiptIDFunc, rec *models.FinanceRecord) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", "receipt:"+fy); err != nil {
			logger.Error().Err(err).Str("fy", fy).Msg("Error acquiring receipt lock")
			return fmt.Errorf("error acquiring receipt lock: %w", err)
		}

		latest, err := r.latestReceipt(ctx, tx, domain.ReceiptPrefix(fy))
		if err != nil {
			return err
		}

		receiptID, err := next(latest)
		if err != nil {
			return err
		}

		sql, args, err := r.sb.Insert("finance").
			Columns("receipt_id", "student_id", "amount", "type", "payment_method", "payment_date").
			Values(receiptID, rec.StudentID, rec.Amount, rec.Type, string(rec.PaymentMethod), rec.PaymentDate).
			ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building insert finance SQL")
			return fmt.Errorf("failed to build insert finance query: %w", err)
		}

		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			switch {
			case dberrors.IsDuplicateConstraintError(err, "finance_pkey"):
				logger.Warn().Str("receiptID", receiptID).Msg("Receipt id already issued")
				return apperrors.ErrReceiptConflict
			case dberrors.IsForeignKeyViolation(err, "finance_student_id_fkey"):
				return apperrors.ErrStudentNotFound
			}
			logger.Error().Err(err).Str("receiptID", receiptID).Msg("Error executing insert finance query")
			return fmt.Errorf("error recording payment: %w", err)
		}

		rec.ReceiptID = receiptID
		return nil
	})
}

// GetByReceiptID retrieves a payment with the student's name
func (r *FinanceRepository) GetByReceiptID(ctx context.Context, receiptID string) (*models.FinanceRecord, error) {
	sql, args, err := r.selectRecords().Where(squirrel.Eq{"f.receipt_id": receiptID}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get receipt SQL")
		return nil, fmt.Errorf("failed to build get receipt query: %w", err)
	}

	rec, err := scanFinanceRecord(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReceiptNotFound
		}
		logger.Error().Err(err).Str("receiptID", receiptID).Msg("Error scanning receipt row")
		return nil, fmt.Errorf("error retrieving receipt: %w", err)
	}
	return rec, nil
}

func applyFinanceFilter(query squirrel.SelectBuilder, filter models.FinanceFilter) squirrel.SelectBuilder {
	if filter.StudentID != nil {
		query = query.Where(squirrel.Eq{"f.student_id": *filter.StudentID})
	}
	if filter.FinancialYear != "" {
		query = query.Where(squirrel.Like{"f.receipt_id": domain.ReceiptPrefix(filter.FinancialYear) + "%"})
	}
	return query
}

func (r *FinanceRepository) collect(ctx context.Context, query squirrel.SelectBuilder) ([]models.FinanceRecord, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list payments SQL")
		return nil, fmt.Errorf("failed to build list payments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list payments query")
		return nil, fmt.Errorf("error listing payments: %w", err)
	}
	defer rows.Close()

	records := make([]models.FinanceRecord, 0)
	for rows.Next() {
		rec, err := scanFinanceRecord(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning payment row")
			return nil, fmt.Errorf("error scanning payment: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payments: %w", err)
	}
	return records, nil
}

// List returns matching payments, latest payment date first, and the number
// of matches before paging
func (r *FinanceRepository) List(ctx context.Context, filter models.FinanceFilter) ([]models.FinanceRecord, int64, error) {
	countSQL, countArgs, err := applyFinanceFilter(r.sb.Select("COUNT(*)").From("finance f"), filter).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count payments SQL")
		return nil, 0, fmt.Errorf("failed to build count payments query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting payments")
		return nil, 0, fmt.Errorf("error counting payments: %w", err)
	}

	query := applyFinanceFilter(r.selectRecords(), filter).
		OrderBy("f.payment_date DESC", receiptOrderDesc)
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	records, err := r.collect(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// ListByFinancialYear returns the payments of one financial year in receipt order
func (r *FinanceRepository) ListByFinancialYear(ctx context.Context, fy string) ([]models.FinanceRecord, error) {
	query := applyFinanceFilter(r.selectRecords(), models.FinanceFilter{FinancialYear: fy}).
		OrderBy(receiptOrderAsc)
	return r.collect(ctx, query)
}

// Update applies a partial update. The receipt id itself is never changed.
func (r *FinanceRepository) Update(ctx context.Context, receiptID string, patch models.FinancePatch) error {
	set, err := helpers.BuildSetMap(patch.Changes(), financeColumns)
	if err != nil {
		return err
	}

	sql, args, err := r.sb.Update("finance").SetMap(set).Where(squirrel.Eq{"receipt_id": receiptID}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update finance SQL")
		return fmt.Errorf("failed to build update finance query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsCheckViolation(err) {
			return apperrors.NewValidationError("", "payment violates amount or method rules")
		}
		logger.Error().Err(err).Str("receiptID", receiptID).Msg("Error executing update finance query")
		return fmt.Errorf("error updating payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrReceiptNotFound
	}
	return nil
}

// Delete removes a payment
func (r *FinanceRepository) Delete(ctx context.Context, receiptID string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM finance WHERE receipt_id = $1", receiptID)
	if err != nil {
		logger.Error().Err(err).Str("receiptID", receiptID).Msg("Error executing delete finance query")
		return fmt.Errorf("error deleting payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrReceiptNotFound
	}
	return nil
}
