package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/capacity/internal/db"
	"github.com/alexanderramin/capacity/internal/domain"
)

// SQLiteHolidayRepo implements HolidayRepo using a SQLite database.
type SQLiteHolidayRepo struct {
	db db.DBTX
}

// NewSQLiteHolidayRepo creates a new SQLiteHolidayRepo.
func NewSQLiteHolidayRepo(db db.DBTX) *SQLiteHolidayRepo {
	return &SQLiteHolidayRepo{db: db}
}

func (r *SQLiteHolidayRepo) Upsert(ctx context.Context, h *domain.Holiday) error {
	query := `INSERT INTO holidays (id, name, start_date, end_date)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			start_date = excluded.start_date,
			end_date = excluded.end_date`
	_, err := r.db.ExecContext(ctx, query,
		h.ID,
		h.Name,
		h.Date.Format(dateLayout),
		nullableTimeToString(h.EndDate, dateLayout),
	)
	if err != nil {
		return fmt.Errorf("upserting holiday: %w", err)
	}
	return nil
}

func (r *SQLiteHolidayRepo) List(ctx context.Context) ([]domain.Holiday, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, start_date, end_date FROM holidays ORDER BY start_date, id`)
	if err != nil {
		return nil, fmt.Errorf("listing holidays: %w", err)
	}
	defer rows.Close()

	var out []domain.Holiday
	for rows.Next() {
		var h domain.Holiday
		var startStr string
		var endStr sql.NullString
		if err := rows.Scan(&h.ID, &h.Name, &startStr, &endStr); err != nil {
			return nil, fmt.Errorf("scanning holiday: %w", err)
		}
		if h.Date, err = time.Parse(dateLayout, startStr); err != nil {
			return nil, fmt.Errorf("parsing start_date: %w", err)
		}
		h.EndDate = parseNullableTime(endStr, dateLayout)
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating holidays: %w", err)
	}
	return out, nil
}
