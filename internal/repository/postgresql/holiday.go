package postgresql

import (
	"context"
	"fmt"

	"github.com/teampulse/attendance-backend-go/internal/domain/holiday"
	"github.com/teampulse/attendance-backend-go/internal/pkg/database"
)

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepository{db: db}
}

// List implements holiday.HolidayRepository.
func (r *holidayRepository) List(ctx context.Context) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, day, month
		FROM holidays
		ORDER BY month, day
	`

	var holidays []holiday.Holiday
	err := retryRead(ctx, func() error {
		rows, err := q.Query(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		holidays = holidays[:0]
		for rows.Next() {
			var h holiday.Holiday
			if err := rows.Scan(&h.ID, &h.Name, &h.Day, &h.Month); err != nil {
				return err
			}
			holidays = append(holidays, h)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	return holidays, nil
}
