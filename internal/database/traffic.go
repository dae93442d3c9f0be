package database

import (
	"context"
	"time"

	"resnet-portal/internal/models"
)

// dateLayout is how traffic_log.date is stored; calendar dates only, no
// time-of-day component.
const dateLayout = "2006-01-02"

func (s *Service) TrafficLogs(ctx context.Context, accountID string, from, to time.Time) ([]models.TrafficLogEntry, error) {
	rows, err := s.db.QueryContext(ctx, queryTrafficLogs,
		accountID, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, s.fail("traffic logs", err)
	}
	defer rows.Close()

	var logs []models.TrafficLogEntry
	for rows.Next() {
		var entry models.TrafficLogEntry
		var date string
		if err := rows.Scan(&entry.AccountID, &date, &entry.BytesIn, &entry.BytesOut); err != nil {
			return nil, s.fail("scan traffic log", err)
		}
		entry.Date, err = time.Parse(dateLayout, date)
		if err != nil {
			return nil, s.fail("parse traffic log date", err)
		}
		logs = append(logs, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail("traffic logs", err)
	}
	return logs, nil
}
