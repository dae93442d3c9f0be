package user

import (
	"context"
	"fmt"
	"time"

	"resnet-portal/internal/models"
	"resnet-portal/internal/store"
)

// HistoryDays is the fixed length of the trailing traffic window.
const HistoryDays = 7

const dateLayout = "2006-01-02"

// History builds the trailing traffic window for an account: HistoryDays
// day-records, oldest first, covering [asOf-6d, asOf] inclusive. Days
// without a log row come back zero-filled. Credit snapshots are anchored
// at the account's current traffic balance on the final day and
// propagated backwards, so for every adjacent pair
// credit[i+1]-credit[i] == allowanceBytes - throughput[i].
func History(ctx context.Context, backend store.Connector, account models.Account, asOf time.Time, allowanceBytes int64) ([]models.TrafficDay, error) {
	to := truncateToDate(asOf)
	from := to.AddDate(0, 0, -(HistoryDays - 1))

	logs, err := backend.TrafficLogs(ctx, account.ID, from, to)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]models.TrafficLogEntry, len(logs))
	for _, entry := range logs {
		key := entry.Date.Format(dateLayout)
		if _, dup := byDate[key]; dup {
			// Two raw rows for one date would double-count; refuse rather
			// than guess which one is real.
			return nil, fmt.Errorf("duplicate traffic log for %s on %s: %w",
				account.ID, key, store.ErrDataInconsistency)
		}
		byDate[key] = entry
	}

	history := make([]models.TrafficDay, HistoryDays)
	for i := range history {
		date := from.AddDate(0, 0, i)
		day := models.TrafficDay{Day: date.Weekday()}
		if entry, ok := byDate[date.Format(dateLayout)]; ok {
			day.InputKB = float64(entry.BytesIn) / 1024
			day.OutputKB = float64(entry.BytesOut) / 1024
			day.Throughput = entry.BytesIn + entry.BytesOut
		}
		history[i] = day
	}

	history[HistoryDays-1].Credit = account.TrafficBalance
	for i := HistoryDays - 2; i >= 0; i-- {
		history[i].Credit = history[i+1].Credit - allowanceBytes + history[i].Throughput
	}

	return history, nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
