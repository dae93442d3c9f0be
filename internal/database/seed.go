package database

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// seedDemoData inserts a handful of demo members so a fresh deployment has
// something to look at. Safe to run repeatedly; existing rows are kept.
func (s *Service) seedDemoData() error {
	res, err := s.db.Exec(queryInsertAccess, "HSS46", "0", "1", "b")
	if err != nil {
		return err
	}
	accessID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	members := []struct {
		account string
		name    string
		balance int64
		ip      string
		mac     string
		active  bool
	}{
		{"abc123", "Alice Abbey", 10000000000, "10.10.7.2", "aa:bb:cc:dd:ee:01", true},
		{"def456", "Bob Brook", 3221225472, "10.10.7.3", "aa:bb:cc:dd:ee:02", true},
		{"ghi789", "Carol Cliff", 0, "10.10.7.4", "aa:bb:cc:dd:ee:03", false},
	}

	for _, m := range members {
		if _, err := s.db.Exec(queryInsertAccount, m.account, m.name, m.balance, accessID); err != nil {
			return err
		}
		if _, err := s.db.Exec(queryInsertIP, m.ip, m.account); err != nil {
			return err
		}
		if _, err := s.db.Exec(queryInsertMAC, uuid.New().String(), m.mac, m.account); err != nil {
			return err
		}
		if _, err := s.db.Exec(queryInsertProperty, m.account, m.active); err != nil {
			return err
		}
		zap.L().Info("Demo member created",
			zap.String("account", m.account), zap.String("name", m.name))
	}

	// An unclaimed address so IP lookups have an anonymous case to hit.
	if _, err := s.db.Exec(queryInsertIP, "10.10.7.200", nil); err != nil {
		return err
	}

	// A week of traffic and a small ledger for the first demo member.
	today := time.Now()
	for delta := -6; delta <= 0; delta++ {
		date := today.AddDate(0, 0, delta).Format(dateLayout)
		_, err := s.db.Exec(queryInsertTrafficLog,
			uuid.New().String(), "abc123", date, int64(512*1024), int64(2048*1024))
		if err != nil {
			return err
		}
	}
	if _, err := s.db.Exec(queryInsertStatement,
		uuid.New().String(), "abc123", "21.00", today.AddDate(0, 0, -30), "Semester statement"); err != nil {
		return err
	}
	if _, err := s.db.Exec(queryInsertFee,
		uuid.New().String(), "abc123", "3.50", today.AddDate(0, 0, -10), "Connection fee"); err != nil {
		return err
	}

	return nil
}
