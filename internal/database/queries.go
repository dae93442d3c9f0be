package database

const (
	// Account queries
	queryListAccounts = `
		SELECT a.account, a.name, a.traffic_balance, COALESCE(p.active, 0)
		FROM account a
		LEFT JOIN account_property p ON p.account = a.account
		ORDER BY a.account`

	queryFindAccount = `
		SELECT a.account, a.name, a.traffic_balance, COALESCE(p.active, 0)
		FROM account a
		LEFT JOIN account_property p ON p.account = a.account
		WHERE a.account = ?`

	queryFindAccountByIP = `
		SELECT a.account, a.name, a.traffic_balance, COALESCE(p.active, 0)
		FROM ip i
		JOIN account a ON a.account = i.account
		LEFT JOIN account_property p ON p.account = a.account
		WHERE i.ip = ?`

	queryFindAccountByMAC = `
		SELECT a.account, a.name, a.traffic_balance, COALESCE(p.active, 0)
		FROM mac m
		JOIN account a ON a.account = m.account
		LEFT JOIN account_property p ON p.account = a.account
		WHERE m.mac = ?`

	// Address book queries
	queryLocationFor = `
		SELECT x.building, x.floor, x.flat, x.room
		FROM account a
		JOIN access x ON x.id = a.access_id
		WHERE a.account = ?`

	queryIPsFor = `
		SELECT ip FROM ip WHERE account = ? ORDER BY ip`

	queryMACsFor = `
		SELECT mac FROM mac WHERE account = ? ORDER BY mac`

	// Traffic queries
	queryTrafficLogs = `
		SELECT account, date, bytes_in, bytes_out
		FROM traffic_log
		WHERE account = ? AND date >= ? AND date <= ?
		ORDER BY date`

	// Ledger queries
	queryStatementLedger = `
		SELECT account, amount, timestamp, description
		FROM account_statement_log
		WHERE account = ?
		ORDER BY timestamp`

	queryFeeLedger = `
		SELECT account, amount, timestamp, description
		FROM account_fee_log
		WHERE account = ?
		ORDER BY timestamp`

	// Seed helpers
	queryInsertAccount = `
		INSERT OR IGNORE INTO account (account, name, traffic_balance, access_id)
		VALUES (?, ?, ?, ?)`

	queryInsertAccess = `
		INSERT INTO access (building, floor, flat, room) VALUES (?, ?, ?, ?)`

	queryInsertIP = `
		INSERT OR IGNORE INTO ip (ip, account) VALUES (?, ?)`

	queryInsertMAC = `
		INSERT OR IGNORE INTO mac (id, mac, account) VALUES (?, ?, ?)`

	queryInsertTrafficLog = `
		INSERT INTO traffic_log (id, account, date, bytes_in, bytes_out)
		VALUES (?, ?, ?, ?, ?)`

	queryInsertStatement = `
		INSERT INTO account_statement_log (id, account, amount, timestamp, description)
		VALUES (?, ?, ?, ?, ?)`

	queryInsertFee = `
		INSERT INTO account_fee_log (id, account, amount, timestamp, description)
		VALUES (?, ?, ?, ?, ?)`

	queryInsertProperty = `
		INSERT OR REPLACE INTO account_property (account, active) VALUES (?, ?)`
)
