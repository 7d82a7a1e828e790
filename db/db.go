package db

import (
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
)

func Open(dsn string) (*sql.DB, error) {
	conn, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id CHAR(26) PRIMARY KEY COMMENT 'ULID',
		name VARCHAR(100) NOT NULL,
		email VARCHAR(150) NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS listings (
		id CHAR(26) PRIMARY KEY COMMENT 'ULID',
		seller_id CHAR(26) NOT NULL,
		vehicle_id CHAR(26) NOT NULL,
		asking_price BIGINT NOT NULL,
		floor_price BIGINT NOT NULL,
		features JSON,
		description TEXT,
		is_active BOOLEAN DEFAULT TRUE,
		is_sold BOOLEAN DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		FOREIGN KEY (seller_id) REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS negotiations (
		id CHAR(26) PRIMARY KEY COMMENT 'ULID',
		listing_id CHAR(26) NOT NULL,
		buyer_name VARCHAR(100) NOT NULL DEFAULT '',
		buyer_email VARCHAR(150) NOT NULL DEFAULT '',
		buyer_contact VARCHAR(20) NOT NULL DEFAULT '',
		current_offer BIGINT,
		last_counter BIGINT,
		agreed_price BIGINT,
		rounds INT NOT NULL DEFAULT 0,
		bottom_quoted BOOLEAN DEFAULT FALSE,
		status VARCHAR(20) NOT NULL DEFAULT 'pending' COMMENT 'pending, accepted, rejected',
		contact_collected BOOLEAN DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		FOREIGN KEY (listing_id) REFERENCES listings(id)
	)`,
	`CREATE TABLE IF NOT EXISTS chat_turns (
		id CHAR(26) PRIMARY KEY COMMENT 'ULID',
		negotiation_id CHAR(26) NOT NULL,
		sender VARCHAR(10) NOT NULL COMMENT 'buyer, system',
		message TEXT NOT NULL,
		created_at TIMESTAMP(6) DEFAULT CURRENT_TIMESTAMP(6),
		FOREIGN KEY (negotiation_id) REFERENCES negotiations(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS negotiation_logs (
		id CHAR(26) PRIMARY KEY COMMENT 'ULID',
		negotiation_id CHAR(26) NOT NULL,
		proposed_price BIGINT NOT NULL,
		decision VARCHAR(20) NOT NULL,
		counter_price BIGINT NOT NULL,
		log_time TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (negotiation_id) REFERENCES negotiations(id) ON DELETE CASCADE
	)`,
}

// Migrate creates the schema. Statements are idempotent so the migration can
// run on every deploy.
func Migrate(conn *sql.DB) error {
	for _, q := range schema {
		if _, err := conn.Exec(q); err != nil {
			return err
		}
	}
	return nil
}
