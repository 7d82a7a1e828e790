package main

import (
	"fmt"
	"log"

	"autonego-backend/db"
	"autonego-backend/pkg/config"
)

func main() {
	cfg := config.Load()

	conn, err := db.Open(cfg.MySQLDSN)
	if err != nil {
		log.Fatal("Failed to connect to DB:", err)
	}
	defer conn.Close()

	if err := db.Migrate(conn); err != nil {
		log.Fatal("Migration failed:", err)
	}
	fmt.Println("Migration completed.")
}
