package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq"

	"seda-ops/ledgersync/internal/db"
)

func main() {
	conn, err := sql.Open("postgres", db.PostgresDSN())
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer conn.Close()

	var id string
	if err := conn.QueryRow(`INSERT INTO api_keys (status) VALUES (true) RETURNING id`).Scan(&id); err != nil {
		log.Fatalf("insert api key: %v", err)
	}

	fmt.Println("New API Key:", id)
}
