package main

import (
	"log"

	"school20/app/config"
	"school20/app/database"
)

func main() {
	log.Println("Running schema migrations...")

	config.Init()
	db := config.GetDB()
	if db == nil {
		log.Fatal("Failed to get database instance")
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Migration failed: ", err)
	}

	log.Println("Migrations completed successfully")
}
