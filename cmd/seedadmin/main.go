package main

import (
	"flag"
	"log"

	"school20/app/config"
	"school20/app/routes/auth"
)

// Seeds the first admin account so a fresh install can log in.
func main() {
	email := flag.String("email", "", "admin email address")
	password := flag.String("password", "", "admin password")
	firstName := flag.String("first-name", "System", "first name")
	lastName := flag.String("last-name", "Admin", "last name")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}

	config.Init()
	db := config.GetDB()
	if db == nil {
		log.Fatal("Failed to get database instance")
	}
	defer db.Close()

	hashed, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatal("Failed to hash password: ", err)
	}

	tx, err := db.Begin()
	if err != nil {
		log.Fatal("Failed to begin transaction: ", err)
	}
	defer tx.Rollback()

	var userID string
	err = tx.QueryRow(`INSERT INTO users (email, password, first_name, last_name)
					   VALUES ($1, $2, $3, $4)
					   ON CONFLICT (email) DO UPDATE SET password = EXCLUDED.password
					   RETURNING id`,
		*email, hashed, *firstName, *lastName).Scan(&userID)
	if err != nil {
		log.Fatal("Failed to upsert user: ", err)
	}

	_, err = tx.Exec(`INSERT INTO user_roles (user_id, role_id)
					  SELECT $1, id FROM roles WHERE name = 'admin'
					  ON CONFLICT DO NOTHING`, userID)
	if err != nil {
		log.Fatal("Failed to grant admin role: ", err)
	}

	if err := tx.Commit(); err != nil {
		log.Fatal("Failed to commit: ", err)
	}

	log.Printf("Admin account ready: %s", *email)
}
