package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/classtalk/classtalk-api/config"
	"github.com/classtalk/classtalk-api/pkg/helpers"
)

// Seeds a demo teacher with one classroom so a fresh install has something
// to log into.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "teacher@classtalk.dev"
	password := "password123"
	name := "Demo Teacher"
	hash, err := helpers.HashPassword(password, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var teacherID string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, name, role, is_verified)
		VALUES ($1, $2, $3, 'teacher', TRUE)
		ON CONFLICT ON CONSTRAINT users_email_key DO UPDATE SET name=EXCLUDED.name
		RETURNING id
	`, email, hash, name).Scan(&teacherID)
	if err != nil {
		log.Fatalf("failed to seed teacher: %v", err)
	}
	fmt.Printf("seeded teacher: id=%s email=%s password=%s\n", teacherID, email, password)

	code, err := helpers.GenInviteCode()
	if err != nil {
		log.Fatalf("failed to generate invite code: %v", err)
	}

	var classroomID, inviteCode string
	err = db.QueryRow(`
		INSERT INTO classrooms (name, description, teacher_id, invite_code)
		SELECT 'Demo Classroom', 'A seeded classroom for local development', $1, $2
		WHERE NOT EXISTS (SELECT 1 FROM classrooms WHERE teacher_id = $1)
		RETURNING id, invite_code
	`, teacherID, code).Scan(&classroomID, &inviteCode)
	if err == sql.ErrNoRows {
		err = db.QueryRow(`SELECT id, invite_code FROM classrooms WHERE teacher_id = $1 LIMIT 1`, teacherID).Scan(&classroomID, &inviteCode)
	}
	if err != nil {
		log.Fatalf("failed to seed classroom: %v", err)
	}
	fmt.Printf("seeded classroom: id=%s invite_code=%s\n", classroomID, inviteCode)

	email = "student@classtalk.dev"
	name = "Demo Student"
	var studentID string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, name, role, is_verified)
		VALUES ($1, $2, $3, 'student', TRUE)
		ON CONFLICT ON CONSTRAINT users_email_key DO UPDATE SET name=EXCLUDED.name
		RETURNING id
	`, email, hash, name).Scan(&studentID)
	if err != nil {
		log.Fatalf("failed to seed student: %v", err)
	}
	if _, err := db.Exec(`
		INSERT INTO classroom_members (classroom_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT ON CONSTRAINT classroom_members_pkey DO NOTHING
	`, classroomID, studentID); err != nil {
		log.Fatalf("failed to enroll student: %v", err)
	}
	fmt.Printf("seeded student: id=%s email=%s (enrolled)\n", studentID, email)
}
