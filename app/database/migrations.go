package database

import (
	"database/sql"
	"fmt"
	"log"
)

// RunMigrations creates any missing tables and applies schema updates.
// Statements are idempotent so the app can run them on every boot.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}

var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`,

	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		email TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		phone VARCHAR(20) NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMPTZ
	)`,

	`CREATE TABLE IF NOT EXISTS roles (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT UNIQUE NOT NULL
	)`,

	`INSERT INTO roles (name)
		VALUES ('admin'), ('head_teacher'), ('teacher'), ('bursar'), ('librarian')
		ON CONFLICT (name) DO NOTHING`,

	`CREATE TABLE IF NOT EXISTS user_roles (
		user_id UUID NOT NULL REFERENCES users(id),
		role_id UUID NOT NULL REFERENCES roles(id),
		PRIMARY KEY (user_id, role_id)
	)`,

	`CREATE TABLE IF NOT EXISTS sessions (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id),
		expires_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS academic_years (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT UNIQUE NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		is_current BOOLEAN NOT NULL DEFAULT false,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS terms (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		academic_year_id UUID NOT NULL REFERENCES academic_years(id),
		name TEXT NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		is_current BOOLEAN NOT NULL DEFAULT false,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (academic_year_id, name)
	)`,

	`CREATE TABLE IF NOT EXISTS classes (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL,
		level TEXT NOT NULL,
		class_teacher_id UUID REFERENCES users(id),
		capacity INT NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMPTZ
	)`,

	`CREATE TABLE IF NOT EXISTS subjects (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL,
		code TEXT UNIQUE NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMPTZ
	)`,

	`CREATE TABLE IF NOT EXISTS class_subjects (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		class_id UUID NOT NULL REFERENCES classes(id),
		subject_id UUID NOT NULL REFERENCES subjects(id),
		academic_year_id UUID NOT NULL REFERENCES academic_years(id),
		teacher_id UUID REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (class_id, subject_id, academic_year_id)
	)`,

	`CREATE TABLE IF NOT EXISTS students (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		admission_no TEXT UNIQUE NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		gender TEXT NOT NULL,
		date_of_birth DATE,
		class_id UUID REFERENCES classes(id),
		academic_year_id UUID REFERENCES academic_years(id),
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMPTZ
	)`,

	`CREATE TABLE IF NOT EXISTS student_guardians (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		student_id UUID NOT NULL REFERENCES students(id),
		name TEXT NOT NULL,
		phone TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		relationship TEXT NOT NULL DEFAULT 'guardian',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS admission_applications (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		gender TEXT NOT NULL,
		date_of_birth DATE,
		applied_class_id UUID NOT NULL REFERENCES classes(id),
		academic_year_id UUID NOT NULL REFERENCES academic_years(id),
		guardian_name TEXT NOT NULL,
		guardian_phone TEXT NOT NULL,
		guardian_email TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'applied',
		notes TEXT NOT NULL DEFAULT '',
		student_id UUID REFERENCES students(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS class_enrollments (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		student_id UUID NOT NULL REFERENCES students(id),
		class_id UUID NOT NULL REFERENCES classes(id),
		academic_year_id UUID NOT NULL REFERENCES academic_years(id),
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (student_id, class_id, academic_year_id)
	)`,

	`CREATE TABLE IF NOT EXISTS subject_enrollments (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		student_id UUID NOT NULL REFERENCES students(id),
		subject_id UUID NOT NULL REFERENCES subjects(id),
		academic_year_id UUID NOT NULL REFERENCES academic_years(id),
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (student_id, subject_id, academic_year_id)
	)`,

	`CREATE TABLE IF NOT EXISTS grading_bands (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		min_marks DECIMAL(5,2) NOT NULL,
		max_marks DECIMAL(5,2) NOT NULL,
		grade TEXT NOT NULL,
		grade_points DECIMAL(4,2) NOT NULL DEFAULT 0,
		default_remark TEXT NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMPTZ
	)`,

	`CREATE TABLE IF NOT EXISTS marks_submissions (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		student_id UUID NOT NULL REFERENCES students(id),
		subject_id UUID NOT NULL REFERENCES subjects(id),
		academic_year_id UUID NOT NULL REFERENCES academic_years(id),
		term_id UUID NOT NULL REFERENCES terms(id),
		a1 DECIMAL(3,1),
		a2 DECIMAL(3,1),
		a3 DECIMAL(3,1),
		exam_score DECIMAL(5,1),
		avg_assessment DECIMAL(4,2),
		ca_20 DECIMAL(4,1),
		exam_80 DECIMAL(4,1),
		total DECIMAL(5,1),
		grade TEXT NOT NULL DEFAULT '',
		grade_points DECIMAL(4,2) NOT NULL DEFAULT 0,
		identifier SMALLINT NOT NULL DEFAULT 1,
		remark TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'draft',
		rejection_reason TEXT,
		submitted_by UUID REFERENCES users(id),
		submitted_at TIMESTAMPTZ,
		approved_by UUID REFERENCES users(id),
		approved_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (student_id, subject_id, academic_year_id, term_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_marks_submissions_status
		ON marks_submissions (status, subject_id, submitted_by)`,

	`CREATE TABLE IF NOT EXISTS fee_structures (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL,
		class_id UUID NOT NULL REFERENCES classes(id),
		term_id UUID NOT NULL REFERENCES terms(id),
		academic_year_id UUID NOT NULL REFERENCES academic_years(id),
		amount DECIMAL(12,2) NOT NULL,
		is_mandatory BOOLEAN NOT NULL DEFAULT true,
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMPTZ
	)`,

	`CREATE TABLE IF NOT EXISTS invoices (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		student_id UUID NOT NULL REFERENCES students(id),
		fee_structure_id UUID NOT NULL REFERENCES fee_structures(id),
		amount DECIMAL(12,2) NOT NULL,
		amount_paid DECIMAL(12,2) NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'unpaid',
		due_date DATE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (student_id, fee_structure_id)
	)`,

	`CREATE TABLE IF NOT EXISTS payments (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		student_id UUID NOT NULL REFERENCES students(id),
		amount DECIMAL(12,2) NOT NULL,
		method TEXT NOT NULL,
		reference TEXT NOT NULL DEFAULT '',
		received_by UUID NOT NULL REFERENCES users(id),
		received_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS payment_allocations (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		payment_id UUID NOT NULL REFERENCES payments(id),
		invoice_id UUID NOT NULL REFERENCES invoices(id),
		amount DECIMAL(12,2) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS books (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title TEXT NOT NULL,
		author TEXT NOT NULL DEFAULT '',
		isbn TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		copies_total INT NOT NULL DEFAULT 1,
		copies_available INT NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMPTZ
	)`,

	`CREATE TABLE IF NOT EXISTS book_loans (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		book_id UUID NOT NULL REFERENCES books(id),
		student_id UUID NOT NULL REFERENCES students(id),
		borrowed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		due_date DATE NOT NULL,
		returned_at TIMESTAMPTZ,
		status TEXT NOT NULL DEFAULT 'active',
		issued_by UUID NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS library_fines (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		loan_id UUID UNIQUE NOT NULL REFERENCES book_loans(id),
		student_id UUID NOT NULL REFERENCES students(id),
		amount DECIMAL(12,2) NOT NULL DEFAULT 0,
		days_late INT NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'outstanding',
		settled_by UUID REFERENCES users(id),
		settled_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS attendance_records (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		student_id UUID NOT NULL REFERENCES students(id),
		class_id UUID NOT NULL REFERENCES classes(id),
		date DATE NOT NULL,
		status TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		marked_by UUID NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (student_id, date)
	)`,

	`CREATE TABLE IF NOT EXISTS timetable_entries (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		class_id UUID NOT NULL REFERENCES classes(id),
		subject_id UUID NOT NULL REFERENCES subjects(id),
		teacher_id UUID REFERENCES users(id),
		day TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		room TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMPTZ
	)`,

	`CREATE TABLE IF NOT EXISTS teacher_subjects (
		teacher_id UUID NOT NULL REFERENCES users(id),
		subject_id UUID NOT NULL REFERENCES subjects(id),
		PRIMARY KEY (teacher_id, subject_id)
	)`,
}
