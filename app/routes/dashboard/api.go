package dashboard

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"school20/app/models"
)

// GetStats collects the headline numbers for the landing page. Each count
// is a separate query; a failure in one aborts the whole response.
func GetStats(db *sql.DB) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM students WHERE deleted_at IS NULL AND is_active = true`, &stats.TotalStudents},
		{`SELECT COUNT(DISTINCT ur.user_id) FROM user_roles ur
		  JOIN roles r ON r.id = ur.role_id WHERE r.name = 'teacher'`, &stats.TotalTeachers},
		{`SELECT COUNT(*) FROM classes WHERE deleted_at IS NULL AND is_active = true`, &stats.TotalClasses},
		{`SELECT COUNT(*) FROM admission_applications WHERE status IN ('applied', 'review')`, &stats.PendingAdmissions},
		{`SELECT COUNT(*) FROM marks_submissions WHERE status = 'pending'`, &stats.PendingApprovals},
		{`SELECT COUNT(*) FROM book_loans WHERE status IN ('active', 'overdue')`, &stats.ActiveLoans},
	}
	for _, c := range counts {
		if err := db.QueryRow(c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("failed to count: %w", err)
		}
	}

	err := db.QueryRow(`SELECT COALESCE(SUM(amount), 0) FROM library_fines WHERE status = 'outstanding'`).
		Scan(&stats.OutstandingFines)
	if err != nil {
		return nil, fmt.Errorf("failed to sum fines: %w", err)
	}

	err = db.QueryRow(`SELECT COALESCE(SUM(amount_paid) / NULLIF(SUM(amount), 0) * 100, 0)
					   FROM invoices WHERE status != 'void'`).Scan(&stats.FeeCollectionRate)
	if err != nil {
		return nil, fmt.Errorf("failed to compute collection rate: %w", err)
	}

	err = db.QueryRow(`SELECT COALESCE(
						   COUNT(*) FILTER (WHERE status IN ('present', 'late'))::float
						   / NULLIF(COUNT(*), 0) * 100, 0)
					   FROM attendance_records
					   WHERE date >= CURRENT_DATE - 30`).Scan(&stats.StudentAttendance)
	if err != nil {
		return nil, fmt.Errorf("failed to compute attendance rate: %w", err)
	}

	activities, err := recentActivities(db)
	if err != nil {
		return nil, err
	}
	stats.RecentActivities = activities

	return stats, nil
}

func recentActivities(db *sql.DB) ([]models.Activity, error) {
	query := `
		SELECT 'admission', 'New application', a.first_name || ' ' || a.last_name, a.created_at
		FROM admission_applications a
		UNION ALL
		SELECT 'marks', 'Marks submitted', sub.name, ms.submitted_at
		FROM marks_submissions ms
		JOIN subjects sub ON sub.id = ms.subject_id
		WHERE ms.submitted_at IS NOT NULL
		UNION ALL
		SELECT 'payment', 'Payment received', s.first_name || ' ' || s.last_name, p.created_at
		FROM payments p
		JOIN students s ON s.id = p.student_id
		ORDER BY 4 DESC
		LIMIT 10
	`
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activities: %w", err)
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.Type, &a.Title, &a.Description, &a.RawTime); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		a.TimeAgo = timeAgo(a.RawTime)
		activities = append(activities, a)
	}
	return activities, nil
}

func timeAgo(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%d days ago", int(d.Hours()/24))
	}
}

func GetStatsAPI(c *fiber.Ctx, db *sql.DB) error {
	stats, err := GetStats(db)
	if err != nil {
		log.Printf("Dashboard stats failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch dashboard statistics"})
	}

	return c.JSON(fiber.Map{"success": true, "data": stats})
}
