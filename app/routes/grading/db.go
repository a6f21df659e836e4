package grading

import (
	"database/sql"
	"fmt"
	"time"

	"school20/app/models"
)

// EligibleStudent pairs a student with their existing submission for the
// selected subject and term, if any.
type EligibleStudent struct {
	Student    *models.Student          `json:"student"`
	Submission *models.MarksSubmission  `json:"submission,omitempty"`
}

// GetGradingBands fetches the active grading scale. Loaded once per
// screen; the scale is configuration and is never mutated here.
func GetGradingBands(db *sql.DB) ([]*models.GradingBand, error) {
	query := `
		SELECT id, min_marks, max_marks, grade, grade_points, default_remark,
			   is_active, created_at, updated_at
		FROM grading_bands
		WHERE deleted_at IS NULL AND is_active = true
		ORDER BY min_marks DESC
	`
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch grading bands: %w", err)
	}
	defer rows.Close()

	var bands []*models.GradingBand
	for rows.Next() {
		var b models.GradingBand
		err := rows.Scan(&b.ID, &b.MinMarks, &b.MaxMarks, &b.Grade, &b.GradePoints,
			&b.DefaultRemark, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan grading band: %w", err)
		}
		bands = append(bands, &b)
	}
	return bands, rows.Err()
}

// GetEligibleStudents returns the students enrolled in BOTH the class and
// the subject for the academic year (set intersection), ordered by
// admission number, each with any existing submission for the term.
// An empty result is a valid state, not an error.
func GetEligibleStudents(db *sql.DB, classID, subjectID, termID, yearID string) ([]*EligibleStudent, error) {
	query := `
		SELECT s.id, s.admission_no, s.first_name, s.last_name, s.gender,
			   m.id, m.a1, m.a2, m.a3, m.exam_score,
			   m.avg_assessment, m.ca_20, m.exam_80, m.total,
			   m.grade, m.grade_points, m.identifier, m.remark,
			   m.status, m.rejection_reason, m.submitted_by, m.submitted_at,
			   m.approved_by, m.approved_at
		FROM students s
		JOIN class_enrollments ce
			ON ce.student_id = s.id
			AND ce.class_id = $1
			AND ce.academic_year_id = $4
			AND ce.is_active = true
		JOIN subject_enrollments se
			ON se.student_id = s.id
			AND se.subject_id = $2
			AND se.academic_year_id = $4
			AND se.is_active = true
		LEFT JOIN marks_submissions m
			ON m.student_id = s.id
			AND m.subject_id = $2
			AND m.academic_year_id = $4
			AND m.term_id = $3
		WHERE s.is_active = true AND s.deleted_at IS NULL
		ORDER BY s.admission_no
	`
	rows, err := db.Query(query, classID, subjectID, termID, yearID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch eligible students: %w", err)
	}
	defer rows.Close()

	var out []*EligibleStudent
	for rows.Next() {
		var s models.Student
		var subID sql.NullString
		var a1, a2, a3, exam, avg, ca, ex80, total sql.NullFloat64
		var grade, remark, status, rejection, submittedBy, approvedBy sql.NullString
		var gradePoints sql.NullFloat64
		var identifier sql.NullInt64
		var submittedAt, approvedAt sql.NullTime

		err := rows.Scan(
			&s.ID, &s.AdmissionNo, &s.FirstName, &s.LastName, &s.Gender,
			&subID, &a1, &a2, &a3, &exam,
			&avg, &ca, &ex80, &total,
			&grade, &gradePoints, &identifier, &remark,
			&status, &rejection, &submittedBy, &submittedAt,
			&approvedBy, &approvedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan eligible student: %w", err)
		}

		es := &EligibleStudent{Student: &s}
		if subID.Valid {
			m := &models.MarksSubmission{
				ID:             subID.String,
				StudentID:      s.ID,
				SubjectID:      subjectID,
				AcademicYearID: yearID,
				TermID:         termID,
				Grade:          grade.String,
				GradePoints:    gradePoints.Float64,
				Identifier:     int(identifier.Int64),
				Remark:         remark.String,
				Status:         models.SubmissionStatus(status.String),
			}
			m.A1 = nullFloat(a1)
			m.A2 = nullFloat(a2)
			m.A3 = nullFloat(a3)
			m.ExamScore = nullFloat(exam)
			m.AvgAssessment = nullFloat(avg)
			m.CA20 = nullFloat(ca)
			m.Exam80 = nullFloat(ex80)
			m.Total = nullFloat(total)
			m.RejectionReason = nullString(rejection)
			m.SubmittedBy = nullString(submittedBy)
			m.ApprovedBy = nullString(approvedBy)
			m.SubmittedAt = nullTime(submittedAt)
			m.ApprovedAt = nullTime(approvedAt)
			es.Submission = m
		}
		out = append(out, es)
	}
	return out, rows.Err()
}

// GetSubmissionByKey fetches one submission by its composite identity;
// returns nil when none exists yet.
func GetSubmissionByKey(db *sql.DB, studentID, subjectID, yearID, termID string) (*models.MarksSubmission, error) {
	query := `
		SELECT id, student_id, subject_id, academic_year_id, term_id,
			   a1, a2, a3, exam_score, avg_assessment, ca_20, exam_80, total,
			   grade, grade_points, identifier, remark, status, rejection_reason,
			   submitted_by, submitted_at, approved_by, approved_at,
			   created_at, updated_at
		FROM marks_submissions
		WHERE student_id = $1 AND subject_id = $2 AND academic_year_id = $3 AND term_id = $4
	`
	m, err := scanSubmission(db.QueryRow(query, studentID, subjectID, yearID, termID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch submission: %w", err)
	}
	return m, nil
}

// UpsertSubmission writes a submission keyed on the composite identity.
// All derived columns are written as computed by the caller; the database
// keeps the row unique per (student, subject, year, term).
func UpsertSubmission(db *sql.DB, m *models.MarksSubmission) error {
	query := `
		INSERT INTO marks_submissions (
			student_id, subject_id, academic_year_id, term_id,
			a1, a2, a3, exam_score, avg_assessment, ca_20, exam_80, total,
			grade, grade_points, identifier, remark, status, rejection_reason,
			submitted_by, submitted_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
		ON CONFLICT (student_id, subject_id, academic_year_id, term_id) DO UPDATE SET
			a1 = EXCLUDED.a1,
			a2 = EXCLUDED.a2,
			a3 = EXCLUDED.a3,
			exam_score = EXCLUDED.exam_score,
			avg_assessment = EXCLUDED.avg_assessment,
			ca_20 = EXCLUDED.ca_20,
			exam_80 = EXCLUDED.exam_80,
			total = EXCLUDED.total,
			grade = EXCLUDED.grade,
			grade_points = EXCLUDED.grade_points,
			identifier = EXCLUDED.identifier,
			remark = EXCLUDED.remark,
			status = EXCLUDED.status,
			rejection_reason = EXCLUDED.rejection_reason,
			submitted_by = EXCLUDED.submitted_by,
			submitted_at = EXCLUDED.submitted_at,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`
	err := db.QueryRow(query,
		m.StudentID, m.SubjectID, m.AcademicYearID, m.TermID,
		m.A1, m.A2, m.A3, m.ExamScore, m.AvgAssessment, m.CA20, m.Exam80, m.Total,
		m.Grade, m.GradePoints, m.Identifier, m.Remark, m.Status, m.RejectionReason,
		m.SubmittedBy, m.SubmittedAt,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save submission: %w", err)
	}
	return nil
}

// ListSubmissionGroups aggregates submission rows by (subject, teacher,
// status) for the head-teacher review screen. The free-text search ORs a
// case-insensitive substring match over subject name, class level and
// teacher name.
func ListSubmissionGroups(db *sql.DB, yearID, termID string, status models.SubmissionStatus, search string) ([]*models.SubmissionGroup, error) {
	query := `
		SELECT m.subject_id, sub.name, m.submitted_by,
			   u.first_name || ' ' || u.last_name AS teacher_name,
			   COALESCE(MAX(c.level), '') AS class_level,
			   m.status,
			   COUNT(*) AS student_count,
			   AVG(m.total) AS average_score,
			   MIN(m.submitted_at) AS submitted_at
		FROM marks_submissions m
		JOIN subjects sub ON m.subject_id = sub.id
		JOIN users u ON m.submitted_by = u.id
		JOIN students st ON m.student_id = st.id
		LEFT JOIN classes c ON st.class_id = c.id
		WHERE m.academic_year_id = $1 AND m.term_id = $2 AND m.status = $3
		  AND ($4 = '' OR sub.name ILIKE '%' || $4 || '%'
			   OR c.level ILIKE '%' || $4 || '%'
			   OR c.name ILIKE '%' || $4 || '%'
			   OR u.first_name || ' ' || u.last_name ILIKE '%' || $4 || '%')
		GROUP BY m.subject_id, sub.name, m.submitted_by, u.first_name, u.last_name, m.status
		ORDER BY MIN(m.submitted_at) NULLS LAST
	`
	rows, err := db.Query(query, yearID, termID, status, search)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch submission groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.SubmissionGroup
	for rows.Next() {
		var g models.SubmissionGroup
		var avg sql.NullFloat64
		var submittedAt sql.NullTime

		err := rows.Scan(&g.SubjectID, &g.SubjectName, &g.SubmittedBy, &g.TeacherName,
			&g.ClassLevel, &g.Status, &g.StudentCount, &avg, &submittedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission group: %w", err)
		}
		g.AverageScore = nullFloat(avg)
		g.SubmittedAt = nullTime(submittedAt)
		groups = append(groups, &g)
	}
	return groups, rows.Err()
}

// ApproveGroup transitions every pending row for (subject, teacher) in
// the term to approved, stamping the approver. A single filtered UPDATE:
// rows in any other status are untouched. The WHERE clause is the SQL
// form of InActionGroup.
func ApproveGroup(db *sql.DB, yearID, termID, subjectID, submittedBy, approverID string) (int64, error) {
	query := `
		UPDATE marks_submissions
		SET status = 'approved', approved_by = $5, approved_at = NOW(),
			rejection_reason = NULL, updated_at = NOW()
		WHERE academic_year_id = $1 AND term_id = $2
		  AND subject_id = $3 AND submitted_by = $4
		  AND status = 'pending'
	`
	res, err := db.Exec(query, yearID, termID, subjectID, submittedBy, approverID)
	if err != nil {
		return 0, fmt.Errorf("failed to approve submissions: %w", err)
	}
	return res.RowsAffected()
}

// RejectGroup transitions every pending row for (subject, teacher) in the
// term to rejected with the given reason. Same matching rule as approve.
func RejectGroup(db *sql.DB, yearID, termID, subjectID, submittedBy, reason string) (int64, error) {
	query := `
		UPDATE marks_submissions
		SET status = 'rejected', rejection_reason = $5,
			approved_by = NULL, approved_at = NULL, updated_at = NOW()
		WHERE academic_year_id = $1 AND term_id = $2
		  AND subject_id = $3 AND submitted_by = $4
		  AND status = 'pending'
	`
	res, err := db.Exec(query, yearID, termID, subjectID, submittedBy, reason)
	if err != nil {
		return 0, fmt.Errorf("failed to reject submissions: %w", err)
	}
	return res.RowsAffected()
}

// GetTermSubmissions returns all submission rows for a class (or the
// whole school when classID is empty) in one term. Feeds readiness.
func GetTermSubmissions(db *sql.DB, yearID, termID, classID string) ([]*models.MarksSubmission, error) {
	query := `
		SELECT m.id, m.student_id, m.subject_id, m.academic_year_id, m.term_id,
			   m.a1, m.a2, m.a3, m.exam_score, m.avg_assessment, m.ca_20, m.exam_80, m.total,
			   m.grade, m.grade_points, m.identifier, m.remark, m.status, m.rejection_reason,
			   m.submitted_by, m.submitted_at, m.approved_by, m.approved_at,
			   m.created_at, m.updated_at
		FROM marks_submissions m
		JOIN students s ON m.student_id = s.id
		WHERE m.academic_year_id = $1 AND m.term_id = $2
		  AND ($3 = '' OR s.class_id::text = $3)
	`
	rows, err := db.Query(query, yearID, termID, classID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch term submissions: %w", err)
	}
	defer rows.Close()

	var subs []*models.MarksSubmission
	for rows.Next() {
		m, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		subs = append(subs, m)
	}
	return subs, rows.Err()
}

// GetClassStudents lists active students of a class ordered by admission
// number, the traversal order every grading screen uses.
func GetClassStudents(db *sql.DB, classID, yearID string) ([]*models.Student, error) {
	query := `
		SELECT s.id, s.admission_no, s.first_name, s.last_name, s.gender
		FROM students s
		JOIN class_enrollments ce
			ON ce.student_id = s.id AND ce.class_id = $1
			AND ce.academic_year_id = $2 AND ce.is_active = true
		WHERE s.is_active = true AND s.deleted_at IS NULL
		ORDER BY s.admission_no
	`
	rows, err := db.Query(query, classID, yearID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch class students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var s models.Student
		if err := rows.Scan(&s.ID, &s.AdmissionNo, &s.FirstName, &s.LastName, &s.Gender); err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, &s)
	}
	return students, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSubmission(row rowScanner) (*models.MarksSubmission, error) {
	var m models.MarksSubmission
	var a1, a2, a3, exam, avg, ca, ex80, total sql.NullFloat64
	var rejection, submittedBy, approvedBy sql.NullString
	var submittedAt, approvedAt sql.NullTime

	err := row.Scan(
		&m.ID, &m.StudentID, &m.SubjectID, &m.AcademicYearID, &m.TermID,
		&a1, &a2, &a3, &exam, &avg, &ca, &ex80, &total,
		&m.Grade, &m.GradePoints, &m.Identifier, &m.Remark, &m.Status, &rejection,
		&submittedBy, &submittedAt, &approvedBy, &approvedAt,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	m.A1 = nullFloat(a1)
	m.A2 = nullFloat(a2)
	m.A3 = nullFloat(a3)
	m.ExamScore = nullFloat(exam)
	m.AvgAssessment = nullFloat(avg)
	m.CA20 = nullFloat(ca)
	m.Exam80 = nullFloat(ex80)
	m.Total = nullFloat(total)
	m.RejectionReason = nullString(rejection)
	m.SubmittedBy = nullString(submittedBy)
	m.ApprovedBy = nullString(approvedBy)
	m.SubmittedAt = nullTime(submittedAt)
	m.ApprovedAt = nullTime(approvedAt)
	return &m, nil
}

func nullFloat(v sql.NullFloat64) *float64 {
	if v.Valid {
		f := v.Float64
		return &f
	}
	return nil
}

func nullString(v sql.NullString) *string {
	if v.Valid {
		s := v.String
		return &s
	}
	return nil
}

func nullTime(v sql.NullTime) *time.Time {
	if v.Valid {
		t := v.Time
		return &t
	}
	return nil
}
