package fees

import (
	"database/sql"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"school20/app/models"
)

var validate = validator.New()

func GetFeeStructures(c *fiber.Ctx, db *sql.DB) error {
	query := `
		SELECT fs.id, fs.name, fs.class_id, fs.term_id, fs.academic_year_id,
			   fs.amount, fs.is_mandatory, fs.is_active, fs.created_at, fs.updated_at,
			   c.name, c.level, t.name
		FROM fee_structures fs
		JOIN classes c ON c.id = fs.class_id
		JOIN terms t ON t.id = fs.term_id
		WHERE fs.deleted_at IS NULL
		ORDER BY fs.created_at DESC
	`
	rows, err := db.Query(query)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch fee structures"})
	}
	defer rows.Close()

	var structures []*models.FeeStructure
	for rows.Next() {
		var fs models.FeeStructure
		fs.Class = &models.Class{}
		fs.Term = &models.Term{}
		err := rows.Scan(&fs.ID, &fs.Name, &fs.ClassID, &fs.TermID, &fs.AcademicYearID,
			&fs.Amount, &fs.IsMandatory, &fs.IsActive, &fs.CreatedAt, &fs.UpdatedAt,
			&fs.Class.Name, &fs.Class.Level, &fs.Term.Name)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to scan fee structure"})
		}
		structures = append(structures, &fs)
	}

	return c.JSON(structures)
}

type feeStructureRequest struct {
	Name           string  `json:"name" validate:"required"`
	ClassID        string  `json:"class_id" validate:"required,uuid"`
	TermID         string  `json:"term_id" validate:"required,uuid"`
	AcademicYearID string  `json:"academic_year_id" validate:"required,uuid"`
	Amount         float64 `json:"amount" validate:"gt=0"`
	IsMandatory    *bool   `json:"is_mandatory"`
}

func CreateFeeStructure(c *fiber.Ctx, db *sql.DB) error {
	var req feeStructureRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	mandatory := true
	if req.IsMandatory != nil {
		mandatory = *req.IsMandatory
	}

	var id string
	query := `INSERT INTO fee_structures (name, class_id, term_id, academic_year_id, amount, is_mandatory)
			  VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := db.QueryRow(query, req.Name, req.ClassID, req.TermID, req.AcademicYearID, req.Amount, mandatory).Scan(&id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create fee structure"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "id": id})
}

func UpdateFeeStructure(c *fiber.Ctx, db *sql.DB) error {
	var req feeStructureRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	res, err := db.Exec(`UPDATE fee_structures
						 SET name = $1, amount = $2, is_mandatory = COALESCE($3, is_mandatory), updated_at = NOW()
						 WHERE id = $4 AND deleted_at IS NULL`,
		req.Name, req.Amount, req.IsMandatory, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update fee structure"})
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Fee structure not found"})
	}

	return c.JSON(fiber.Map{"success": true})
}

// GenerateInvoicesAPI bills every enrolled student in the structure's class.
// Running it again only picks up students enrolled since the last run.
func GenerateInvoicesAPI(c *fiber.Ctx, db *sql.DB) error {
	created, err := GenerateInvoices(db, c.Params("id"))
	if err != nil {
		log.Printf("Invoice generation failed for structure %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate invoices"})
	}

	return c.JSON(fiber.Map{"success": true, "invoices_created": created})
}

func GetInvoices(c *fiber.Ctx, db *sql.DB) error {
	query := `
		SELECT i.id, i.student_id, i.fee_structure_id, i.amount, i.amount_paid,
			   i.status, i.due_date, i.created_at, i.updated_at,
			   s.admission_no, s.first_name, s.last_name, fs.name
		FROM invoices i
		JOIN students s ON s.id = i.student_id
		JOIN fee_structures fs ON fs.id = i.fee_structure_id
		WHERE ($1 = '' OR i.student_id::text = $1)
		  AND ($2 = '' OR i.status = $2)
		ORDER BY i.created_at DESC
		LIMIT 200
	`
	rows, err := db.Query(query, c.Query("student_id"), c.Query("status"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch invoices"})
	}
	defer rows.Close()

	type invoiceRow struct {
		models.Invoice
		AdmissionNo string `json:"admission_no"`
		StudentName string `json:"student_name"`
		FeeName     string `json:"fee_name"`
	}

	var invoices []*invoiceRow
	for rows.Next() {
		var inv invoiceRow
		var first, last string
		err := rows.Scan(&inv.ID, &inv.StudentID, &inv.FeeStructureID, &inv.Amount, &inv.AmountPaid,
			&inv.Status, &inv.DueDate, &inv.CreatedAt, &inv.UpdatedAt,
			&inv.AdmissionNo, &first, &last, &inv.FeeName)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to scan invoice"})
		}
		inv.StudentName = first + " " + last
		invoices = append(invoices, &inv)
	}

	return c.JSON(invoices)
}

type paymentRequest struct {
	StudentID string  `json:"student_id" validate:"required,uuid"`
	Amount    float64 `json:"amount" validate:"gt=0"`
	Method    string  `json:"method" validate:"required,oneof=cash bank mobile_money"`
	Reference string  `json:"reference"`
}

func RecordPaymentAPI(c *fiber.Ctx, db *sql.DB) error {
	var req paymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	user := c.Locals("user").(*models.User)

	payment := &models.Payment{
		StudentID:  req.StudentID,
		Amount:     req.Amount,
		Method:     req.Method,
		Reference:  req.Reference,
		ReceivedBy: user.ID,
	}
	id, credit, err := RecordPayment(db, payment)
	if err != nil {
		log.Printf("Payment recording failed for student %s: %v", req.StudentID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record payment"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":     true,
		"id":          id,
		"unallocated": credit,
	})
}

func GetStudentBalanceAPI(c *fiber.Ctx, db *sql.DB) error {
	balance, err := GetStudentBalance(db, c.Params("studentId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute balance"})
	}
	return c.JSON(balance)
}
