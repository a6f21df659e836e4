package library

import (
	"database/sql"
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"school20/app/config"
	"school20/app/models"
)

var validate = validator.New()

func GetBooks(c *fiber.Ctx, db *sql.DB) error {
	search := c.Query("search")
	query := `
		SELECT id, title, author, isbn, category, copies_total, copies_available,
			   created_at, updated_at
		FROM books
		WHERE deleted_at IS NULL
		  AND ($1 = '' OR title ILIKE '%' || $1 || '%' OR author ILIKE '%' || $1 || '%' OR isbn = $1)
		ORDER BY title
	`
	rows, err := db.Query(query, search)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch books"})
	}
	defer rows.Close()

	var books []*models.Book
	for rows.Next() {
		var b models.Book
		err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.Category,
			&b.CopiesTotal, &b.CopiesAvailable, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to scan book"})
		}
		books = append(books, &b)
	}

	return c.JSON(books)
}

type bookRequest struct {
	Title       string `json:"title" validate:"required"`
	Author      string `json:"author"`
	ISBN        string `json:"isbn"`
	Category    string `json:"category"`
	CopiesTotal int    `json:"copies_total" validate:"gte=1"`
}

func CreateBook(c *fiber.Ctx, db *sql.DB) error {
	var req bookRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var id string
	query := `INSERT INTO books (title, author, isbn, category, copies_total, copies_available)
			  VALUES ($1, $2, $3, $4, $5, $5) RETURNING id`
	err := db.QueryRow(query, req.Title, req.Author, req.ISBN, req.Category, req.CopiesTotal).Scan(&id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create book"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "id": id})
}

func UpdateBook(c *fiber.Ctx, db *sql.DB) error {
	var req bookRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// Adding copies raises the available count by the same amount;
	// copies on loan stay out.
	query := `UPDATE books
			  SET title = $1, author = $2, isbn = $3, category = $4,
				  copies_available = GREATEST(copies_available + ($5 - copies_total), 0),
				  copies_total = $5,
				  updated_at = NOW()
			  WHERE id = $6 AND deleted_at IS NULL`
	res, err := db.Exec(query, req.Title, req.Author, req.ISBN, req.Category, req.CopiesTotal, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update book"})
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Book not found"})
	}

	return c.JSON(fiber.Map{"success": true})
}

type borrowRequest struct {
	BookID    string `json:"book_id" validate:"required,uuid"`
	StudentID string `json:"student_id" validate:"required,uuid"`
}

func BorrowBookAPI(c *fiber.Ctx, db *sql.DB) error {
	var req borrowRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	user := c.Locals("user").(*models.User)
	loanDays := config.AppConfig.Library.LoanPeriodDays

	loan, err := BorrowBook(db, req.BookID, req.StudentID, user.ID, loanDays)
	if errors.Is(err, ErrBookNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Book not found"})
	}
	if errors.Is(err, ErrNoCopies) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "No copies available"})
	}
	if err != nil {
		log.Printf("Borrow failed for book %s: %v", req.BookID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to borrow book"})
	}

	return c.Status(fiber.StatusCreated).JSON(loan)
}

func ReturnBookAPI(c *fiber.Ctx, db *sql.DB) error {
	err := ReturnBook(db, c.Params("id"))
	if errors.Is(err, ErrLoanNotOpen) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Loan is not open"})
	}
	if err != nil {
		log.Printf("Return failed for loan %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to return book"})
	}

	return c.JSON(fiber.Map{"success": true})
}

func GetLoans(c *fiber.Ctx, db *sql.DB) error {
	query := `
		SELECT l.id, l.book_id, l.student_id, l.borrowed_at, l.due_date,
			   l.returned_at, l.status, l.issued_by, l.created_at, l.updated_at,
			   b.title, s.admission_no, s.first_name, s.last_name
		FROM book_loans l
		JOIN books b ON b.id = l.book_id
		JOIN students s ON s.id = l.student_id
		WHERE ($1 = '' OR l.status = $1)
		  AND ($2 = '' OR l.student_id::text = $2)
		ORDER BY l.borrowed_at DESC
		LIMIT 200
	`
	rows, err := db.Query(query, c.Query("status"), c.Query("student_id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch loans"})
	}
	defer rows.Close()

	type loanRow struct {
		models.BookLoan
		BookTitle   string `json:"book_title"`
		AdmissionNo string `json:"admission_no"`
		StudentName string `json:"student_name"`
	}

	var loans []*loanRow
	for rows.Next() {
		var l loanRow
		var first, last string
		err := rows.Scan(&l.ID, &l.BookID, &l.StudentID, &l.BorrowedAt, &l.DueDate,
			&l.ReturnedAt, &l.Status, &l.IssuedBy, &l.CreatedAt, &l.UpdatedAt,
			&l.BookTitle, &l.AdmissionNo, &first, &last)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to scan loan"})
		}
		l.StudentName = first + " " + last
		loans = append(loans, &l)
	}

	return c.JSON(loans)
}

func GetFines(c *fiber.Ctx, db *sql.DB) error {
	query := `
		SELECT f.id, f.loan_id, f.student_id, f.amount, f.days_late, f.status,
			   f.settled_by, f.settled_at, f.created_at, f.updated_at,
			   b.title, s.admission_no, s.first_name, s.last_name
		FROM library_fines f
		JOIN book_loans l ON l.id = f.loan_id
		JOIN books b ON b.id = l.book_id
		JOIN students s ON s.id = f.student_id
		WHERE ($1 = '' OR f.status = $1)
		ORDER BY f.created_at DESC
		LIMIT 200
	`
	rows, err := db.Query(query, c.Query("status"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch fines"})
	}
	defer rows.Close()

	type fineRow struct {
		models.LibraryFine
		BookTitle   string `json:"book_title"`
		AdmissionNo string `json:"admission_no"`
		StudentName string `json:"student_name"`
	}

	var fines []*fineRow
	for rows.Next() {
		var f fineRow
		var first, last string
		err := rows.Scan(&f.ID, &f.LoanID, &f.StudentID, &f.Amount, &f.DaysLate, &f.Status,
			&f.SettledBy, &f.SettledAt, &f.CreatedAt, &f.UpdatedAt,
			&f.BookTitle, &f.AdmissionNo, &first, &last)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to scan fine"})
		}
		f.StudentName = first + " " + last
		fines = append(fines, &f)
	}

	return c.JSON(fines)
}

func settleFine(c *fiber.Ctx, db *sql.DB, status models.FineStatus) error {
	user := c.Locals("user").(*models.User)

	err := SettleFine(db, c.Params("id"), user.ID, status)
	if errors.Is(err, ErrFineSettled) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Fine is already settled"})
	}
	if err != nil {
		log.Printf("Fine settlement failed for %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to settle fine"})
	}

	return c.JSON(fiber.Map{"success": true})
}

func PayFine(c *fiber.Ctx, db *sql.DB) error {
	return settleFine(c, db, models.FinePaid)
}

func WaiveFine(c *fiber.Ctx, db *sql.DB) error {
	return settleFine(c, db, models.FineWaived)
}
