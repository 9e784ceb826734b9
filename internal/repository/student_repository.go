package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/campuslabs/orgfee-api/internal/models"
	"github.com/campuslabs/orgfee-api/pkg/config"
)

// Name and program columns are nullable in the store; COALESCE keeps rows
// seeded outside the API scannable into plain strings.
const studentColumns = `student_number, COALESCE(first_name, '') AS first_name,
        COALESCE(middle_initial, '') AS middle_initial, COALESCE(last_name, '') AS last_name,
        gender, COALESCE(degree_program, '') AS degree_program`

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db    *sqlx.DB
	table string
}

// NewStudentRepository constructs a StudentRepository bound to its configured table.
func NewStudentRepository(db *sqlx.DB, tables config.TablesConfig) *StudentRepository {
	return &StudentRepository{db: db, table: tables.Students}
}

// List returns students matching the provided filters.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	conditions := []string{"1=1"}
	var args []interface{}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(first_name) LIKE $%d OR LOWER(last_name) LIKE $%d OR LOWER(student_number) LIKE $%d)",
			len(args)+1, len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	if filter.DegreeProgram != "" {
		conditions = append(conditions, fmt.Sprintf("degree_program = $%d", len(args)+1))
		args = append(args, filter.DegreeProgram)
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY student_number`,
		studentColumns, r.table, strings.Join(conditions, " AND "))

	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// FindByKey fetches a student by student number.
func (r *StudentRepository) FindByKey(ctx context.Context, studentNumber string) (*models.Student, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE student_number = $1", studentColumns, r.table)
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, studentNumber); err != nil {
		return nil, err
	}
	return &student, nil
}

// Exists checks whether a student with the given student number exists.
func (r *StudentRepository) Exists(ctx context.Context, studentNumber string) (bool, error) {
	query := fmt.Sprintf("SELECT 1 FROM %s WHERE student_number = $1 LIMIT 1", r.table)
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, studentNumber); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check student: %w", err)
	}
	return true, nil
}

// Create inserts a new student record.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := fmt.Sprintf(`INSERT INTO %s (student_number, first_name, middle_initial, last_name, gender, degree_program)
        VALUES (:student_number, :first_name, :middle_initial, :last_name, :gender, :degree_program)`, r.table)
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Update modifies every mutable field of an existing student.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := fmt.Sprintf(`UPDATE %s SET first_name = :first_name, middle_initial = :middle_initial,
        last_name = :last_name, gender = :gender, degree_program = :degree_program
        WHERE student_number = :student_number`, r.table)
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return nil
}

// Delete removes a student by student number.
func (r *StudentRepository) Delete(ctx context.Context, studentNumber string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE student_number = $1", r.table)
	if _, err := r.db.ExecContext(ctx, query, studentNumber); err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	return nil
}
