package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campuslabs/orgfee-api/internal/models"
	"github.com/campuslabs/orgfee-api/internal/repository"
	appErrors "github.com/campuslabs/orgfee-api/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
	FindByKey(ctx context.Context, studentNumber string) (*models.Student, error)
	Exists(ctx context.Context, studentNumber string) (bool, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, studentNumber string) error
}

// CreateStudentRequest holds payload for creating students.
type CreateStudentRequest struct {
	StudentNumber string `json:"student_number" validate:"required"`
	FirstName     string `json:"first_name"`
	MiddleInitial string `json:"middle_initial"`
	LastName      string `json:"last_name"`
	Gender        string `json:"gender" validate:"required"`
	DegreeProgram string `json:"degree_program"`
}

// UpdateStudentRequest holds payload for updating students. Only the key is
// required; omitted fields keep their stored values.
type UpdateStudentRequest struct {
	StudentNumber string  `json:"student_number" validate:"required"`
	FirstName     *string `json:"first_name"`
	MiddleInitial *string `json:"middle_initial"`
	LastName      *string `json:"last_name"`
	Gender        *string `json:"gender"`
	DegreeProgram *string `json:"degree_program"`
}

// StudentService handles student use-cases.
type StudentService struct {
	repo      studentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, validator: validate, logger: logger}
}

// List returns students matching the filter.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	students, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return students, nil
}

// Create registers a new student. The Exists pre-check yields the friendly
// conflict message; the table's primary key remains the authoritative guard.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, payloadError(err)
	}
	exists, err := s.repo.Exists(ctx, req.StudentNumber)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("student %s already exists", req.StudentNumber))
	}
	student := &models.Student{
		StudentNumber: req.StudentNumber,
		FirstName:     req.FirstName,
		MiddleInitial: req.MiddleInitial,
		LastName:      req.LastName,
		Gender:        req.Gender,
		DegreeProgram: req.DegreeProgram,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("student %s already exists", req.StudentNumber))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return s.repo.FindByKey(ctx, student.StudentNumber)
}

// Update overlays the submitted fields onto the stored row and responds with
// the committed state.
func (s *StudentService) Update(ctx context.Context, req UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, payloadError(err)
	}
	student, err := s.repo.FindByKey(ctx, req.StudentNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("student %s does not exist", req.StudentNumber))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	if req.FirstName != nil {
		student.FirstName = *req.FirstName
	}
	if req.MiddleInitial != nil {
		student.MiddleInitial = *req.MiddleInitial
	}
	if req.LastName != nil {
		student.LastName = *req.LastName
	}
	if req.Gender != nil {
		student.Gender = *req.Gender
	}
	if req.DegreeProgram != nil {
		student.DegreeProgram = *req.DegreeProgram
	}
	if err := s.repo.Update(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return s.repo.FindByKey(ctx, req.StudentNumber)
}

// Delete removes a student by student number.
func (s *StudentService) Delete(ctx context.Context, studentNumber string) error {
	if studentNumber == "" {
		return appErrors.Clone(appErrors.ErrValidation, "missing required field(s): student_number")
	}
	exists, err := s.repo.Exists(ctx, studentNumber)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	if !exists {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("student %s does not exist", studentNumber))
	}
	if err := s.repo.Delete(ctx, studentNumber); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("student %s is still referenced by memberships or fees", studentNumber))
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return nil
}
