package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campuslabs/orgfee-api/internal/models"
	"github.com/campuslabs/orgfee-api/pkg/config"
	appErrors "github.com/campuslabs/orgfee-api/pkg/errors"
	"github.com/campuslabs/orgfee-api/pkg/export"
	"github.com/campuslabs/orgfee-api/pkg/jobs"
	"github.com/campuslabs/orgfee-api/pkg/storage"
)

type reportRepository interface {
	CreateJob(ctx context.Context, job *models.ReportJob) error
	FindJob(ctx context.Context, id string) (*models.ReportJob, error)
	MarkJobProcessing(ctx context.Context, id string) error
	MarkJobFinished(ctx context.Context, id, resultURL string) error
	MarkJobFailed(ctx context.Context, id, message string) error
	MarkJobExpired(ctx context.Context, id string) error
	ListQueued(ctx context.Context, limit int) ([]models.ReportJob, error)
	ListFinishedBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.ReportJob, error)
	MembershipBalances(ctx context.Context, organizationID *string) ([]models.MembershipBalance, error)
	UnpaidFees(ctx context.Context, organizationID *string) ([]models.FeeDetail, error)
	CommitteeRoster(ctx context.Context, organizationID *string) ([]models.MembershipDetail, error)
}

type reportQueue interface {
	Enqueue(job jobs.Job) error
}

type reportStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

// CreateReportRequest holds the payload for queuing a report.
type CreateReportRequest struct {
	Type           models.ReportType   `json:"type" validate:"required,oneof=membership_balances unpaid_fees committee_roster"`
	Format         models.ReportFormat `json:"format" validate:"required,oneof=csv pdf"`
	OrganizationID *string             `json:"organization_id"`
}

// ReportDownload bundles an open file handle with its serving metadata.
type ReportDownload struct {
	File        *os.File
	Filename    string
	ContentType string
}

// ReportService queues, renders and serves asynchronous exports.
type ReportService struct {
	repo      reportRepository
	queue     reportQueue
	store     reportStorage
	signer    *storage.SignedURLSigner
	cfg       config.ReportsConfig
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	validator *validator.Validate
	logger    *zap.Logger
	nowFunc   func() time.Time
}

// NewReportService constructs the report service. The queue is wired
// afterwards via AttachQueue since the queue handler needs the service.
func NewReportService(repo reportRepository, store reportStorage, signer *storage.SignedURLSigner, cfg config.ReportsConfig, validate *validator.Validate, logger *zap.Logger) *ReportService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 72 * time.Hour
	}
	return &ReportService{
		repo:      repo,
		store:     store,
		signer:    signer,
		cfg:       cfg,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		validator: validate,
		logger:    logger,
		nowFunc:   time.Now,
	}
}

// AttachQueue wires the background queue the service enqueues into.
func (s *ReportService) AttachQueue(queue reportQueue) {
	s.queue = queue
}

// Create validates the request, persists a queued job and enqueues it.
func (s *ReportService) Create(ctx context.Context, req CreateReportRequest, createdBy string) (*models.ReportJob, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, payloadError(err)
	}
	if s.queue == nil {
		return nil, appErrors.Wrap(errors.New("report queue not attached"), appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	if createdBy == "" {
		createdBy = "anonymous"
	}

	job := &models.ReportJob{
		ID:     uuid.NewString(),
		Type:   req.Type,
		Status: models.ReportStatusQueued,
		Params: models.ReportJobParams{
			OrganizationID: req.OrganizationID,
			Format:         req.Format,
		},
		CreatedBy: createdBy,
		CreatedAt: s.nowFunc().UTC(),
	}
	if err := s.repo.CreateJob(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: string(job.Type), Payload: job.ID}); err != nil {
		s.logger.Error("failed to enqueue report job", zap.String("job_id", job.ID), zap.Error(err))
		_ = s.repo.MarkJobFailed(ctx, job.ID, "could not enqueue job")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return job, nil
}

// Status returns a job's current state including the signed download URL
// once the job has finished.
func (s *ReportService) Status(ctx context.Context, jobID string) (*models.ReportJob, error) {
	job, err := s.repo.FindJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("report job %s does not exist", jobID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return job, nil
}

// Download parses a signed token and opens the referenced export file.
func (s *ReportService) Download(ctx context.Context, token string) (*ReportDownload, error) {
	jobID, relPath, _, err := s.signer.Parse(token)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid or expired download token")
	}
	job, err := s.repo.FindJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("report job %s does not exist", jobID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	if job.Status != models.ReportStatusFinished {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("report job %s has not finished", jobID))
	}
	file, err := s.store.Open(relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	contentType := "text/csv"
	if job.Params.Format == models.ReportFormatPDF {
		contentType = "application/pdf"
	}
	return &ReportDownload{
		File:        file,
		Filename:    fmt.Sprintf("%s_%s.%s", job.Type, jobID[:8], job.Params.Format),
		ContentType: contentType,
	}, nil
}

// Process is the queue handler. It renders the requested dataset, stores
// the file and marks the job finished with a signed download token.
func (s *ReportService) Process(ctx context.Context, job jobs.Job) error {
	jobID, ok := job.Payload.(string)
	if !ok || jobID == "" {
		s.logger.Error("report job payload missing job id", zap.String("queue_job", job.ID))
		return nil
	}

	record, err := s.repo.FindJob(ctx, jobID)
	if err != nil {
		return fmt.Errorf("load report job %s: %w", jobID, err)
	}
	if err := s.repo.MarkJobProcessing(ctx, jobID); err != nil {
		return fmt.Errorf("mark report job processing: %w", err)
	}

	data, err := s.buildDataset(ctx, record)
	if err != nil {
		_ = s.repo.MarkJobFailed(ctx, jobID, err.Error())
		return err
	}

	var rendered []byte
	switch record.Params.Format {
	case models.ReportFormatPDF:
		rendered, err = s.pdf.Render(data, strings.ReplaceAll(string(record.Type), "_", " "))
	default:
		rendered, err = s.csv.Render(data)
	}
	if err != nil {
		_ = s.repo.MarkJobFailed(ctx, jobID, err.Error())
		return err
	}

	relPath := exportPath(record)
	if _, err := s.store.Save(relPath, rendered); err != nil {
		_ = s.repo.MarkJobFailed(ctx, jobID, err.Error())
		return err
	}

	token, _, err := s.signer.Generate(jobID, relPath)
	if err != nil {
		_ = s.repo.MarkJobFailed(ctx, jobID, err.Error())
		return err
	}
	if err := s.repo.MarkJobFinished(ctx, jobID, token); err != nil {
		return fmt.Errorf("mark report job finished: %w", err)
	}
	s.logger.Info("report job finished",
		zap.String("job_id", jobID),
		zap.String("type", string(record.Type)),
		zap.Int("rows", len(data.Rows)))
	return nil
}

// RecoverPendingJobs re-enqueues jobs left in the queued state, for example
// after a process restart.
func (s *ReportService) RecoverPendingJobs(ctx context.Context) {
	if s.queue == nil {
		return
	}
	pending, err := s.repo.ListQueued(ctx, 50)
	if err != nil {
		s.logger.Warn("failed to recover queued report jobs", zap.Error(err))
		return
	}
	for _, job := range pending {
		if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: string(job.Type), Payload: job.ID}); err != nil {
			s.logger.Warn("failed to requeue pending report job", zap.String("job_id", job.ID), zap.Error(err))
		}
	}
	if len(pending) > 0 {
		s.logger.Info("recovered queued report jobs", zap.Int("count", len(pending)))
	}
}

// StartCleanup boots a goroutine that purges expired exports periodically.
func (s *ReportService) StartCleanup(ctx context.Context) {
	if s.cfg.CleanupInterval <= 0 {
		return
	}
	ticker := time.NewTicker(s.cfg.CleanupInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.cleanupExpired(ctx)
			}
		}
	}()
}

func (s *ReportService) cleanupExpired(ctx context.Context) {
	cutoff := s.nowFunc().Add(-s.cfg.ResultTTL)
	for {
		stale, err := s.repo.ListFinishedBefore(ctx, cutoff, 100)
		if err != nil {
			s.logger.Warn("report cleanup list failed", zap.Error(err))
			return
		}
		if len(stale) == 0 {
			break
		}
		retired := 0
		for i := range stale {
			job := &stale[i]
			if err := s.store.Delete(exportPath(job)); err != nil {
				s.logger.Warn("report cleanup delete failed", zap.String("job_id", job.ID), zap.Error(err))
				continue
			}
			if err := s.repo.MarkJobExpired(ctx, job.ID); err != nil {
				s.logger.Warn("report cleanup mark failed", zap.String("job_id", job.ID), zap.Error(err))
				continue
			}
			retired++
		}
		if retired == 0 || len(stale) < 100 {
			break
		}
	}
	if _, err := s.store.CleanupOlderThan(s.cfg.ResultTTL); err != nil {
		s.logger.Warn("export directory sweep failed", zap.Error(err))
	}
}

func exportPath(job *models.ReportJob) string {
	return fmt.Sprintf("%s/%s.%s", job.Type, job.ID, job.Params.Format)
}

func (s *ReportService) buildDataset(ctx context.Context, job *models.ReportJob) (export.Dataset, error) {
	orgID := job.Params.OrganizationID
	switch job.Type {
	case models.ReportTypeMembershipBalances:
		rows, err := s.repo.MembershipBalances(ctx, orgID)
		if err != nil {
			return export.Dataset{}, fmt.Errorf("load membership balances: %w", err)
		}
		return balancesDataset(rows), nil
	case models.ReportTypeUnpaidFees:
		rows, err := s.repo.UnpaidFees(ctx, orgID)
		if err != nil {
			return export.Dataset{}, fmt.Errorf("load unpaid fees: %w", err)
		}
		return unpaidFeesDataset(rows), nil
	case models.ReportTypeCommitteeRoster:
		rows, err := s.repo.CommitteeRoster(ctx, orgID)
		if err != nil {
			return export.Dataset{}, fmt.Errorf("load committee roster: %w", err)
		}
		return rosterDataset(rows), nil
	default:
		return export.Dataset{}, fmt.Errorf("unsupported report type %q", job.Type)
	}
}

func balancesDataset(rows []models.MembershipBalance) export.Dataset {
	data := export.Dataset{
		Headers: []string{"Student Number", "Student Name", "Organization", "Status", "Role", "Balance"},
		Rows:    make([]map[string]string, 0, len(rows)),
	}
	for _, row := range rows {
		data.Rows = append(data.Rows, map[string]string{
			"Student Number": row.StudentNumber,
			"Student Name":   deref(row.StudentName),
			"Organization":   deref(row.OrganizationName),
			"Status":         string(row.Status),
			"Role":           row.Role,
			"Balance":        strconv.FormatFloat(row.Balance, 'f', 2, 64),
		})
	}
	return data
}

func unpaidFeesDataset(rows []models.FeeDetail) export.Dataset {
	data := export.Dataset{
		Headers: []string{"Fee ID", "Label", "Student Number", "Student Name", "Organization", "Status", "Amount", "Due Date"},
		Rows:    make([]map[string]string, 0, len(rows)),
	}
	for _, row := range rows {
		data.Rows = append(data.Rows, map[string]string{
			"Fee ID":         row.FeeID,
			"Label":          row.Label,
			"Student Number": row.StudentNumber,
			"Student Name":   deref(row.StudentName),
			"Organization":   deref(row.OrganizationName),
			"Status":         string(row.Status),
			"Amount":         strconv.FormatFloat(row.Amount, 'f', 2, 64),
			"Due Date":       formatDate(row.DueDate),
		})
	}
	return data
}

func rosterDataset(rows []models.MembershipDetail) export.Dataset {
	data := export.Dataset{
		Headers: []string{"Student Number", "Student Name", "Organization", "Committee", "Role", "Status"},
		Rows:    make([]map[string]string, 0, len(rows)),
	}
	for _, row := range rows {
		data.Rows = append(data.Rows, map[string]string{
			"Student Number": row.StudentNumber,
			"Student Name":   deref(row.StudentName),
			"Organization":   deref(row.OrganizationName),
			"Committee":      deref(row.CommitteeName),
			"Role":           row.Role,
			"Status":         string(row.Status),
		})
	}
	return data
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
