package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"stock-order-service/internal/clients/catalog"
	"stock-order-service/internal/models"
)

// ImportService runs the reconciliation-and-fulfillment pipeline: catalog
// snapshot → match → create missing → merge → stock-order submission. One
// call handles one order document end to end; the service holds no state
// between runs.
type ImportService struct {
	reader        CatalogReader
	writer        CatalogWriter
	runs          RunStore
	outletID      string
	namePrefix    string
	defaultDryRun bool
	log           *logrus.Logger
}

// NewImportService creates a new import service. runs may be nil, disabling
// run history.
func NewImportService(reader CatalogReader, writer CatalogWriter, runs RunStore, outletID, namePrefix string, defaultDryRun bool, log *logrus.Logger) *ImportService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ImportService{
		reader:        reader,
		writer:        writer,
		runs:          runs,
		outletID:      outletID,
		namePrefix:    namePrefix,
		defaultDryRun: defaultDryRun,
		log:           log,
	}
}

// ImportOptions carries per-run settings
type ImportOptions struct {
	// FileName is recorded in run history for traceability
	FileName string
	// DryRun overrides the configured default when non-nil
	DryRun *bool
}

// Run executes the pipeline for one parsed order. The returned summary is a
// set of counts, not a single pass/fail: Completed reports whether the
// stock-order shell was created, and per-line failures ride in Errors. A
// non-nil error is reserved for conditions that stopped the pipeline before
// submission could be attempted.
func (s *ImportService) Run(ctx context.Context, lines []models.OrderLine, opts ImportOptions) (*models.ImportSummary, error) {
	if len(lines) == 0 {
		return nil, &models.ValidationError{MissingColumns: models.RequiredOrderColumns}
	}

	dryRun := s.defaultDryRun
	if opts.DryRun != nil {
		dryRun = *opts.DryRun
	}
	writer := s.writer
	if dryRun {
		writer = NewDryRunWriter(s.log)
	}

	brandName := models.FirstBrandName(lines)
	summary := &models.ImportSummary{
		RunID:      uuid.New(),
		DryRun:     dryRun,
		BrandName:  brandName,
		TotalLines: len(lines),
	}

	run := &models.ImportRun{
		ID:         summary.RunID,
		FileName:   opts.FileName,
		BrandName:  brandName,
		OutletID:   s.outletID,
		DryRun:     dryRun,
		Status:     models.RunStatusRunning,
		TotalLines: len(lines),
		StartedAt:  time.Now().UTC(),
	}
	s.persistCreate(ctx, run)

	// Resolver, and with it the name→id cache, lives for exactly one run
	resolver := NewEntityResolver(s.reader, writer, s.log)
	creator := NewCreationService(writer, resolver, s.outletID, s.log)
	reconciler := NewReconciler(s.log)
	submitter := NewStockOrderService(writer, s.namePrefix, s.log)

	s.log.WithField("brand", brandName).Info("Fetching catalog snapshot")
	products, err := s.reader.FetchAllProducts(ctx)
	if err != nil {
		if !errors.Is(err, catalog.ErrPartialFetch) {
			s.failRun(ctx, run, summary, err)
			return summary, err
		}
		// Matching against a truncated snapshot over-creates rather than
		// corrupts; proceed on what was accumulated, as the source did.
		s.log.WithError(err).Warn("Catalog snapshot is partial, proceeding with accumulated products")
	}

	matched, unmatched := Match(products, lines)
	summary.MatchedLines = len(matched)
	summary.MissingLines = len(unmatched)
	s.log.WithFields(logrus.Fields{
		"matched": len(matched),
		"missing": len(unmatched),
	}).Info("Matched order lines against catalog")

	created, createErrs := creator.CreateMissing(ctx, brandName, unmatched)
	summary.CreatedCount = len(created)
	summary.CreateFailures = len(createErrs)
	summary.Errors = append(summary.Errors, createErrs...)

	reconciled := reconciler.Merge(matched, created)
	summary.LinesRequested = len(reconciled)

	supplierID, err := resolver.ResolveSupplier(ctx, brandName)
	if err == nil && supplierID == "" {
		err = fmt.Errorf("supplier %q resolved to an empty id", brandName)
	}
	if err != nil {
		s.failRun(ctx, run, summary, fmt.Errorf("cannot create stock order: %w", err))
		return summary, nil
	}

	shell, err := submitter.CreateShell(ctx, s.outletID, supplierID, brandName)
	if err != nil {
		// No line additions are attempted against an order that was never
		// created
		s.failRun(ctx, run, summary, err)
		return summary, nil
	}
	summary.StockOrderID = shell.ID
	summary.Completed = true

	added, failed := submitter.AddLines(ctx, shell.ID, reconciled)
	summary.LinesAdded = len(added)
	summary.LinesFailed = len(failed)
	summary.Errors = append(summary.Errors, failed...)

	run.Status = models.RunStatusCompleted
	if summary.CreateFailures > 0 || summary.LinesFailed > 0 {
		run.Status = models.RunStatusPartial
	}
	s.persistFinish(ctx, run, summary)

	s.log.WithFields(logrus.Fields{
		"runId":        summary.RunID,
		"stockOrderId": summary.StockOrderID,
		"requested":    summary.LinesRequested,
		"added":        summary.LinesAdded,
		"failed":       summary.LinesFailed,
		"dryRun":       dryRun,
	}).Info("Stock order run finished")
	return summary, nil
}

// failRun marks the run failed at the shell level: the reconciliation work is
// still reported, but no stock order exists (or was left empty).
func (s *ImportService) failRun(ctx context.Context, run *models.ImportRun, summary *models.ImportSummary, cause error) {
	s.log.WithError(cause).Error("Stock order run failed")
	summary.Completed = false
	run.Status = models.RunStatusFailed
	run.ErrorMessage = cause.Error()
	s.persistFinish(ctx, run, summary)
}

func (s *ImportService) persistCreate(ctx context.Context, run *models.ImportRun) {
	if s.runs == nil {
		return
	}
	if err := s.runs.Create(ctx, run); err != nil {
		s.log.WithError(err).Warn("Failed to persist import run, continuing without history")
	}
}

func (s *ImportService) persistFinish(ctx context.Context, run *models.ImportRun, summary *models.ImportSummary) {
	if s.runs == nil {
		return
	}
	now := time.Now().UTC()
	run.CompletedAt = &now
	run.MatchedLines = summary.MatchedLines
	run.MissingLines = summary.MissingLines
	run.CreatedCount = summary.CreatedCount
	run.CreateFailures = summary.CreateFailures
	run.LinesRequested = summary.LinesRequested
	run.LinesAdded = summary.LinesAdded
	run.LinesFailed = summary.LinesFailed
	run.StockOrderID = summary.StockOrderID
	for _, le := range summary.Errors {
		run.Errors = append(run.Errors, models.ImportRunError{
			RunID:     run.ID,
			Row:       le.Row,
			SKU:       le.SKU,
			ProductID: le.ProductID,
			Code:      le.Code,
			Message:   le.Message,
		})
	}
	if err := s.runs.Update(ctx, run); err != nil {
		s.log.WithError(err).Warn("Failed to persist import run result")
	}
}
