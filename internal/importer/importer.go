// Package importer loads CSV and XLSX files into collections and records an
// import job for every file.
package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mesh-intelligence/loantrack/internal/sheet"
	"github.com/mesh-intelligence/loantrack/pkg/types"
)

// DefaultConcurrency bounds how many files are read at once.
const DefaultConcurrency = 4

// ErrNotImportable is returned for collections that cannot be imported into.
var ErrNotImportable = errors.New("collection does not accept imports")

// Importer reads files into a store.
type Importer struct {
	store       types.Store
	log         *zap.Logger
	concurrency int
	uploadedBy  string
	now         func() time.Time
}

// Option configures an Importer.
type Option func(*Importer)

// WithLogger sets the logger for per-file progress.
func WithLogger(l *zap.Logger) Option {
	return func(im *Importer) {
		if l != nil {
			im.log = l
		}
	}
}

// WithConcurrency sets how many files are processed in parallel.
func WithConcurrency(n int) Option {
	return func(im *Importer) {
		if n > 0 {
			im.concurrency = n
		}
	}
}

// WithUploader sets the name recorded as uploadedBy on import jobs.
func WithUploader(name string) Option {
	return func(im *Importer) { im.uploadedBy = name }
}

// WithClock overrides the time source used for uploadedOn.
func WithClock(now func() time.Time) Option {
	return func(im *Importer) {
		if now != nil {
			im.now = now
		}
	}
}

// New returns an Importer writing to store.
func New(store types.Store, opts ...Option) *Importer {
	im := &Importer{
		store:       store,
		log:         zap.NewNop(),
		concurrency: DefaultConcurrency,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// Import loads each file into collection and returns one job per file, in
// the order of paths. A file that cannot be read, or whose rows all fail,
// yields a Failed job; otherwise the job is Completed and counts the rows
// that failed validation. Jobs are stored in the imports collection and
// each one is noted in the audit log.
//
// Import returns an error only when the collection is not importable, the
// store fails, or ctx is cancelled. The jobs of files finished before the
// error are still returned.
func (im *Importer) Import(ctx context.Context, collection string, paths ...string) ([]types.ImportJob, error) {
	if collection == types.TableImports || collection == types.TableAudit {
		return nil, fmt.Errorf("%w: %q", ErrNotImportable, collection)
	}
	target, err := im.store.GetTable(collection)
	if err != nil {
		return nil, err
	}
	jobsTable, err := im.store.GetTable(types.TableImports)
	if err != nil {
		return nil, err
	}
	auditTable, err := im.store.GetTable(types.TableAudit)
	if err != nil {
		return nil, err
	}

	jobs := make([]*types.ImportJob, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(im.concurrency)
	for i, path := range paths {
		g.Go(func() error {
			job, err := im.importFile(gctx, target, collection, path)
			if err != nil {
				return err
			}
			rec, err := types.EncodeRecord(job)
			if err != nil {
				return err
			}
			if _, err := jobsTable.Set(job.ID, rec); err != nil {
				return fmt.Errorf("recording import job for %s: %w", path, err)
			}
			if err := im.audit(auditTable, collection, job); err != nil {
				return fmt.Errorf("auditing import of %s: %w", path, err)
			}
			jobs[i] = job
			return nil
		})
	}
	err = g.Wait()

	out := make([]types.ImportJob, 0, len(jobs))
	for _, j := range jobs {
		if j != nil {
			out = append(out, *j)
		}
	}
	return out, err
}

// importFile reads one file and stores its rows. Only context and storage
// failures are returned as errors; everything else is reported on the job.
func (im *Importer) importFile(ctx context.Context, target types.Table, collection, path string) (*types.ImportJob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generating job id: %w", err)
	}
	job := &types.ImportJob{
		ID:         id.String(),
		Type:       collectionLabel(collection),
		FileName:   filepath.Base(path),
		UploadedOn: im.now().UTC().Format(time.RFC3339),
		UploadedBy: im.uploadedBy,
	}
	log := im.log.With(zap.String("file", path), zap.String("collection", collection))

	rows, err := readFile(path)
	if err != nil {
		job.Status = types.ImportFailed
		job.Message = err.Error()
		log.Warn("import file unreadable", zap.Error(err))
		return job, nil
	}

	job.TotalRecords = len(rows)
	for n, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec := normalizeRow(collection, row)
		if _, err := target.Set("", rec); err != nil {
			if !errors.Is(err, types.ErrInvalidData) {
				return nil, fmt.Errorf("importing %s row %d: %w", path, n+2, err)
			}
			job.ErrorRecords++
			if job.Message == "" {
				// Row numbers count the header as row 1.
				job.Message = fmt.Sprintf("row %d: %v", n+2, err)
			}
			log.Debug("row rejected", zap.Int("row", n+2), zap.Error(err))
			continue
		}
		job.SuccessfulRecords++
	}

	job.Status = types.ImportCompleted
	if job.SuccessfulRecords == 0 {
		job.Status = types.ImportFailed
		if job.Message == "" {
			job.Message = "no records"
		}
	}
	log.Info("import finished",
		zap.String("status", job.Status),
		zap.Int("total", job.TotalRecords),
		zap.Int("errors", job.ErrorRecords),
	)
	return job, nil
}

// audit appends an IMPORT_DATA entry for job.
func (im *Importer) audit(tbl types.Table, collection string, job *types.ImportJob) error {
	user := im.uploadedBy
	if user == "" {
		user = "unknown"
	}
	entry := types.AuditEntry{
		Timestamp: job.UploadedOn,
		Action:    types.AuditImportData,
		User:      user,
		Target:    job.ID,
		Details: fmt.Sprintf("%s import of %s into %s: %d of %d records",
			job.Status, job.FileName, collection, job.SuccessfulRecords, job.TotalRecords),
	}
	rec, err := types.EncodeRecord(entry)
	if err != nil {
		return err
	}
	_, err = tbl.Set("", rec)
	return err
}

// readFile parses a CSV or XLSX file chosen by extension.
func readFile(path string) ([]types.Record, error) {
	format, err := sheet.ParseFormat(filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if format == sheet.FormatXLSX {
		return sheet.ReadXLSX(f, "")
	}
	return sheet.ReadCSV(f)
}
