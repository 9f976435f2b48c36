// Package etl sequences the extract, transform and load phases of a job and
// records each phase boundary in the job log.
package etl

import (
	"fmt"
	"time"

	"fjacquet/bankcap-etl/internal/logging"
	"fjacquet/bankcap-etl/internal/models"
	"fjacquet/bankcap-etl/internal/parsererror"

	"github.com/google/uuid"
)

// Phase names as they appear in the job log.
const (
	PhaseExtract   = "Extract"
	PhaseTransform = "Transform"
	PhaseLoad      = "Load"
	phaseJob       = "Job"
)

// Job log messages bracketing the whole run.
const (
	MessageJobStarted = "ETL Job Started"
	MessageJobEnded   = "ETL Job Ended"
)

// PhaseStarted returns the job log message written before a phase.
func PhaseStarted(phase string) string { return phase + " phase Started" }

// PhaseEnded returns the job log message written after a phase succeeds.
func PhaseEnded(phase string) string { return phase + " phase Ended" }

// PathResolver finds the input files of a run.
type PathResolver interface {
	ScanPattern(dir, pattern string) ([]string, error)
}

// Extractor reads the input files into one table.
type Extractor interface {
	Extract(paths []string) (models.ExtractedTable, error)
}

// Transformer converts the extracted table.
type Transformer interface {
	Transform(table models.ExtractedTable) (models.TransformedTable, error)
}

// Loader persists the transformed table.
type Loader interface {
	Load(path string, table models.TransformedTable) error
}

// JobLogger records phase transitions.
type JobLogger interface {
	Log(message string) error
}

// Paths locates the inputs and output of a run.
type Paths struct {
	InputDir     string
	InputPattern string
	OutputFile   string
}

// Result summarizes a successful run.
type Result struct {
	RunID      string
	InputFiles []string
	Rows       int
	OutputFile string
	Duration   time.Duration
}

// Pipeline runs one ETL job. It holds no state between runs.
type Pipeline struct {
	paths       Paths
	resolver    PathResolver
	extractor   Extractor
	transformer Transformer
	loader      Loader
	jobLog      JobLogger
	logger      logging.Logger
}

// NewPipeline wires the phases of a job.
func NewPipeline(paths Paths, resolver PathResolver, extractor Extractor, transformer Transformer,
	loader Loader, jobLog JobLogger, logger logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Pipeline{
		paths:       paths,
		resolver:    resolver,
		extractor:   extractor,
		transformer: transformer,
		loader:      loader,
		jobLog:      jobLog,
		logger:      logger,
	}
}

// Run executes extract, transform and load in order. The first failure stops
// the job; the log entries of the remaining phases are never written.
func (p *Pipeline) Run() (*Result, error) {
	start := time.Now()
	result := &Result{
		RunID:      uuid.New().String(),
		OutputFile: p.paths.OutputFile,
	}
	logger := p.logger.WithField(logging.FieldRunID, result.RunID)
	logger.Info("ETL job started", logging.Field{Key: logging.FieldOutputFile, Value: p.paths.OutputFile})

	if err := p.jobLog.Log(MessageJobStarted); err != nil {
		return nil, p.fail(logger, phaseJob, err)
	}

	var extracted models.ExtractedTable
	err := p.phase(logger, PhaseExtract, func() error {
		files, err := p.resolver.ScanPattern(p.paths.InputDir, p.paths.InputPattern)
		if err != nil {
			return err
		}
		result.InputFiles = files
		extracted, err = p.extractor.Extract(files)
		return err
	})
	if err != nil {
		return nil, err
	}

	var transformed models.TransformedTable
	err = p.phase(logger, PhaseTransform, func() error {
		var err error
		transformed, err = p.transformer.Transform(extracted)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = p.phase(logger, PhaseLoad, func() error {
		return p.loader.Load(p.paths.OutputFile, transformed)
	})
	if err != nil {
		return nil, err
	}

	if err := p.jobLog.Log(MessageJobEnded); err != nil {
		return nil, p.fail(logger, phaseJob, err)
	}

	result.Rows = transformed.Len()
	result.Duration = time.Since(start)
	logger.Info("ETL job completed",
		logging.Field{Key: logging.FieldCount, Value: result.Rows},
		logging.Field{Key: logging.FieldDuration, Value: result.Duration.Milliseconds()})
	return result, nil
}

func (p *Pipeline) phase(logger logging.Logger, name string, fn func() error) error {
	if err := p.jobLog.Log(PhaseStarted(name)); err != nil {
		return p.fail(logger, name, err)
	}

	phaseStart := time.Now()
	if err := fn(); err != nil {
		return p.fail(logger, name, err)
	}

	if err := p.jobLog.Log(PhaseEnded(name)); err != nil {
		return p.fail(logger, name, err)
	}
	logger.Debug(fmt.Sprintf("%s phase completed", name),
		logging.Field{Key: logging.FieldPhase, Value: name},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(phaseStart).Milliseconds()})
	return nil
}

func (p *Pipeline) fail(logger logging.Logger, phase string, err error) error {
	logger.WithError(err).Error("ETL job aborted", logging.Field{Key: logging.FieldPhase, Value: phase})
	return &parsererror.PhaseError{Phase: phase, Err: err}
}
