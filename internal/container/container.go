// Package container provides dependency injection for the bankcap-etl
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/bankcap-etl/internal/config"
	"fjacquet/bankcap-etl/internal/etl"
	"fjacquet/bankcap-etl/internal/extractor"
	"fjacquet/bankcap-etl/internal/joblog"
	"fjacquet/bankcap-etl/internal/loader"
	"fjacquet/bankcap-etl/internal/logging"
	"fjacquet/bankcap-etl/internal/rates"
	"fjacquet/bankcap-etl/internal/scanner"
	"fjacquet/bankcap-etl/internal/transformer"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation. The transformer is not built here
// because it needs the exchange rate, which is only read when a job runs.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	jobLog    *joblog.JobLog
	scanner   *scanner.FileScanner
	extractor *extractor.Extractor
	rates     *rates.Provider
	loader    *loader.Loader
}

// NewContainer creates and wires all application dependencies.
//
// Parameters:
//   - cfg: Application configuration
//
// Returns:
//   - *Container: Fully wired container with all dependencies
//   - error: Any error encountered during dependency creation
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format))
}

// NewContainerWithLogger is NewContainer with a caller supplied logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	c := &Container{
		logger:    logger,
		config:    cfg,
		jobLog:    joblog.New(cfg.ETL.LogFile, logger),
		scanner:   scanner.NewFileScanner(logger),
		extractor: extractor.New(logger),
		rates:     rates.NewProvider(cfg.ETL.RateColumn, logger),
		loader:    loader.New(cfg.Delimiter(), logger),
	}

	logger.Debug("Container initialized successfully",
		logging.Field{Key: logging.FieldCurrency, Value: cfg.ETL.TargetCurrency},
		logging.Field{Key: logging.FieldFile, Value: cfg.ETL.RatesFile})

	return c, nil
}

// NewTransformer looks up the target currency rate once and returns a
// transformer bound to it.
func (c *Container) NewTransformer() (*transformer.Transformer, error) {
	rate, err := c.rates.LookupFile(c.config.ETL.RatesFile, c.config.ETL.TargetCurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s exchange rate: %w", c.config.ETL.TargetCurrency, err)
	}

	opts := transformer.Options{
		Currency:  c.config.ETL.TargetCurrency,
		Rate:      rate,
		Precision: int32(c.config.ETL.Precision), // #nosec G115 -- validated to 0..12
		Rounding:  c.config.RoundingMode(),
	}
	return transformer.New(opts, c.logger), nil
}

// NewPipeline builds a ready-to-run ETL job.
func (c *Container) NewPipeline() (*etl.Pipeline, error) {
	t, err := c.NewTransformer()
	if err != nil {
		return nil, err
	}

	paths := etl.Paths{
		InputDir:     c.config.ETL.InputDir,
		InputPattern: c.config.ETL.InputPattern,
		OutputFile:   c.config.ETL.OutputFile,
	}
	return etl.NewPipeline(paths, c.scanner, c.extractor, t, c.loader, c.jobLog, c.logger), nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetJobLog returns the job log writer.
func (c *Container) GetJobLog() *joblog.JobLog {
	return c.jobLog
}

// GetScanner returns the input file scanner.
func (c *Container) GetScanner() *scanner.FileScanner {
	return c.scanner
}

// GetExtractor returns the JSON extractor.
func (c *Container) GetExtractor() *extractor.Extractor {
	return c.extractor
}

// GetRateProvider returns the exchange rate provider.
func (c *Container) GetRateProvider() *rates.Provider {
	return c.rates
}

// GetLoader returns the CSV loader.
func (c *Container) GetLoader() *loader.Loader {
	return c.loader
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	// The job log closes its file after every entry; nothing is held open.
	c.logger.Debug("Container closed")
	return nil
}
