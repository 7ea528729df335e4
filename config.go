package dremel

import "github.com/rs/zerolog"

// WriterConfig carries configuration for a Writer. The zero value is not
// ready for use; construct one with DefaultWriterConfig.
type WriterConfig struct {
	// Fields restricts shredding to the given projected leaf paths
	// (without the RootPath prefix). A nil slice shreds every leaf.
	Fields []string
	Log    zerolog.Logger
}

// DefaultWriterConfig returns a WriterConfig with logging disabled and
// no projection (shred every leaf).
func DefaultWriterConfig() *WriterConfig {
	return &WriterConfig{Log: disabledLogger()}
}

// Apply applies options to c in order.
func (c *WriterConfig) Apply(options ...WriterOption) {
	for _, opt := range options {
		opt.ConfigureWriter(c)
	}
}

// WriterOption configures a WriterConfig.
type WriterOption interface {
	ConfigureWriter(*WriterConfig)
}

type writerOption func(*WriterConfig)

func (f writerOption) ConfigureWriter(c *WriterConfig) { f(c) }

// WithFields restricts a Writer to the given projected leaf paths. An
// Assembler takes WithAssembleFields instead.
func WithFields(fields ...string) WriterOption {
	return writerOption(func(c *WriterConfig) { c.Fields = fields })
}

// WithWriterLogger attaches a logger to a Writer.
func WithWriterLogger(log zerolog.Logger) WriterOption {
	return writerOption(func(c *WriterConfig) { c.Log = log })
}

// ScanConfig carries configuration for Scan.
type ScanConfig struct {
	Log zerolog.Logger
}

// DefaultScanConfig returns a ScanConfig with logging disabled.
func DefaultScanConfig() *ScanConfig { return &ScanConfig{Log: disabledLogger()} }

func (c *ScanConfig) Apply(options ...ScanOption) {
	for _, opt := range options {
		opt.ConfigureScan(c)
	}
}

// ScanOption configures a ScanConfig.
type ScanOption interface {
	ConfigureScan(*ScanConfig)
}

type scanOption func(*ScanConfig)

func (f scanOption) ConfigureScan(c *ScanConfig) { f(c) }

// WithScanLogger attaches a logger to a projection Scan.
func WithScanLogger(log zerolog.Logger) ScanOption {
	return scanOption(func(c *ScanConfig) { c.Log = log })
}

// AssembleConfig carries configuration for NewAssembler.
type AssembleConfig struct {
	// Fields restricts assembly to the given projected leaf paths
	// (without the RootPath prefix). A nil slice assembles every leaf.
	Fields []string
	Log    zerolog.Logger
}

// DefaultAssembleConfig returns an AssembleConfig with logging disabled
// and no projection (assemble every leaf).
func DefaultAssembleConfig() *AssembleConfig { return &AssembleConfig{Log: disabledLogger()} }

func (c *AssembleConfig) Apply(options ...AssembleOption) {
	for _, opt := range options {
		opt.ConfigureAssemble(c)
	}
}

// AssembleOption configures an AssembleConfig.
type AssembleOption interface {
	ConfigureAssemble(*AssembleConfig)
}

type assembleOption func(*AssembleConfig)

func (f assembleOption) ConfigureAssemble(c *AssembleConfig) { f(c) }

// WithAssembleFields restricts NewAssembler to the given projected leaf
// paths.
func WithAssembleFields(fields ...string) AssembleOption {
	return assembleOption(func(c *AssembleConfig) { c.Fields = fields })
}

// WithAssembleLogger attaches a logger to an Assembler.
func WithAssembleLogger(log zerolog.Logger) AssembleOption {
	return assembleOption(func(c *AssembleConfig) { c.Log = log })
}
