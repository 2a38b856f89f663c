package cache

// Keyer generates cache keys for the cacheable artifact classes.
// Centralizing key layout keeps CLI and API cache entries compatible.
type Keyer interface {
	// ReportKey identifies a full analysis report by the content hash
	// of the scanned file list and the analysis options.
	ReportKey(scanHash string, opts ReportKeyOpts) string
	// DiagramKey identifies a rendered diagram by graph hash and
	// rendering options.
	DiagramKey(graphHash string, opts DiagramKeyOpts) string
}

// ReportKeyOpts are the analysis options that change a report's
// content. Every tunable that feeds an analysis must appear here, or a
// config change would serve a report computed under the old settings.
type ReportKeyOpts struct {
	HubThreshold     int
	CoupledThreshold int
	ModuleDepth      int
	LowCohesion      float64
	MergeRatio       float64
	KeepCohesion     float64
	MaxShare         float64
	MinFiles         int
	CohesionWeight   float64
	CouplingWeight   float64
	IgnorePatterns   []string
}

// DiagramKeyOpts are the rendering options that change a diagram.
type DiagramKeyOpts struct {
	Format     string
	Cycles     bool
	Boundaries bool
}

// DefaultKeyer is the standard key layout.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// ReportKey generates a key for a cached analysis report.
func (k *DefaultKeyer) ReportKey(scanHash string, opts ReportKeyOpts) string {
	return hashKey("report", scanHash, opts)
}

// DiagramKey generates a key for a cached diagram.
func (k *DefaultKeyer) DiagramKey(graphHash string, opts DiagramKeyOpts) string {
	return hashKey("diagram", graphHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// The API server uses this to separate cache namespaces per project.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ReportKey generates a prefixed report key.
func (k *ScopedKeyer) ReportKey(scanHash string, opts ReportKeyOpts) string {
	return k.prefix + k.inner.ReportKey(scanHash, opts)
}

// DiagramKey generates a prefixed diagram key.
func (k *ScopedKeyer) DiagramKey(graphHash string, opts DiagramKeyOpts) string {
	return k.prefix + k.inner.DiagramKey(graphHash, opts)
}
