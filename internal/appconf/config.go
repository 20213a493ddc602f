package appconf

// Environment determines runtime behavior defaults (logging verbosity,
// database pragmas safe for tests, etc).
type Environment int

const (
	Development Environment = iota
	Test
	Production
)

func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Production:
		return "production"
	default:
		return "development"
	}
}

// EnvFlagToEnvironment converts the -env flag value to an Environment.
// Anything unrecognized defaults to Development.
func EnvFlagToEnvironment(envFlag string) Environment {
	switch envFlag {
	case "test":
		return Test
	case "production":
		return Production
	default:
		return Development
	}
}

// Config holds process-level settings for a matcher run.
type Config struct {
	// Workers is the match engine fan-out width; 0 means one per CPU.
	Workers int
	// MetricsBind, when non-empty, is the listen address for the Prometheus
	// metrics endpoint (e.g. ":9090").
	MetricsBind string
	Env         Environment
	Verbose     bool
}
