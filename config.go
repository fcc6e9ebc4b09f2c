package binspire

// Config holds configuration for the Binspire engine.
type Config struct {
	// EagerLoadUsers populates the User relation of history entries and
	// issues on get and list. Defaults to true.
	EagerLoadUsers *bool `json:"eager_load_users,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	t := true
	return Config{EagerLoadUsers: &t}
}

func (c Config) eagerLoadUsers() bool { return c.EagerLoadUsers == nil || *c.EagerLoadUsers }
