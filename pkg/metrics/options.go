package metrics

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace prefixes every metric name. Useful when several jobs share a
// textfile collector directory.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}
