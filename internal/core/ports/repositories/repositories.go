package repositories

// RepositoryProvider holds the outbound adapters needed by services.
type RepositoryProvider struct {
	KeyValue KeyValueStore
	Exporter StatementExporter // optional
}
