package store

// HealthStore answers the readiness question behind the /health endpoint.
type HealthStore interface {
	// CheckConnectivity verifies the database can be reached.
	CheckConnectivity() error
}
