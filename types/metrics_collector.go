package types

// MetricsCollector defines methods for recording operational metrics.
//
// Implementations should be non-blocking and handle failures gracefully.
// Builds may run concurrently, so all methods must be thread-safe.
//
// This interface composes smaller, domain-focused interfaces for better modularity.
type MetricsCollector interface {
	BuildMetrics
	PartitionMetrics
	RegistryMetrics
}

// BuildMetrics defines metrics for scan configuration builds.
type BuildMetrics interface {
	// RecordBuild records one Build call.
	//
	// Parameters:
	//   - mode: Function mode ("CORR", "PST-BF")
	//   - regions: Number of processing regions in the request
	//   - elements: Number of FSP records produced (0 on failure)
	//   - duration: Time taken in seconds
	//   - success: true if the build produced a configuration
	RecordBuild(mode FunctionMode, regions, elements int, duration float64, success bool)
}

// PartitionMetrics defines metrics for spectrum partitioning.
type PartitionMetrics interface {
	// RecordPartition records the number of coarse slices one processing region spans.
	//
	// Parameters:
	//   - band: Receiver band name
	//   - slices: Number of frequency slices (and FSPs) used
	RecordPartition(band string, slices int)
}

// RegistryMetrics defines metrics for dish registry sources.
type RegistryMetrics interface {
	// RecordRegistryReload records a registry reload from its backing store.
	//
	// Parameters:
	//   - source: Registry source ("file", "kv")
	//   - dishes: Number of dishes after the reload
	//   - success: false if the reload failed and the previous contents were kept
	RecordRegistryReload(source string, dishes int, success bool)
}
