// Package types provides core type definitions and interfaces for the fspscan library.
//
// This package contains shared types that are used across multiple packages in the
// fspscan library. By keeping these types in a separate package, we avoid import cycles
// between the root fspscan package and its implementation packages.
//
// Key types:
//   - Band: Receiver band descriptor and the coarse frequency slice constants
//   - FunctionMode: Correlation (CORR) or pulsar-timing beamforming (PST-BF)
//   - ElementAssignment: Per-FSP result of spectrum partitioning
//   - ElementConfig: Per-FSP configuration record (CorrConfig or PstConfig)
//   - DishRegistry: Dish to VCC / k-value lookup
//   - Logger: Structured logging interface
//   - MetricsCollector: Metrics recording interface
package types
