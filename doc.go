// Package fspscan builds Frequency Slice Processor (FSP) scan configurations
// for a radio-telescope correlator and beamformer.
//
// A scan request names, per processing region, a contiguous band of fine
// channels and the FSPs that should process it. fspscan splits the band at
// the fixed coarse frequency slice boundaries, keeps every FSP's output a
// whole number of 20-channel packets, computes the per-dish frequency shifts
// from the dish registry, and splits the region's output routing tables at
// the FSP boundaries.
//
// # Quick Start
//
//	reg, err := registry.OpenFile("dishes.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cfg := fspscan.Config{
//	    FrequencyBand:  "1",
//	    SubarrayDishes: []string{"SKA001", "SKA036"},
//	}
//	cfgr, err := fspscan.NewConfigurator(&cfg, reg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	elements, err := cfgr.BuildCorrelation(fspscan.CorrConfiguration{
//	    ProcessingRegions: []fspscan.CorrProcessingRegion{{
//	        Spectrum: fspscan.Spectrum{
//	            FspIDs:       []int{1, 2},
//	            StartFreq:    350_000_000,
//	            ChannelWidth: 13_440,
//	            ChannelCount: 14_000,
//	        },
//	        IntegrationFactor: 10,
//	    }},
//	})
//
// # Packages
//
//   - partition: the fine channel partitioner, a pure function
//   - channelmap: splitting of channel-keyed routing tables
//   - builder: per-mode assembly of FSP records
//   - registry: static, YAML file and NATS JetStream KV dish registries
//
// See the examples/ directory for complete working examples.
package fspscan
