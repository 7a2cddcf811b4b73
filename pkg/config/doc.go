// Package config provides configuration loading for coltype tools.
//
// A single Config structure holds one section per configured package:
//   - Logging: level, encoding and outputs of the global zap logger
//   - Registry: signatures to preload at start-up and whether to seal afterwards
//   - Block: initial sizing and the per-value cap of block builders
//   - Metrics: Prometheus instrumentation of the registry
//
// # Loading
//
// Load layers three sources, later ones winning:
//
//  1. Default()
//  2. a YAML file, after ${VAR_NAME} substitution
//  3. COLTYPE_* environment variables, with "." in keys replaced by "_"
//
// Example:
//
//	cfg, err := config.Load("coltype.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//
// With COLTYPE_LOGGING_LEVEL=debug set, cfg.Logging.Level is "debug" whatever
// the file says.
//
// # Example configuration
//
//	logging:
//	  level: info
//	  encoding: json
//	registry:
//	  preload:
//	    - qdigest(double)
//	    - tdigest(double)
//	  seal: true
//	block:
//	  max_entry_size: 1048576
//	metrics:
//	  enabled: true
//	  namespace: coltype
//
// Invalid values are rejected by Validate with an errors.ErrorTypeConfig error
// whose "field" detail names the offending key.
package config
