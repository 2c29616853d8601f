// Package config provides centralized configuration management for keyprep.
// It loads configuration from multiple sources, validates it, and resolves
// every input and output location into a Paths value.
//
// # Configuration Sources
//
// Configuration is layered in the following order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern KEYPREP_<SECTION>_<FIELD>:
//
//	KEYPREP_LOGGING_LEVEL=debug
//	KEYPREP_STIMULI_ROOT=/data/stimuli
//	KEYPREP_STIMULI_EXPERIMENTS=exp1,exp2
//	KEYPREP_RESPONSES_DROP_ROWS=2
//	KEYPREP_TRACING_ENABLED=true
//
// # Configuration File
//
// When no file is given, Load looks for keyprep.yaml or config.yaml in the
// working directory and in configs/:
//
//	stimuli:
//	  root: stimuli
//	  experiments: [exp1, exp2]
//	responses:
//	  dir: data/responses
//	  drop_rows: 2
//
// # Path Management
//
// Config.GetPaths resolves relative entries against paths.base_dir:
//
//	paths, err := cfg.GetPaths()
//	fmt.Println(paths.CorrelationXLSX)
package config
