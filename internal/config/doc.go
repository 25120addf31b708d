// Package config provides configuration management for testctl.
//
// Configuration is loaded from several YAML sources and merged in order, later
// sources overriding earlier ones:
//
//  1. Default configuration (compiled in): the NWU Protocol stack checks
//  2. User configuration (~/.config/testctl/config.yaml)
//  3. Project configuration (./.testctl/config.yaml)
//  4. An explicit file passed with --config
//
// The TESTCTL_CACHE_PATH environment variable overrides cache.path of every
// layer.
//
// # Configuration Structure
//
//	cache:
//	  path: ""
//	  ttl: 5m
//	  backend: file      # file | memory
//	execution:
//	  timeout: 60s
//	  parallel: 0        # 0 = 2 x GOMAXPROCS
//	checks:
//	  - id: postgres
//	    category: infrastructure
//	    independent: true
//	    tcp:
//	      address: localhost:5432
//	  - id: suite
//	    category: integration
//	    command:
//	      run: ["pytest", "tests/"]
//
// Scalar settings in an overlay replace the earlier value when they are set.
// Checks are merged by (category, id): a redefinition replaces the earlier
// check in place, new checks are appended.
package config
