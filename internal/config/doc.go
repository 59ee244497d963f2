// Package config provides configuration parsing for outlet projects.
//
// The configuration is stored in outlet.json at the project root.
// This package handles loading, saving, and validating configuration,
// and overlays OUTLET_* environment variables (and an optional .env file
// next to outlet.json) on top of it.
//
// # Configuration File Structure
//
//	{
//	  "routes": "routes.json",
//	  "root": "app",
//	  "server": {
//	    "host": "localhost",
//	    "port": 7070
//	  },
//	  "metrics": {
//	    "namespace": "outlet"
//	  },
//	  "tracing": {
//	    "enabled": true
//	  },
//	  "guards": {
//	    "deny": ["admin"]
//	  }
//	}
//
// "routes" may also be an s3://bucket/key URI.
//
// # Environment
//
//	OUTLET_ROUTES             routes
//	OUTLET_ROOT               root
//	OUTLET_HOST               server.host
//	OUTLET_PORT               server.port
//	OUTLET_METRICS_NAMESPACE  metrics.namespace
//	OUTLET_TRACING            tracing.enabled
//	OUTLET_GUARDS_DENY        guards.deny (comma separated)
//
// # Usage
//
//	cfg, err := config.LoadWithEnv(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Inspector:", cfg.URL())
package config
