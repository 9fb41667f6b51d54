// Package config loads the outlet server configuration.
//
// The configuration lives in outlet.yaml (or outlet.json) next to the
// binary's working directory. YAML is preferred when both exist.
//
// # Configuration File Structure
//
//	name: demo
//	server:
//	  host: localhost
//	  port: 3000
//	  writeTimeout: 10s
//	log:
//	  level: debug
//	  format: text
//	metrics:
//	  enabled: true
//	  namespace: outlet
//	transitions:
//	  duplicates: fail
//	  default:
//	    preset: fade
//	    duration: 250ms
//	  routes:
//	    /app/settings:
//	      preset: slide-left
//	      mode: move
//	      exitTimeout: 2s
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	tc, err := cfg.TransitionFor("/app/settings")
package config
