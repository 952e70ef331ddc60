// Package config provides configuration parsing for domrender.
//
// The configuration is stored in domrender.yaml (or domrender.json) and
// covers the renderer defaults, the preview server, logging and metrics.
// Every field is optional; missing values take the defaults from New.
//
// # Configuration File Structure
//
//	render:
//	  defaultTag: div
//	server:
//	  addr: ":8080"
//	  maxBodyBytes: 1048576
//	  readTimeout: 10s
//	  writeTimeout: 10s
//	log:
//	  level: info
//	  format: text
//	metrics:
//	  enabled: true
//	  namespace: domrender
//	  path: /metrics
//
// # Usage
//
//	cfg, err := config.LoadFile("domrender.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Addr:", cfg.Server.Addr)
package config
