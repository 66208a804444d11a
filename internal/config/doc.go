// Package config provides configuration parsing for the sonner server.
//
// The configuration is stored in sonner.json. Every field can also be set
// through an SONNER_* environment variable, which wins over the file.
//
// # Configuration File Structure
//
//	{
//	  "server": {
//	    "addr": "localhost:3100",
//	    "mountPath": "/_sonner",
//	    "allowedOrigins": ["https://app.example.com"],
//	    "shutdownTimeout": "5s"
//	  },
//	  "toasts": {
//	    "defaultDuration": "4s",
//	    "ids": "counter"
//	  },
//	  "log": {
//	    "level": "info",
//	    "noColor": false
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "sonner",
//	    "path": "/metrics"
//	  }
//	}
//
// # Environment Overrides
//
//	SONNER_SERVER_ADDR=:8080
//	SONNER_SERVER_ALLOWED_ORIGINS=https://a.example,https://b.example
//	SONNER_TOASTS_DEFAULT_DURATION=6s
//	SONNER_LOG_LEVEL=debug
//	SONNER_METRICS_ENABLED=false
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Server.Addr)
package config
