// Package config loads ibtws.json, the settings file shared by the
// ibtws commands.
//
// # Configuration File Structure
//
//	{
//	  "gateway": {
//	    "host": "127.0.0.1",
//	    "port": 7496,
//	    "clientId": 1,
//	    "connectTimeout": "10s"
//	  },
//	  "reconnect": {
//	    "enabled": true,
//	    "initialInterval": "1s",
//	    "maxInterval": "1m"
//	  },
//	  "bridge": {
//	    "addr": "127.0.0.1:8089",
//	    "allowedOrigins": ["http://localhost:3000"]
//	  },
//	  "archive": {
//	    "bucket": "reports",
//	    "prefix": "tws/"
//	  },
//	  "log": {"level": "debug"}
//	}
//
// IBTWS_HOST, IBTWS_PORT and IBTWS_CLIENT_ID override the gateway section.
//
// # Usage
//
//	cfg, err := config.LoadOrDefault(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("Gateway:", cfg.Address())
package config
