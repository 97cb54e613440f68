// Package config loads runtime configuration for the CivicHub CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the REST backend
//	-g string   address:port of the backend gRPC health endpoint
//	-b string   gateway binding: rest or postgres
//	-d string   Postgres DSN (postgres binding)
//	-k string   token signing key (postgres binding)
//	-l string   local SQLite file for the saved session
//	-i int      online status check interval (seconds)
//	-t int      request timeout (seconds)
//	-r          send resolvedAt with complaint status changes
//
// # JSON schema
//
//	{
//	  "backend_url": "http://127.0.0.1:8080",
//	  "health_addr": "127.0.0.1:50051",
//	  "binding": "rest",
//	  "database_dsn": "",
//	  "signing_key": "",
//	  "local_db_path": "civichub_client.db",
//	  "online_check_interval": "3s",
//	  "request_timeout": "10s",
//	  "send_resolved_at": false
//	}
//
// Absent JSON keys leave the current value alone.
package config
