// Package config handles configuration loading for trellis.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable expansion.
// The package provides validation and sensible defaults.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	auth:
//	  jwt_secret: "${TRELLIS_JWT_SECRET}"
//
// Syntax: ${VAR_NAME}
//
// # Configuration Sections
//
// Server settings:
//
//	server:
//	  addr: "0.0.0.0:8080"
//
// Database:
//
//	database:
//	  path: "/var/lib/trellis/trellis.db"
//
// Authentication:
//
//	auth:
//	  jwt_secret: "${TRELLIS_JWT_SECRET}"  # Required, min 32 characters
//	  token_ttl: "24h"                     # Default 24h
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// # Validation
//
// Load() validates:
//
//   - Server address presence
//   - Database path presence
//   - JWT secret minimum length (32 characters)
//   - Duration format validity
package config
