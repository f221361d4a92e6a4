// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - IPHashSalt: Secret for hashing client IPs (optional; no IP data stored without it)
  - RequiredPolicy: When required questions are enforced (default: current section)
  - LogFormat: "json" (default) or "text"
  - EnvFile: Dotenv file loaded first (default: .env, ignored when absent)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-ip-salt      IP hash salt
	-policy       Required-question policy (current, none, all)
	-log-format   Log format
	-env          Env file path

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	IP_HASH_SALT    → -ip-salt
	REQUIRED_POLICY → -policy
	LOG_FORMAT      → -log-format

CLI flags take precedence over environment variables, and variables
already set in the environment take precedence over the env file.

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing
  - DATABASE_TYPE is not sqlite or postgres
  - REQUIRED_POLICY or LOG_FORMAT is not recognised

# Example

	// In main.go
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	driver, _ := db.DriverName(cfg.DatabaseType)
	conn, err := sql.Open(driver, cfg.DatabaseURL)
	// ...
	mux := router.NewRouter(gateway.NewSQLGateway(conn, cfg.DatabaseType), cfg, metrics.New())
*/
package cliparse
