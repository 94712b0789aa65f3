package models

import "time"

// Config represents the application configuration
type Config struct {
	Engine EngineConfig
	Audit  AuditConfig
}

// EngineConfig holds batch processing settings
type EngineConfig struct {
	Debug bool
}

// AuditConfig holds audit database settings. An empty Path disables the
// audit trail.
type AuditConfig struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}
