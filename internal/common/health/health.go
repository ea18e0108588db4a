package health

import (
	"time"

	"gorm.io/gorm"
)

// Status represents the health of the service and its dependencies
type Status struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Uptime    string            `json:"uptime"`
	Checks    map[string]string `json:"checks"`
	Timestamp time.Time         `json:"timestamp"`
}

// Checker performs health checks against service dependencies
type Checker struct {
	db      *gorm.DB
	version string
	started time.Time
}

// NewChecker creates a new health checker
func NewChecker(db *gorm.DB, version string) *Checker {
	return &Checker{
		db:      db,
		version: version,
		started: time.Now(),
	}
}

// Check runs all dependency checks
func (c *Checker) Check() Status {
	checks := map[string]string{
		"database": "ok",
	}
	status := "ok"

	if err := c.pingDatabase(); err != nil {
		checks["database"] = err.Error()
		status = "degraded"
	}

	return Status{
		Status:    status,
		Version:   c.version,
		Uptime:    time.Since(c.started).Round(time.Second).String(),
		Checks:    checks,
		Timestamp: time.Now(),
	}
}

// Live reports process liveness only
func (c *Checker) Live() Status {
	return Status{
		Status:    "ok",
		Version:   c.version,
		Uptime:    time.Since(c.started).Round(time.Second).String(),
		Timestamp: time.Now(),
	}
}

func (c *Checker) pingDatabase() error {
	if c.db == nil {
		return nil
	}
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
