package model

import (
	"time"
)

// CountdownRun represents the database model for countdown runs
type CountdownRun struct {
	ID            string    `gorm:"primaryKey;size:36"`
	Label         string    `gorm:"size:255"`
	Duration      string    `gorm:"not null;size:8"`
	Format        string    `gorm:"not null;size:8"`
	TotalSeconds  int64     `gorm:"not null"`
	GranularityMs int64     `gorm:"not null"`
	Remaining     int64     `gorm:"not null"`
	State         string    `gorm:"not null;size:16;index"`
	TickCount     int64     `gorm:"default:0"`
	CreatedAt     time.Time `gorm:"not null;index"`
	StartedAt     *time.Time
	StoppedAt     *time.Time
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for CountdownRun
func (CountdownRun) TableName() string {
	return "countdown_runs"
}
