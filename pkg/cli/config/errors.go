package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound   = goerr.New("configuration file not found")
	ErrInvalidConfig    = goerr.New("invalid configuration")
	ErrDuplicateID      = goerr.New("duplicate ID")
	ErrUnknownReference = goerr.New("reference to undefined record")
	ErrMissingName      = goerr.New("name is required")
	ErrInvalidSchedule  = goerr.New("invalid schedule")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	IDKey         = "id"
	SectionKey    = "section"
	ReferenceKey  = "reference"
)
