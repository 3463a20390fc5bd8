package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/luxyvenom/aimonitor/pkg/domain/model"
	"github.com/luxyvenom/aimonitor/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/robfig/cron/v3"
	"github.com/urfave/cli/v3"
)

const (
	DefaultVitalsSchedule = "@every 2s"
	DefaultGraphSchedule  = "@every 4s"
	DefaultEventLimit     = 5
	DefaultAlertInterval  = "10s"
	DefaultAlertBurst     = 3
)

// SiteFile is the TOML site configuration
type SiteFile struct {
	SystemActions []string         `toml:"system_actions"`
	Workspaces    []WorkspaceEntry `toml:"workspace"`
	Teams         []TeamEntry      `toml:"team"`
	Workers       []WorkerEntry    `toml:"worker"`
	Schedule      ScheduleSection  `toml:"schedule"`
	Graph         GraphSection     `toml:"graph"`
	Alert         AlertSection     `toml:"alert"`
}

// WorkspaceEntry represents a workspace configuration
type WorkspaceEntry struct {
	ID       string `toml:"id"`
	Name     string `toml:"name"`
	Location string `toml:"location"`
}

// Validate checks if the WorkspaceEntry is valid
func (w *WorkspaceEntry) Validate() error {
	if err := types.WorkspaceID(w.ID).Validate(); err != nil {
		return goerr.Wrap(err, "invalid workspace ID")
	}
	if w.Name == "" {
		return goerr.Wrap(ErrMissingName, "workspace name is required", goerr.V(IDKey, w.ID))
	}
	return nil
}

// TeamEntry represents a team configuration
type TeamEntry struct {
	ID        string `toml:"id"`
	Name      string `toml:"name"`
	Workspace string `toml:"workspace"`
}

// Validate checks if the TeamEntry is valid
func (t *TeamEntry) Validate() error {
	if err := types.TeamID(t.ID).Validate(); err != nil {
		return goerr.Wrap(err, "invalid team ID")
	}
	if t.Name == "" {
		return goerr.Wrap(ErrMissingName, "team name is required", goerr.V(IDKey, t.ID))
	}
	return nil
}

// WorkerEntry represents a worker configuration
type WorkerEntry struct {
	ID   string `toml:"id"`
	Name string `toml:"name" masq:"secret"`
	Team string `toml:"team"`
	Role string `toml:"role"`
}

// Validate checks if the WorkerEntry is valid
func (w *WorkerEntry) Validate() error {
	if err := types.WorkerID(w.ID).Validate(); err != nil {
		return goerr.Wrap(err, "invalid worker ID")
	}
	if w.Name == "" {
		return goerr.Wrap(ErrMissingName, "worker name is required", goerr.V(IDKey, w.ID))
	}
	return nil
}

// ScheduleSection holds cron descriptors of the driving loop
type ScheduleSection struct {
	Vitals string `toml:"vitals"`
	Graph  string `toml:"graph"`
}

// GraphSection configures graph refreshes
type GraphSection struct {
	EventLimit *int `toml:"event_limit"`
}

// AlertSection configures red zone alert rate limiting
type AlertSection struct {
	Interval string `toml:"interval"`
	Burst    int    `toml:"burst"`
}

// applyDefaults fills every unset optional setting
func (s *SiteFile) applyDefaults() {
	if len(s.SystemActions) == 0 {
		s.SystemActions = model.DefaultSystemActions
	}
	if s.Schedule.Vitals == "" {
		s.Schedule.Vitals = DefaultVitalsSchedule
	}
	if s.Schedule.Graph == "" {
		s.Schedule.Graph = DefaultGraphSchedule
	}
	if s.Graph.EventLimit == nil {
		limit := DefaultEventLimit
		s.Graph.EventLimit = &limit
	}
	if s.Alert.Interval == "" {
		s.Alert.Interval = DefaultAlertInterval
	}
	if s.Alert.Burst == 0 {
		s.Alert.Burst = DefaultAlertBurst
	}
}

// Validate checks every section, ID uniqueness and cross references
func (s *SiteFile) Validate() error {
	workspaceIDs := make(map[string]bool)
	for _, ws := range s.Workspaces {
		if err := ws.Validate(); err != nil {
			return goerr.Wrap(err, "invalid workspace")
		}
		if workspaceIDs[ws.ID] {
			return goerr.Wrap(ErrDuplicateID, "duplicate workspace ID", goerr.V(IDKey, ws.ID))
		}
		workspaceIDs[ws.ID] = true
	}

	teamIDs := make(map[string]bool)
	for _, team := range s.Teams {
		if err := team.Validate(); err != nil {
			return goerr.Wrap(err, "invalid team")
		}
		if teamIDs[team.ID] {
			return goerr.Wrap(ErrDuplicateID, "duplicate team ID", goerr.V(IDKey, team.ID))
		}
		if !workspaceIDs[team.Workspace] {
			return goerr.Wrap(ErrUnknownReference, "team refers to undefined workspace",
				goerr.V(IDKey, team.ID), goerr.V(ReferenceKey, team.Workspace))
		}
		teamIDs[team.ID] = true
	}

	workerIDs := make(map[string]bool)
	for _, w := range s.Workers {
		if err := w.Validate(); err != nil {
			return goerr.Wrap(err, "invalid worker")
		}
		if workerIDs[w.ID] {
			return goerr.Wrap(ErrDuplicateID, "duplicate worker ID", goerr.V(IDKey, w.ID))
		}
		if !teamIDs[w.Team] {
			return goerr.Wrap(ErrUnknownReference, "worker refers to undefined team",
				goerr.V(IDKey, w.ID), goerr.V(ReferenceKey, w.Team))
		}
		workerIDs[w.ID] = true
	}

	for i, action := range s.SystemActions {
		if action == "" {
			return goerr.Wrap(ErrInvalidConfig, "system action must not be empty", goerr.V("index", i))
		}
	}

	for section, spec := range map[string]string{"vitals": s.Schedule.Vitals, "graph": s.Schedule.Graph} {
		if spec == "" {
			continue
		}
		if _, err := cron.ParseStandard(spec); err != nil {
			return goerr.Wrap(ErrInvalidSchedule, err.Error(), goerr.V(SectionKey, section), goerr.V("schedule", spec))
		}
	}

	if s.Graph.EventLimit != nil && *s.Graph.EventLimit < 0 {
		return goerr.Wrap(ErrInvalidConfig, "graph event_limit must not be negative",
			goerr.V("event_limit", *s.Graph.EventLimit))
	}

	if s.Alert.Interval != "" {
		if d, err := time.ParseDuration(s.Alert.Interval); err != nil || d < 0 {
			return goerr.Wrap(ErrInvalidConfig, "alert interval must be a non-negative duration",
				goerr.V("interval", s.Alert.Interval))
		}
	}
	if s.Alert.Burst < 0 {
		return goerr.Wrap(ErrInvalidConfig, "alert burst must not be negative", goerr.V("burst", s.Alert.Burst))
	}

	return nil
}

// Registry converts the site records into a domain SiteRegistry
func (s *SiteFile) Registry() *model.SiteRegistry {
	reg := model.NewSiteRegistry()
	for _, ws := range s.Workspaces {
		reg.RegisterWorkspace(model.Workspace{
			ID:       types.WorkspaceID(ws.ID),
			Name:     ws.Name,
			Location: ws.Location,
		})
	}
	for _, team := range s.Teams {
		reg.RegisterTeam(model.Team{
			ID:          types.TeamID(team.ID),
			Name:        team.Name,
			WorkspaceID: types.WorkspaceID(team.Workspace),
		})
	}
	for _, w := range s.Workers {
		reg.RegisterWorker(model.Worker{
			ID:     types.WorkerID(w.ID),
			Name:   w.Name,
			TeamID: types.TeamID(w.Team),
			Role:   w.Role,
		})
	}
	return reg
}

// AlertInterval returns the parsed alert interval
func (s *SiteFile) AlertInterval() time.Duration {
	d, err := time.ParseDuration(s.Alert.Interval)
	if err != nil {
		return 0
	}
	return d
}

// EventLimit returns the configured number of graph events
func (s *SiteFile) EventLimit() int {
	if s.Graph.EventLimit == nil {
		return DefaultEventLimit
	}
	return *s.Graph.EventLimit
}

// LoadSiteFile loads and validates a site configuration from a TOML file
func LoadSiteFile(path string) (*SiteFile, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "site config does not exist", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var site SiteFile
	if err := toml.Unmarshal(data, &site); err != nil {
		return nil, goerr.Wrap(errors.Join(ErrInvalidConfig, err), "failed to parse TOML config",
			goerr.V(ConfigPathKey, path))
	}

	if err := site.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V(ConfigPathKey, path))
	}
	site.applyDefaults()

	return &site, nil
}

var defaultWorkerNames = []string{
	"Kim Cheolsu", "Lee Younghee", "Park Minsu", "Choi Jiyoung", "Jung Daeho",
	"Kang Sujin", "Cho Hyunwoo", "Yoon Mirae", "Jang Dongmin", "Lim Seoyeon",
}

// DefaultSiteFile is the built-in demo plant: three workspaces, four teams
// and ten workers assigned to teams round robin
func DefaultSiteFile() *SiteFile {
	site := &SiteFile{
		Workspaces: []WorkspaceEntry{
			{ID: "WS001", Name: "Workspace 1", Location: "1F"},
			{ID: "WS002", Name: "Workspace 2", Location: "2F"},
			{ID: "WS003", Name: "Workspace 3", Location: "3F"},
		},
		Teams: []TeamEntry{
			{ID: "T001", Name: "Team A", Workspace: "WS001"},
			{ID: "T002", Name: "Team B", Workspace: "WS001"},
			{ID: "T003", Name: "Team C", Workspace: "WS002"},
			{ID: "T004", Name: "Team D", Workspace: "WS003"},
		},
	}

	for i, name := range defaultWorkerNames {
		team := site.Teams[i%len(site.Teams)]
		site.Workers = append(site.Workers, WorkerEntry{
			ID:   fmt.Sprintf("W%03d", i+1),
			Name: name,
			Team: team.ID,
			Role: team.Name + " operator",
		})
	}

	site.applyDefaults()
	return site
}

// Site holds CLI flags for the site configuration file
type Site struct {
	path string
}

// Flags returns CLI flags for site configuration
func (s *Site) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Site configuration file (TOML); the built-in demo site is used when omitted",
			Sources:     cli.EnvVars("AIMONITOR_CONFIG"),
			Destination: &s.path,
		},
	}
}

func (s Site) LogValue() slog.Value {
	path := s.path
	if path == "" {
		path = "(built-in)"
	}
	return slog.GroupValue(slog.String("path", path))
}

// Configure loads the configured site file or falls back to the default site
func (s *Site) Configure() (*SiteFile, error) {
	if s.path == "" {
		return DefaultSiteFile(), nil
	}
	return LoadSiteFile(s.path)
}
