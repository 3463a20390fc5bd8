package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/luxyvenom/aimonitor/pkg/cli/config"
	"github.com/luxyvenom/aimonitor/pkg/domain/model"
	"github.com/luxyvenom/aimonitor/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func writeSite(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "site.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
	return path
}

const validSite = `
system_actions = ["stop line", "slow down", "keep going"]

[[workspace]]
id = "WS001"
name = "Assembly"
location = "1F"

[[team]]
id = "T001"
name = "Team A"
workspace = "WS001"

[[worker]]
id = "W001"
name = "Kim Cheolsu"
team = "T001"
role = "Production team 1"

[schedule]
vitals = "@every 1s"
graph = "*/5 * * * *"

[graph]
event_limit = 8

[alert]
interval = "30s"
burst = 2
`

func TestLoadSiteFile(t *testing.T) {
	site, err := config.LoadSiteFile(writeSite(t, validSite))
	gt.NoError(t, err).Required()

	gt.Array(t, site.Workspaces).Length(1)
	gt.Array(t, site.Teams).Length(1)
	gt.Array(t, site.Workers).Length(1)
	gt.Array(t, site.SystemActions).Length(3)
	gt.Value(t, site.Schedule.Vitals).Equal("@every 1s")
	gt.Value(t, site.Schedule.Graph).Equal("*/5 * * * *")
	gt.Number(t, site.EventLimit()).Equal(8)
	gt.Value(t, site.AlertInterval()).Equal(30 * time.Second)
	gt.Number(t, site.Alert.Burst).Equal(2)

	reg := site.Registry()
	gt.NoError(t, reg.Validate())
	w, err := reg.Worker(types.WorkerID("W001"))
	gt.NoError(t, err).Required()
	gt.Value(t, w.TeamID).Equal(types.TeamID("T001"))
	gt.Value(t, w.Role).Equal("Production team 1")
}

func TestLoadSiteFile_Defaults(t *testing.T) {
	site, err := config.LoadSiteFile(writeSite(t, `
[[workspace]]
id = "WS001"
name = "Assembly"
`))
	gt.NoError(t, err).Required()

	gt.Value(t, site.Schedule.Vitals).Equal(config.DefaultVitalsSchedule)
	gt.Value(t, site.Schedule.Graph).Equal(config.DefaultGraphSchedule)
	gt.Number(t, site.EventLimit()).Equal(config.DefaultEventLimit)
	gt.Value(t, site.AlertInterval()).Equal(10 * time.Second)
	gt.Number(t, site.Alert.Burst).Equal(config.DefaultAlertBurst)
	gt.Array(t, site.SystemActions).Length(len(model.DefaultSystemActions))
}

func TestLoadSiteFile_ZeroEventLimit(t *testing.T) {
	site, err := config.LoadSiteFile(writeSite(t, `
[graph]
event_limit = 0
`))
	gt.NoError(t, err).Required()
	gt.Number(t, site.EventLimit()).Equal(0)
}

func TestLoadSiteFile_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "broken TOML",
			content: `[[workspace]`,
			wantErr: config.ErrInvalidConfig,
		},
		{
			name: "invalid workspace ID",
			content: `
[[workspace]]
id = "bad id"
name = "Assembly"
`,
			wantErr: types.ErrInvalidID,
		},
		{
			name: "missing team name",
			content: `
[[workspace]]
id = "WS001"
name = "Assembly"

[[team]]
id = "T001"
workspace = "WS001"
`,
			wantErr: config.ErrMissingName,
		},
		{
			name: "duplicate workspace",
			content: `
[[workspace]]
id = "WS001"
name = "Assembly"

[[workspace]]
id = "WS001"
name = "Packing"
`,
			wantErr: config.ErrDuplicateID,
		},
		{
			name: "duplicate worker",
			content: `
[[workspace]]
id = "WS001"
name = "Assembly"

[[team]]
id = "T001"
name = "Team A"
workspace = "WS001"

[[worker]]
id = "W001"
name = "Kim Cheolsu"
team = "T001"

[[worker]]
id = "W001"
name = "Lee Younghee"
team = "T001"
`,
			wantErr: config.ErrDuplicateID,
		},
		{
			name: "team with unknown workspace",
			content: `
[[team]]
id = "T001"
name = "Team A"
workspace = "WS404"
`,
			wantErr: config.ErrUnknownReference,
		},
		{
			name: "worker with unknown team",
			content: `
[[workspace]]
id = "WS001"
name = "Assembly"

[[worker]]
id = "W001"
name = "Kim Cheolsu"
team = "T404"
`,
			wantErr: config.ErrUnknownReference,
		},
		{
			name: "empty system action",
			content: `
system_actions = ["stop line", ""]
`,
			wantErr: config.ErrInvalidConfig,
		},
		{
			name: "invalid schedule",
			content: `
[schedule]
vitals = "every two seconds"
`,
			wantErr: config.ErrInvalidSchedule,
		},
		{
			name: "negative event limit",
			content: `
[graph]
event_limit = -1
`,
			wantErr: config.ErrInvalidConfig,
		},
		{
			name: "invalid alert interval",
			content: `
[alert]
interval = "soon"
`,
			wantErr: config.ErrInvalidConfig,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.LoadSiteFile(writeSite(t, tc.content))
			gt.Error(t, err).Is(tc.wantErr)
		})
	}
}

func TestLoadSiteFile_NotFound(t *testing.T) {
	_, err := config.LoadSiteFile(filepath.Join(t.TempDir(), "missing.toml"))
	gt.Error(t, err).Is(config.ErrConfigNotFound)
}

func TestDefaultSiteFile(t *testing.T) {
	site := config.DefaultSiteFile()
	gt.NoError(t, site.Validate())

	gt.Array(t, site.Workspaces).Length(3)
	gt.Array(t, site.Teams).Length(4)
	gt.Array(t, site.Workers).Length(10)
	gt.Value(t, site.Workers[0].ID).Equal("W001")
	gt.Value(t, site.Workers[9].ID).Equal("W010")
	gt.Value(t, site.Workers[4].Team).Equal("T001")
	gt.Value(t, site.Workers[7].Team).Equal("T004")

	reg := site.Registry()
	gt.NoError(t, reg.Validate())
	gt.Array(t, reg.Workers()).Length(10)
}

func TestSite_Configure(t *testing.T) {
	t.Run("built-in site without path", func(t *testing.T) {
		var s config.Site
		site, err := s.Configure()
		gt.NoError(t, err).Required()
		gt.Array(t, site.Workers).Length(10)
	})
}
