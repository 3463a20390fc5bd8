package cli_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/luxyvenom/aimonitor/pkg/cli"
	"github.com/m-mizutani/gt"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	return cli.Run(context.Background(), append([]string{"aimonitor", "--log-level", "error"}, args...), "test")
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "site.toml")
	gt.NoError(t, os.WriteFile(configPath, []byte(content), 0o600)).Required()
	return configPath
}

const siteConfig = `
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

[[worker]]
id = "W002"
name = "Lee Younghee"
team = "T001"
role = "Production team 1"

[schedule]
vitals = "@every 1s"
graph = "@every 1s"
`

func TestRun_ValidateCommand_ValidConfig(t *testing.T) {
	err := run(t, "validate", "--config", writeConfig(t, siteConfig))
	gt.NoError(t, err)
}

func TestRun_ValidateCommand_BuiltInSite(t *testing.T) {
	gt.NoError(t, run(t, "validate", "--strict"))
}

func TestRun_ValidateCommand_GeneratedLog(t *testing.T) {
	t.Run("generated log passes the strict audit", func(t *testing.T) {
		gt.NoError(t, run(t, "validate", "--count", "30", "--seed", "3", "--strict"))
	})

	t.Run("empty log", func(t *testing.T) {
		gt.NoError(t, run(t, "validate", "--count", "0", "--strict"))
	})

	t.Run("negative count is rejected", func(t *testing.T) {
		gt.Value(t, run(t, "validate", "--count", "-1")).NotNil()
	})
}

func TestRun_ValidateCommand_InvalidConfig(t *testing.T) {
	configPath := writeConfig(t, `
[[team]]
id = "T001"
name = "Team A"
workspace = "WS404"
`)
	err := run(t, "validate", "--config", configPath)
	gt.Value(t, err).NotNil()
}

func TestRun_ValidateCommand_MissingConfig(t *testing.T) {
	err := run(t, "validate", "--config", filepath.Join(t.TempDir(), "nonexistent.toml"))
	gt.Value(t, err).NotNil()
}

func TestRun_ValidateCommand_AuditFindings(t *testing.T) {
	configPath := writeConfig(t, `
[[workspace]]
id = "WS001"
name = "Assembly"

[[team]]
id = "T001"
name = "Empty team"
workspace = "WS001"
`)

	t.Run("reported as warnings by default", func(t *testing.T) {
		gt.NoError(t, run(t, "validate", "--config", configPath))
	})

	t.Run("fail in strict mode", func(t *testing.T) {
		gt.Value(t, run(t, "validate", "--config", configPath, "--strict")).NotNil()
	})
}

func TestRun_LogCommand(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{name: "table", args: []string{"log", "--seed", "7"}},
		{name: "json red only", args: []string{"log", "--seed", "7", "--red-only", "--format", "json"}},
		{name: "yaml with site", args: []string{"log", "--seed", "7", "-n", "5", "--format", "yaml", "--config", writeConfig(t, siteConfig)}},
		{name: "empty log", args: []string{"log", "--count", "0", "--format", "json"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gt.NoError(t, run(t, tc.args...))
		})
	}
}

func TestRun_LogCommand_Errors(t *testing.T) {
	t.Run("unknown format", func(t *testing.T) {
		gt.Value(t, run(t, "log", "--format", "xml")).NotNil()
	})

	t.Run("negative count", func(t *testing.T) {
		gt.Value(t, run(t, "log", "--count", "-1")).NotNil()
	})
}

func TestRun_GraphCommand(t *testing.T) {
	gt.NoError(t, run(t, "graph", "--seed", "3"))
	gt.NoError(t, run(t, "graph", "--seed", "3", "--format", "yaml", "--config", writeConfig(t, siteConfig)))

	// graphs have no table rendering
	gt.Value(t, run(t, "graph", "--format", "table")).NotNil()
}

func TestRun_ReportCommand(t *testing.T) {
	gt.NoError(t, run(t, "report", "--seed", "11"))
	gt.NoError(t, run(t, "report", "--seed", "11", "--days", "3", "--format", "json"))
	gt.NoError(t, run(t, "report", "--count", "0", "--format", "yaml"))

	gt.Value(t, run(t, "report", "--days", "0")).NotNil()
}

func TestRun_SimulateCommand(t *testing.T) {
	err := run(t, "simulate",
		"--config", writeConfig(t, siteConfig),
		"--duration", "300ms",
		"--seed", "5",
		"--format", "json",
	)
	gt.NoError(t, err)
}

func TestRun_SimulateCommand_InvalidDuration(t *testing.T) {
	gt.Value(t, run(t, "simulate", "--duration", "-1s")).NotNil()
}
