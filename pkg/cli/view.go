package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/luxyvenom/aimonitor/pkg/domain/model"
	"github.com/luxyvenom/aimonitor/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

var errUnknownFormat = goerr.New("unknown output format")

func checkFormat(format string, allowed ...string) error {
	if !slices.Contains(allowed, format) {
		return goerr.Wrap(errUnknownFormat, "unsupported output format",
			goerr.V("format", format), goerr.V("allowed", strings.Join(allowed, "|")))
	}
	return nil
}

// writeOutput encodes v as JSON or YAML, or fills and renders a table for
// the table format
func writeOutput(w io.Writer, format string, v any, fill func(t *table)) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return goerr.Wrap(err, "failed to encode JSON")
		}
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return goerr.Wrap(err, "failed to encode YAML")
		}
		if err := enc.Close(); err != nil {
			return goerr.Wrap(err, "failed to flush YAML")
		}
	case formatTable:
		if fill == nil {
			return goerr.Wrap(errUnknownFormat, "table output is not available", goerr.V("format", format))
		}
		t := newTable()
		fill(t)
		if err := t.Render(w); err != nil {
			return err
		}
	default:
		return goerr.Wrap(errUnknownFormat, "unsupported output format", goerr.V("format", format))
	}
	return nil
}

var zoneColors = map[types.RiskLevel]*color.Color{
	types.RiskLevelRed:    color.New(color.FgRed, color.Bold),
	types.RiskLevelYellow: color.New(color.FgYellow),
	types.RiskLevelGreen:  color.New(color.FgGreen),
}

// table aligns tab separated rows and colours each row by its zone. Colour
// codes are added only after alignment so they never count towards column
// widths.
type table struct {
	buf    bytes.Buffer
	tw     *tabwriter.Writer
	levels []types.RiskLevel
	colors map[types.RiskLevel]*color.Color
}

func newTable() *table {
	t := &table{colors: zoneColors}
	t.tw = tabwriter.NewWriter(&t.buf, 0, 0, 2, ' ', 0)
	return t
}

// Line adds an uncoloured row
func (t *table) Line(format string, args ...any) {
	t.Row("", format, args...)
}

// Row adds a row coloured by level. format must not contain a newline.
func (t *table) Row(level types.RiskLevel, format string, args ...any) {
	fmt.Fprintf(t.tw, format+"\n", args...)
	t.levels = append(t.levels, level)
}

func (t *table) Render(w io.Writer) error {
	if err := t.tw.Flush(); err != nil {
		return goerr.Wrap(err, "failed to flush table")
	}
	lines := strings.Split(strings.TrimSuffix(t.buf.String(), "\n"), "\n")
	if t.buf.Len() == 0 {
		lines = nil
	}
	for i, line := range lines {
		if i < len(t.levels) {
			if c, ok := t.colors[t.levels[i]]; ok {
				line = c.Sprint(line)
			}
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return goerr.Wrap(err, "failed to write table")
		}
	}
	return nil
}

type logEntryView struct {
	ID              string    `json:"id" yaml:"id"`
	Timestamp       time.Time `json:"timestamp" yaml:"timestamp"`
	WorkerID        string    `json:"worker_id" yaml:"worker_id"`
	WorkerName      string    `json:"worker_name" yaml:"worker_name"`
	RiskScore       int       `json:"risk_score" yaml:"risk_score"`
	RiskLevel       string    `json:"risk_level" yaml:"risk_level"`
	SystemAction    string    `json:"system_action" yaml:"system_action"`
	ManagerResponse string    `json:"manager_response" yaml:"manager_response"`
	Details         string    `json:"details,omitempty" yaml:"details,omitempty"`
	PhysicalLoad    *float64  `json:"physical_load,omitempty" yaml:"physical_load,omitempty"`
	CognitiveLoad   *float64  `json:"cognitive_load,omitempty" yaml:"cognitive_load,omitempty"`
}

func toLogEntryView(e *model.LogEntry) logEntryView {
	view := logEntryView{
		ID:              string(e.ID),
		Timestamp:       e.Timestamp,
		WorkerID:        e.WorkerID.String(),
		WorkerName:      e.WorkerName,
		RiskScore:       e.RiskScore,
		RiskLevel:       e.RiskLevel.String(),
		SystemAction:    e.SystemAction,
		ManagerResponse: e.ManagerResponse.String(),
		Details:         e.Details,
	}
	if e.Loads != nil {
		view.PhysicalLoad = &e.Loads.Physical
		view.CognitiveLoad = &e.Loads.Cognitive
	}
	return view
}

func writeLogTable(t *table, entries []*model.LogEntry) {
	t.Line("TIME\tWORKER\tSCORE\tZONE\tACTION\tRESPONSE")
	for _, e := range entries {
		t.Row(e.RiskLevel, "%s\t%s %s\t%d\t%s\t%s\t%s",
			e.Timestamp.Local().Format(time.DateTime),
			e.WorkerID, e.WorkerName,
			e.RiskScore,
			e.RiskLevel,
			e.SystemAction,
			e.ManagerResponse,
		)
	}
}

type graphView struct {
	GeneratedAt time.Time       `json:"generated_at" yaml:"generated_at"`
	Nodes       []graphNodeView `json:"nodes" yaml:"nodes"`
	Edges       []graphEdgeView `json:"edges" yaml:"edges"`
}

type graphNodeView struct {
	ID    string         `json:"id" yaml:"id"`
	Type  string         `json:"type" yaml:"type"`
	Label string         `json:"label" yaml:"label"`
	Size  float64        `json:"size" yaml:"size"`
	Color string         `json:"color" yaml:"color"`
	Data  map[string]any `json:"data" yaml:"data"`
}

type graphEdgeView struct {
	ID     string  `json:"id" yaml:"id"`
	Source string  `json:"source" yaml:"source"`
	Target string  `json:"target" yaml:"target"`
	Type   string  `json:"type" yaml:"type"`
	Weight float64 `json:"weight" yaml:"weight"`
	Color  string  `json:"color" yaml:"color"`
	Width  float64 `json:"width" yaml:"width"`
	Label  string  `json:"label,omitempty" yaml:"label,omitempty"`
}

// nodeDataView flattens a node payload into plain key/value data
type nodeDataView map[string]any

func (v nodeDataView) VisitWorker(d *model.WorkerData) {
	v["worker_id"] = d.WorkerID.String()
	v["worker_name"] = d.WorkerName
	v["team_id"] = d.TeamID.String()
	v["workspace_id"] = d.WorkspaceID.String()
	if d.CurrentRiskLevel != "" {
		v["current_risk_level"] = d.CurrentRiskLevel.String()
		v["risk_score"] = d.RiskScore
	}
}

func (v nodeDataView) VisitEvent(d *model.EventData) {
	v["event_id"] = d.EventID.String()
	v["timestamp"] = d.Timestamp
	v["risk_level"] = d.RiskLevel.String()
	v["risk_score"] = d.RiskScore
	if d.WorkerID != "" {
		v["worker_id"] = d.WorkerID.String()
	}
	v["description"] = d.Description
}

func (v nodeDataView) VisitWorkspace(d *model.WorkspaceData) {
	v["workspace_id"] = d.WorkspaceID.String()
	v["workspace_name"] = d.WorkspaceName
	v["location"] = d.Location
	v["worker_count"] = d.WorkerCount
}

func (v nodeDataView) VisitTeam(d *model.TeamData) {
	v["team_id"] = d.TeamID.String()
	v["team_name"] = d.TeamName
	v["workspace_id"] = d.WorkspaceID.String()
	v["worker_count"] = d.WorkerCount
}

func (v nodeDataView) VisitRisk(d *model.RiskData) {
	v["risk_id"] = d.RiskID
	v["risk_type"] = string(d.RiskType)
	v["level"] = d.Level.String()
	v["score"] = d.Score
}

func toGraphView(g *model.Graph) graphView {
	view := graphView{
		GeneratedAt: g.GeneratedAt,
		Nodes:       make([]graphNodeView, 0, len(g.Nodes)),
		Edges:       make([]graphEdgeView, 0, len(g.Edges)),
	}
	for _, n := range g.Nodes {
		data := nodeDataView{}
		n.Data.Accept(data)
		view.Nodes = append(view.Nodes, graphNodeView{
			ID:    n.ID,
			Type:  n.Type.String(),
			Label: n.Label,
			Size:  n.Size,
			Color: n.Color,
			Data:  data,
		})
	}
	for _, e := range g.Edges {
		view.Edges = append(view.Edges, graphEdgeView{
			ID:     e.ID,
			Source: e.Source,
			Target: e.Target,
			Type:   e.Type.String(),
			Weight: e.Weight,
			Color:  e.Color,
			Width:  e.Width,
			Label:  e.Label,
		})
	}
	return view
}

type reportView struct {
	Summary summaryView   `json:"summary" yaml:"summary"`
	Trend   []trendView   `json:"trend" yaml:"trend"`
	Heatmap []heatmapView `json:"heatmap" yaml:"heatmap"`
}

type summaryView struct {
	GeneratedAt     time.Time      `json:"generated_at" yaml:"generated_at"`
	EntryCount      int            `json:"entry_count" yaml:"entry_count"`
	RedZoneCount    int            `json:"red_zone_count" yaml:"red_zone_count"`
	PendingRedZone  int            `json:"pending_red_zone" yaml:"pending_red_zone"`
	CountByLevel    map[string]int `json:"count_by_level" yaml:"count_by_level"`
	CountByResponse map[string]int `json:"count_by_response" yaml:"count_by_response"`
}

type trendView struct {
	Date                 string `json:"date" yaml:"date"`
	AverageRiskScore     int    `json:"average_risk_score" yaml:"average_risk_score"`
	AveragePhysicalLoad  int    `json:"average_physical_load" yaml:"average_physical_load"`
	AverageCognitiveLoad int    `json:"average_cognitive_load" yaml:"average_cognitive_load"`
	EntryCount           int    `json:"entry_count" yaml:"entry_count"`
	WorkerCount          int    `json:"worker_count" yaml:"worker_count"`
	RedZoneCount         int    `json:"red_zone_count" yaml:"red_zone_count"`
}

type heatmapView struct {
	WorkspaceID string `json:"workspace_id" yaml:"workspace_id"`
	TeamID      string `json:"team_id" yaml:"team_id"`
	Date        string `json:"date" yaml:"date"`
	RiskScore   int    `json:"risk_score" yaml:"risk_score"`
	RiskLevel   string `json:"risk_level,omitempty" yaml:"risk_level,omitempty"`
	EntryCount  int    `json:"entry_count" yaml:"entry_count"`
}

func toSummaryView(s *model.ReportSummary) summaryView {
	view := summaryView{
		GeneratedAt:     s.GeneratedAt,
		EntryCount:      s.EntryCount,
		RedZoneCount:    s.RedZoneCount,
		PendingRedZone:  s.PendingRedZone,
		CountByLevel:    make(map[string]int, len(s.CountByLevel)),
		CountByResponse: make(map[string]int, len(s.CountByResponse)),
	}
	for level, n := range s.CountByLevel {
		view.CountByLevel[level.String()] = n
	}
	for resp, n := range s.CountByResponse {
		view.CountByResponse[resp.String()] = n
	}
	return view
}

func toTrendViews(points []*model.TrendPoint) []trendView {
	views := make([]trendView, 0, len(points))
	for _, p := range points {
		views = append(views, trendView{
			Date:                 p.Date,
			AverageRiskScore:     p.AverageRiskScore,
			AveragePhysicalLoad:  p.AveragePhysicalLoad,
			AverageCognitiveLoad: p.AverageCognitiveLoad,
			EntryCount:           p.EntryCount,
			WorkerCount:          p.WorkerCount,
			RedZoneCount:         p.RedZoneCount,
		})
	}
	return views
}

func toHeatmapViews(cells []*model.HeatmapCell) []heatmapView {
	views := make([]heatmapView, 0, len(cells))
	for _, c := range cells {
		views = append(views, heatmapView{
			WorkspaceID: c.WorkspaceID.String(),
			TeamID:      c.TeamID.String(),
			Date:        c.Date,
			RiskScore:   c.RiskScore,
			RiskLevel:   c.RiskLevel.String(),
			EntryCount:  c.EntryCount,
		})
	}
	return views
}

func writeReportTable(t *table, report reportView) {
	s := report.Summary
	t.Line("Generated at\t%s", s.GeneratedAt.Local().Format(time.DateTime))
	t.Line("Entries\t%d", s.EntryCount)
	t.Line("Red zone\t%d (%d pending)", s.RedZoneCount, s.PendingRedZone)
	for _, level := range types.AllRiskLevels() {
		t.Row(level, "  %s\t%d", level, s.CountByLevel[level.String()])
	}
	for _, resp := range types.AllManagerResponses() {
		t.Line("  response %s\t%d", resp, s.CountByResponse[resp.String()])
	}

	t.Line("")
	t.Line("DATE\tAVG SCORE\tAVG PHYSICAL\tAVG COGNITIVE\tENTRIES\tWORKERS\tRED")
	for _, p := range report.Trend {
		t.Line("%s\t%d\t%d\t%d\t%d\t%d\t%d", p.Date, p.AverageRiskScore,
			p.AveragePhysicalLoad, p.AverageCognitiveLoad, p.EntryCount, p.WorkerCount, p.RedZoneCount)
	}

	t.Line("")
	t.Line("WORKSPACE\tTEAM\tDATE\tSCORE\tZONE\tENTRIES")
	for _, c := range report.Heatmap {
		zone := "-"
		if c.RiskLevel != "" {
			zone = c.RiskLevel
		}
		t.Row(types.RiskLevel(c.RiskLevel), "%s\t%s\t%s\t%d\t%s\t%d", c.WorkspaceID, c.TeamID, c.Date, c.RiskScore, zone, c.EntryCount)
	}
}

type assessmentView struct {
	WorkerID      string    `json:"worker_id" yaml:"worker_id"`
	WorkerName    string    `json:"worker_name" yaml:"worker_name"`
	Role          string    `json:"role" yaml:"role"`
	PhysicalLoad  float64   `json:"physical_load" yaml:"physical_load"`
	CognitiveLoad float64   `json:"cognitive_load" yaml:"cognitive_load"`
	RiskScore     int       `json:"risk_score" yaml:"risk_score"`
	RiskLevel     string    `json:"risk_level" yaml:"risk_level"`
	LumbarRisk    string    `json:"lumbar_risk" yaml:"lumbar_risk"`
	HeartRate     int       `json:"heart_rate" yaml:"heart_rate"`
	Detail        string    `json:"detail,omitempty" yaml:"detail,omitempty"`
	Timestamp     time.Time `json:"timestamp" yaml:"timestamp"`
}

func toAssessmentViews(assessments []*model.WorkerAssessment) []assessmentView {
	views := make([]assessmentView, 0, len(assessments))
	for _, a := range assessments {
		views = append(views, assessmentView{
			WorkerID:      a.WorkerID.String(),
			WorkerName:    a.WorkerName,
			Role:          a.Role,
			PhysicalLoad:  a.Assessment.PhysicalLoad,
			CognitiveLoad: a.Assessment.CognitiveLoad,
			RiskScore:     a.Assessment.RiskScore,
			RiskLevel:     a.Assessment.RiskLevel.String(),
			LumbarRisk:    a.LumbarRisk.String(),
			HeartRate:     a.HeartRate,
			Detail:        a.Detail,
			Timestamp:     a.Timestamp,
		})
	}
	return views
}
