package usecase

import (
	"context"
	"fmt"

	"github.com/luxyvenom/aimonitor/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// ValidationIssue represents a single problem found while auditing the site
// records or the stored log
type ValidationIssue struct {
	Subject  string
	Message  string
	Expected string
	Actual   string
}

// ValidationResult holds the results of an audit
type ValidationResult struct {
	Issues []ValidationIssue
}

// HasIssues returns true if there are any validation issues
func (r *ValidationResult) HasIssues() bool {
	return len(r.Issues) > 0
}

// AddIssue adds a validation issue to the result
func (r *ValidationResult) AddIssue(issue ValidationIssue) {
	r.Issues = append(r.Issues, issue)
}

// AuditSite reports organisational gaps that are legal but most likely
// configuration mistakes: workspaces without teams and teams without
// workers. Broken references are rejected earlier by SiteRegistry.Validate.
func (uc *UseCases) AuditSite() *ValidationResult {
	result := &ValidationResult{}

	teamsPerWorkspace := make(map[string]int)
	for _, team := range uc.site.Teams() {
		teamsPerWorkspace[team.WorkspaceID.String()]++
	}
	workersPerTeam := make(map[string]int)
	for _, w := range uc.site.Workers() {
		workersPerTeam[w.TeamID.String()]++
	}

	for _, ws := range uc.site.Workspaces() {
		if teamsPerWorkspace[ws.ID.String()] == 0 {
			result.AddIssue(ValidationIssue{
				Subject:  ws.ID.String(),
				Message:  "workspace has no team",
				Expected: "at least 1 team",
				Actual:   "0",
			})
		}
	}
	for _, team := range uc.site.Teams() {
		if workersPerTeam[team.ID.String()] == 0 {
			result.AddIssue(ValidationIssue{
				Subject:  team.ID.String(),
				Message:  "team has no worker",
				Expected: "at least 1 worker",
				Actual:   "0",
			})
		}
	}

	return result
}

// AuditLog re-checks every stored entry against the classifier and the
// entry rules. It does NOT modify any data.
func (uc *UseCases) AuditLog(ctx context.Context) (*ValidationResult, error) {
	entries, err := uc.Log.Query(ctx, model.LogFilter{})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read log for audit")
	}

	result := &ValidationResult{}
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			result.AddIssue(ValidationIssue{
				Subject:  string(e.ID),
				Message:  "stored entry is invalid",
				Expected: "valid entry",
				Actual:   err.Error(),
			})
			continue
		}
		if expected := model.ClassifyRiskScore(e.RiskScore); e.RiskLevel != expected {
			result.AddIssue(ValidationIssue{
				Subject:  string(e.ID),
				Message:  fmt.Sprintf("risk level does not match score %d", e.RiskScore),
				Expected: expected.String(),
				Actual:   e.RiskLevel.String(),
			})
		}
	}

	for i := 1; i < len(entries); i++ {
		if entries[i].Timestamp.After(entries[i-1].Timestamp) {
			result.AddIssue(ValidationIssue{
				Subject:  string(entries[i].ID),
				Message:  "log is not ordered newest first",
				Expected: "timestamp not after " + entries[i-1].Timestamp.String(),
				Actual:   entries[i].Timestamp.String(),
			})
		}
	}

	return result, nil
}
