package usecase

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/luxyvenom/aimonitor/pkg/domain/interfaces"
	"github.com/luxyvenom/aimonitor/pkg/domain/model"
	"github.com/luxyvenom/aimonitor/pkg/domain/types"
	"github.com/luxyvenom/aimonitor/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

const dateLayout = "2006-01-02"

// ReportUseCase summarises the risk log
type ReportUseCase struct {
	repo     interfaces.Repository
	site     *model.SiteRegistry
	renderer interfaces.ReportRenderer
	now      func() time.Time
}

func NewReportUseCase(repo interfaces.Repository, site *model.SiteRegistry, renderer interfaces.ReportRenderer, now func() time.Time) *ReportUseCase {
	if now == nil {
		now = time.Now
	}
	if site == nil {
		site = model.NewSiteRegistry()
	}
	return &ReportUseCase{
		repo:     repo,
		site:     site,
		renderer: renderer,
		now:      now,
	}
}

// Generate summarises the log and hands the summary to the renderer. A
// renderer failure is returned wrapping ErrReportGeneration; the log itself
// is only read.
func (uc *ReportUseCase) Generate(ctx context.Context) (*model.ReportSummary, error) {
	entries, err := uc.repo.Log().List(ctx, model.LogFilter{})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list log entries")
	}

	summary := &model.ReportSummary{
		GeneratedAt:     uc.now(),
		EntryCount:      len(entries),
		CountByLevel:    make(map[types.RiskLevel]int),
		CountByResponse: make(map[types.ManagerResponse]int),
	}
	for _, l := range types.AllRiskLevels() {
		summary.CountByLevel[l] = 0
	}
	for _, r := range types.AllManagerResponses() {
		summary.CountByResponse[r] = 0
	}

	for _, e := range entries {
		summary.CountByLevel[e.RiskLevel]++
		summary.CountByResponse[e.ManagerResponse]++
		if e.IsRedZone() {
			summary.RedZoneCount++
			if e.ManagerResponse == types.ManagerResponsePending {
				summary.PendingRedZone++
			}
		}
	}

	if uc.renderer != nil {
		if err := uc.renderer.Render(ctx, summary); err != nil {
			return nil, goerr.Wrap(errors.Join(ErrReportGeneration, err), "failed to render report",
				goerr.V("entry_count", summary.EntryCount),
				goerr.V("red_zone_count", summary.RedZoneCount))
		}
	}

	logging.From(ctx).Info("report generated",
		"entry_count", summary.EntryCount,
		"red_zone_count", summary.RedZoneCount,
	)
	return summary, nil
}

// Trend returns one point per day for the last days days, oldest first.
// Days are calendar days in UTC and the last one is today.
func (uc *ReportUseCase) Trend(ctx context.Context, days int) ([]*model.TrendPoint, error) {
	dates, err := uc.lastDays(days)
	if err != nil {
		return nil, err
	}

	entries, err := uc.repo.Log().List(ctx, model.LogFilter{})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list log entries")
	}

	type acc struct {
		sum, count, red     int
		physical, cognitive float64
		loaded              int
		workers             map[types.WorkerID]bool
	}
	byDate := make(map[string]*acc, len(dates))
	for _, d := range dates {
		byDate[d] = &acc{workers: make(map[types.WorkerID]bool)}
	}

	for _, e := range entries {
		a, ok := byDate[e.Timestamp.UTC().Format(dateLayout)]
		if !ok {
			continue
		}
		a.sum += e.RiskScore
		a.count++
		a.workers[e.WorkerID] = true
		if e.IsRedZone() {
			a.red++
		}
		if e.Loads != nil {
			a.physical += e.Loads.Physical
			a.cognitive += e.Loads.Cognitive
			a.loaded++
		}
	}

	points := make([]*model.TrendPoint, 0, len(dates))
	for _, d := range dates {
		a := byDate[d]
		points = append(points, &model.TrendPoint{
			Date:             d,
			AverageRiskScore:     average(a.sum, a.count),
			AveragePhysicalLoad:  averageLoad(a.physical, a.loaded),
			AverageCognitiveLoad: averageLoad(a.cognitive, a.loaded),
			EntryCount:           a.count,
			WorkerCount:          len(a.workers),
			RedZoneCount:         a.red,
		})
	}
	return points, nil
}

// Heatmap returns the average risk score of every team per day, ordered by
// workspace, team and date as registered in the site. Entries of workers
// unknown to the site are not counted. Cells without entries have an empty
// RiskLevel.
func (uc *ReportUseCase) Heatmap(ctx context.Context, days int) ([]*model.HeatmapCell, error) {
	dates, err := uc.lastDays(days)
	if err != nil {
		return nil, err
	}

	entries, err := uc.repo.Log().List(ctx, model.LogFilter{})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list log entries")
	}

	workerTeam := make(map[types.WorkerID]types.TeamID)
	for _, w := range uc.site.Workers() {
		workerTeam[w.ID] = w.TeamID
	}

	type key struct {
		team types.TeamID
		date string
	}
	type acc struct{ sum, count int }
	cells := make(map[key]*acc)
	for _, e := range entries {
		teamID, ok := workerTeam[e.WorkerID]
		if !ok {
			continue
		}
		k := key{team: teamID, date: e.Timestamp.UTC().Format(dateLayout)}
		a, ok := cells[k]
		if !ok {
			a = &acc{}
			cells[k] = a
		}
		a.sum += e.RiskScore
		a.count++
	}

	var result []*model.HeatmapCell
	for _, ws := range uc.site.Workspaces() {
		for _, team := range uc.site.Teams() {
			if team.WorkspaceID != ws.ID {
				continue
			}
			for _, d := range dates {
				cell := &model.HeatmapCell{
					WorkspaceID: ws.ID,
					TeamID:      team.ID,
					Date:        d,
				}
				if a, ok := cells[key{team: team.ID, date: d}]; ok {
					cell.RiskScore = average(a.sum, a.count)
					cell.RiskLevel = model.ClassifyRiskScore(cell.RiskScore)
					cell.EntryCount = a.count
				}
				result = append(result, cell)
			}
		}
	}
	return result, nil
}

func (uc *ReportUseCase) lastDays(days int) ([]string, error) {
	if days <= 0 {
		return nil, goerr.Wrap(ErrInvalidPeriod, "days must be positive", goerr.V(DaysKey, days))
	}

	today := uc.now().UTC()
	dates := make([]string, 0, days)
	for i := days - 1; i >= 0; i-- {
		dates = append(dates, today.AddDate(0, 0, -i).Format(dateLayout))
	}
	return dates, nil
}

func average(sum, count int) int {
	if count == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(count)))
}

func averageLoad(sum float64, count int) int {
	if count == 0 {
		return 0
	}
	return int(math.Round(sum / float64(count)))
}
