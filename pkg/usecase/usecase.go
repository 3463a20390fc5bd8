package usecase

import (
	"time"

	"github.com/luxyvenom/aimonitor/pkg/domain/interfaces"
	"github.com/luxyvenom/aimonitor/pkg/domain/model"
)

// DefaultEventLimit is the number of most recent log entries turned into
// event nodes on each graph refresh
const DefaultEventLimit = 5

type UseCases struct {
	repo          interfaces.Repository
	site          *model.SiteRegistry
	notifier      interfaces.Notifier
	renderer      interfaces.ReportRenderer
	now           func() time.Time
	eventLimit    int
	systemActions []string

	Log        *LogUseCase
	Assessment *AssessmentUseCase
	Graph      *GraphUseCase
	Report     *ReportUseCase
}

type Option func(*UseCases)

// WithSite sets the organisational records used for graph building and
// reports. An empty site is used when not given.
func WithSite(site *model.SiteRegistry) Option {
	return func(uc *UseCases) {
		uc.site = site
	}
}

func WithNotifier(notifier interfaces.Notifier) Option {
	return func(uc *UseCases) {
		uc.notifier = notifier
	}
}

func WithReportRenderer(renderer interfaces.ReportRenderer) Option {
	return func(uc *UseCases) {
		uc.renderer = renderer
	}
}

// WithClock replaces time.Now, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

func WithEventLimit(limit int) Option {
	return func(uc *UseCases) {
		uc.eventLimit = limit
	}
}

// WithSystemActions sets the action catalogue, most severe first
func WithSystemActions(actions []string) Option {
	return func(uc *UseCases) {
		uc.systemActions = actions
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:          repo,
		now:           time.Now,
		eventLimit:    DefaultEventLimit,
		systemActions: model.DefaultSystemActions,
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.site == nil {
		uc.site = model.NewSiteRegistry()
	}
	if len(uc.systemActions) == 0 {
		uc.systemActions = model.DefaultSystemActions
	}

	uc.Log = NewLogUseCase(repo)
	uc.Assessment = NewAssessmentUseCase(repo, uc.systemActions, uc.notifier)
	uc.Graph = NewGraphUseCase(repo, uc.site, uc.Assessment, uc.eventLimit, uc.now)
	uc.Report = NewReportUseCase(repo, uc.site, uc.renderer, uc.now)

	return uc
}

// Site returns the organisational records the use cases work on
func (uc *UseCases) Site() *model.SiteRegistry {
	return uc.site
}
