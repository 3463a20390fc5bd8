package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/luxyvenom/aimonitor/pkg/domain/interfaces"
	"github.com/luxyvenom/aimonitor/pkg/domain/model"
	"github.com/luxyvenom/aimonitor/pkg/domain/types"
	"github.com/luxyvenom/aimonitor/pkg/repository/memory"
	"github.com/m-mizutani/gt"
)

func runGraphRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Latest is nil before first publish", func(t *testing.T) {
		repo := newRepo(t)
		g, err := repo.Graph().Latest(context.Background())
		gt.NoError(t, err).Required()
		gt.Value(t, g).Nil()
	})

	t.Run("Put replaces the snapshot", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		first := model.NewGraph(baseTime)
		gt.NoError(t, repo.Graph().Put(ctx, first)).Required()

		second := model.NewGraph(baseTime.Add(4 * time.Second))
		second.Nodes = append(second.Nodes,
			model.NewGraphNode("WS001", "Floor 1", &model.WorkspaceData{WorkspaceID: "WS001"}))
		gt.NoError(t, repo.Graph().Put(ctx, second)).Required()

		latest, err := repo.Graph().Latest(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, latest.Nodes).Length(1)
		gt.Value(t, latest.GeneratedAt).Equal(second.GeneratedAt)
	})

	t.Run("Put rejects inconsistent graph and keeps the previous one", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		good := model.NewGraph(baseTime)
		gt.NoError(t, repo.Graph().Put(ctx, good)).Required()

		bad := model.NewGraph(baseTime)
		bad.Edges = append(bad.Edges, &model.GraphEdge{
			ID: "A-B", Source: "A", Target: "B", Type: types.EdgeTypeSameTeam,
		})
		gt.Error(t, repo.Graph().Put(ctx, bad)).Is(model.ErrDanglingEdge)
		gt.Error(t, repo.Graph().Put(ctx, nil))

		latest, err := repo.Graph().Latest(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, latest).Equal(good)
	})
}

func TestGraphRepository_Memory(t *testing.T) {
	runGraphRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}
