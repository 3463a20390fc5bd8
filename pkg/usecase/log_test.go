package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/luxyvenom/aimonitor/pkg/domain/model"
	"github.com/luxyvenom/aimonitor/pkg/repository/memory"
	"github.com/luxyvenom/aimonitor/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func TestLogUseCase(t *testing.T) {
	t.Run("append then query red zone", func(t *testing.T) {
		uc := usecase.NewLogUseCase(memory.New())
		ctx := context.Background()

		for i, score := range []int{10, 90, 45, 70} {
			_, err := uc.Append(ctx, &model.LogEntry{
				Timestamp: testNow.Add(time.Duration(i) * time.Minute),
				WorkerID:  "W001",
				RiskScore: score,
			})
			gt.NoError(t, err).Required()
		}

		red, err := uc.Query(ctx, model.LogFilter{OnlyRedZone: true})
		gt.NoError(t, err).Required()
		gt.Array(t, red).Length(2)
		gt.Number(t, red[0].RiskScore).Equal(70)
		gt.Number(t, red[1].RiskScore).Equal(90)

		n, err := uc.CountRedZone(ctx)
		gt.NoError(t, err).Required()
		gt.Number(t, n).Equal(2)
	})

	t.Run("AppendAll stops at the first invalid entry", func(t *testing.T) {
		uc := usecase.NewLogUseCase(memory.New())
		ctx := context.Background()

		n, err := uc.AppendAll(ctx, []*model.LogEntry{
			{Timestamp: testNow, WorkerID: "W001", RiskScore: 10},
			{Timestamp: testNow, RiskScore: 10},
			{Timestamp: testNow, WorkerID: "W002", RiskScore: 10},
		})
		gt.Error(t, err).Is(model.ErrMissingRequired)
		gt.Number(t, n).Equal(1)

		count, err := uc.Count(ctx, nil)
		gt.NoError(t, err).Required()
		gt.Number(t, count).Equal(1)
	})
}
