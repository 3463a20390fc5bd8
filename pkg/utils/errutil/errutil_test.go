package errutil_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/luxyvenom/aimonitor/pkg/utils/errutil"
	"github.com/luxyvenom/aimonitor/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

func TestHandle(t *testing.T) {
	t.Run("nil error is a no-op", func(t *testing.T) {
		gt.NoError(t, errutil.Handle(context.Background(), nil, "nothing"))
	})

	t.Run("goerr values are logged and error is returned", func(t *testing.T) {
		var buf bytes.Buffer
		ctx := logging.With(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))

		base := goerr.New("append failed", goerr.V("worker_id", "W001"))
		err := errutil.Handle(ctx, base, "failed to record observation")

		gt.Bool(t, errors.Is(err, base)).True()
		gt.String(t, buf.String()).Contains("failed to record observation")
		gt.String(t, buf.String()).Contains("W001")
	})

	t.Run("plain errors are logged", func(t *testing.T) {
		var buf bytes.Buffer
		ctx := logging.With(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))

		err := errutil.Handle(ctx, errors.New("boom"), "tick failed")
		gt.Error(t, err)
		gt.String(t, buf.String()).Contains("boom")
	})
}

func TestHandle_Sentry(t *testing.T) {
	var captured []*sentry.Event
	client, err := sentry.NewClient(sentry.ClientOptions{
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			captured = append(captured, event)
			return nil
		},
	})
	gt.NoError(t, err).Required()

	hub := sentry.CurrentHub()
	prev := hub.Client()
	hub.BindClient(client)
	t.Cleanup(func() { hub.BindClient(prev) })

	var buf bytes.Buffer
	ctx := logging.With(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))
	base := goerr.New("append failed", goerr.V("worker_id", "W001"))
	gt.Error(t, errutil.Handle(ctx, base, "failed to record observation")).Is(base)

	gt.Array(t, captured).Length(1).Required()
	gt.Value(t, captured[0].Tags["message"]).Equal("failed to record observation")
	gt.Value(t, captured[0].Contexts["goerr"]["worker_id"]).Equal(any("W001"))
}
