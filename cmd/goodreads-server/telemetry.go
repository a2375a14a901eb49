package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/katzenj/goodreads-analytics/lib/restyutil"
	"github.com/katzenj/goodreads-analytics/lib/serviceutil"
	"github.com/katzenj/goodreads-analytics/lib/telemetry"
	"github.com/katzenj/goodreads-analytics/services/goodreads"
)

func InitTelemetry(ctx context.Context, verbose bool, client *goodreads.Client) {
	telemetry.InitSlog(verbose)

	if verbose {
		slog.DebugContext(ctx, "verbose logging enabled")
	}

	err := telemetry.SetupFromEnv(ctx, "goodreads-server")
	if os.IsNotExist(err) {
		slog.InfoContext(ctx, "no telemetry.json5 found, exporters disabled")
	} else if err != nil {
		serviceutil.Fatal("setup telemetry", err)
	} else {
		go func() {
			<-ctx.Done()
			telemetry.Shutdown(context.Background())
		}()
	}
	telemetry.InstrumentPerfStats(ctx)

	if !verbose {
		return
	}

	client.DumpMessages(
		restyutil.NewFilesystemOutput(".dev/resty/goodreads"),
	)
}
