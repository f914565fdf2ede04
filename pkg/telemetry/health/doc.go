// Package health probes the upstream cat API on a cron schedule.
//
// A Prober runs its ProbeFunc on the configured schedule, stores the last
// result and reports it to an optional gauge (catascii_upstream_up). The
// admin listener exposes the last result through StatusHandler:
//
//	prober := health.NewProber(health.ProberConfig{
//		Schedule: "@every 1m",
//		Probe:    func(ctx context.Context) error { _, err := client.RandomImage(ctx); return err },
//		Gauge:    collector,
//	})
//	if err := prober.Start(ctx); err != nil { ... }
//	defer prober.Stop()
//
// Common schedules:
//   - "@every 30s"
//   - "*/5 * * * *" - every five minutes
package health
