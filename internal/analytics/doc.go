// Package analytics provides a client for the YouTube Analytics API.
//
// This package offers typed report queries against the authenticated
// channel: time series, per-video summaries, audience breakdowns,
// traffic and device reports, and revenue reports for monetized
// channels. All queries run against the channel that owns the OAuth
// session (ids=channel==MINE).
//
// Every request passes through a shared quota guard that rate-limits
// outbound calls and retries transient API failures with exponential
// backoff.
//
// Example usage:
//
//	ctx := context.Background()
//	client, err := analytics.NewClient(ctx, sessionManager, guard)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report, err := client.ChannelSummary(ctx, "2026-07-01", "2026-07-28")
//	if err != nil {
//	    log.Fatal(err)
//	}
package analytics
