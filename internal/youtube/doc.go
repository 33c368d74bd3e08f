// Package youtube provides a client for the YouTube Data API.
//
// This package covers the authenticated channel's own catalog: channel
// profile and statistics, uploaded videos, playlists, and search within
// the channel's uploads. It does not modify anything; every call is
// read-only.
//
// All requests pass through a shared quota guard that rate-limits
// outbound calls and retries transient API failures.
//
// Example usage:
//
//	ctx := context.Background()
//	client, err := youtube.NewClient(ctx, sessionManager, guard)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	channel, err := client.MyChannel(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
package youtube
