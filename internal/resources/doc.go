// Package resources provides MCP resources describing the server's
// authorization state and the authenticated channel.
//
// Resources are read-only data sources MCP clients can fetch:
//
//   - auth://status: stored-token presence, freshness, and requested
//     scopes as JSON. Secret material never appears in the output.
//   - channel://profile: profile and lifetime statistics of the
//     authenticated channel as JSON.
package resources
