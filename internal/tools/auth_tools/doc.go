// Package auth_tools provides MCP tools for inspecting and revoking the
// Google authorization used by the server.
//
// # Available Tools
//
//   - auth_check_status: Report whether a token is stored, whether it is
//     currently usable, when the access token expires, and which scopes
//     were requested. Never starts a consent flow.
//   - auth_revoke: Revoke the authorization at Google and delete the
//     local token file. Local credentials are cleared even when the
//     remote revocation fails.
//
// Both tools operate on the single stored user credential; there is no
// account parameter. To authorize, run "tubemetrics auth login" or call
// any YouTube tool, which triggers the browser consent flow on first use.
package auth_tools
