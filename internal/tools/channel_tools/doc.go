// Package channel_tools provides MCP tools for the authenticated
// channel's profile and content via the YouTube Data API.
//
// # Available Tools
//
// Channel:
//   - channel_get_info: Profile and lifetime statistics of the channel
//   - channel_list_videos: Most recent uploads
//   - channel_list_playlists: Playlists owned by the channel
//
// Videos:
//   - video_get_details: Metadata and statistics for one or more videos
//   - video_search: Search within the channel's own videos
//
// All tools operate on the channel of the stored Google authorization;
// there is no channel parameter. The first call triggers the browser
// consent flow when no token is stored yet.
package channel_tools
