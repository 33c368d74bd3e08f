package google

// Scopes are the Google OAuth scopes requested during authorization.
// All three are read-only: this tool never mutates channel data.
//
//   - yt-analytics.readonly: YouTube Analytics reports
//   - yt-analytics-monetary.readonly: revenue and ad performance reports
//   - youtube.readonly: channel, video and playlist metadata
var Scopes = []string{
	"https://www.googleapis.com/auth/yt-analytics.readonly",
	"https://www.googleapis.com/auth/yt-analytics-monetary.readonly",
	"https://www.googleapis.com/auth/youtube.readonly",
}
