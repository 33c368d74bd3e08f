package youtube

import (
	"strings"
	"time"
	"unicode"

	youtube "google.golang.org/api/youtube/v3"
)

// ChannelInfo represents the authenticated channel's profile and statistics
type ChannelInfo struct {
	ID          string
	Title       string
	Description string
	CustomURL   string
	Country     string
	PublishedAt string // RFC 3339

	Subscribers       int64
	HiddenSubscribers bool // channel hides its subscriber count; Subscribers stays zero
	Views             int64
	Videos            int64

	// UploadsPlaylist is the auto-generated playlist holding every upload
	UploadsPlaylist string
}

// VideoInfo represents a simplified video for listing and lookup
type VideoInfo struct {
	ID          string
	Title       string
	Description string
	PublishedAt string // RFC 3339
	Duration    time.Duration
	Tags        []string

	Views    int64
	Likes    int64
	Comments int64

	PrivacyStatus string // "public", "unlisted", "private"
}

// PlaylistInfo represents a simplified playlist for listing
type PlaylistInfo struct {
	ID            string
	Title         string
	Description   string
	PublishedAt   string // RFC 3339
	ItemCount     int64
	PrivacyStatus string
}

// toChannelInfo converts a Data API channel to a ChannelInfo
func toChannelInfo(ch *youtube.Channel) ChannelInfo {
	if ch == nil {
		return ChannelInfo{}
	}
	info := ChannelInfo{ID: ch.Id}
	if ch.Snippet != nil {
		info.Title = ch.Snippet.Title
		info.Description = ch.Snippet.Description
		info.CustomURL = ch.Snippet.CustomUrl
		info.Country = ch.Snippet.Country
		info.PublishedAt = ch.Snippet.PublishedAt
	}
	if ch.Statistics != nil {
		info.Views = int64(ch.Statistics.ViewCount)
		info.Videos = int64(ch.Statistics.VideoCount)
		info.HiddenSubscribers = ch.Statistics.HiddenSubscriberCount
		if !info.HiddenSubscribers {
			info.Subscribers = int64(ch.Statistics.SubscriberCount)
		}
	}
	if ch.ContentDetails != nil && ch.ContentDetails.RelatedPlaylists != nil {
		info.UploadsPlaylist = ch.ContentDetails.RelatedPlaylists.Uploads
	}
	return info
}

// toVideoInfo converts a Data API video to a VideoInfo
func toVideoInfo(v *youtube.Video) VideoInfo {
	if v == nil {
		return VideoInfo{}
	}
	info := VideoInfo{ID: v.Id}
	if v.Snippet != nil {
		info.Title = v.Snippet.Title
		info.Description = v.Snippet.Description
		info.PublishedAt = v.Snippet.PublishedAt
		info.Tags = v.Snippet.Tags
	}
	if v.ContentDetails != nil {
		info.Duration = parseISODuration(v.ContentDetails.Duration)
	}
	if v.Statistics != nil {
		info.Views = int64(v.Statistics.ViewCount)
		info.Likes = int64(v.Statistics.LikeCount)
		info.Comments = int64(v.Statistics.CommentCount)
	}
	if v.Status != nil {
		info.PrivacyStatus = v.Status.PrivacyStatus
	}
	return info
}

// toPlaylistInfo converts a Data API playlist to a PlaylistInfo
func toPlaylistInfo(p *youtube.Playlist) PlaylistInfo {
	if p == nil {
		return PlaylistInfo{}
	}
	info := PlaylistInfo{ID: p.Id}
	if p.Snippet != nil {
		info.Title = p.Snippet.Title
		info.Description = p.Snippet.Description
		info.PublishedAt = p.Snippet.PublishedAt
	}
	if p.ContentDetails != nil {
		info.ItemCount = p.ContentDetails.ItemCount
	}
	if p.Status != nil {
		info.PrivacyStatus = p.Status.PrivacyStatus
	}
	return info
}

// parseISODuration parses the ISO 8601 durations the Data API uses for
// video lengths (PT4M13S, PT1H2M3S, P1DT2H). Malformed input yields
// zero rather than an error; the value is informational.
func parseISODuration(s string) time.Duration {
	if !strings.HasPrefix(s, "P") {
		return 0
	}
	var total time.Duration
	var number int64
	inTime := false
	for _, r := range s[1:] {
		switch {
		case unicode.IsDigit(r):
			number = number*10 + int64(r-'0')
		case r == 'T':
			inTime = true
			number = 0
		case r == 'D':
			total += time.Duration(number) * 24 * time.Hour
			number = 0
		case r == 'H' && inTime:
			total += time.Duration(number) * time.Hour
			number = 0
		case r == 'M' && inTime:
			total += time.Duration(number) * time.Minute
			number = 0
		case r == 'S' && inTime:
			total += time.Duration(number) * time.Second
			number = 0
		default:
			// week/month designators never appear in video durations
			number = 0
		}
	}
	return total
}
