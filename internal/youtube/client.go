package youtube

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	youtube "google.golang.org/api/youtube/v3"

	"github.com/teemow/tubemetrics/internal/google"
	"github.com/teemow/tubemetrics/internal/quota"
)

// maxPageSize is the Data API's per-request item cap.
const maxPageSize = 50

// Client wraps the YouTube Data API service
type Client struct {
	svc   *youtube.Service
	guard *quota.Guard
}

// NewClient creates a new Data API client authenticated by the session manager.
// The session manager owns token refresh; this client never touches tokens directly.
func NewClient(ctx context.Context, session *google.SessionManager, guard *quota.Guard) (*Client, error) {
	if session == nil {
		return nil, fmt.Errorf("session manager cannot be nil")
	}

	httpClient, err := session.HTTPClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticated HTTP client: %w", err)
	}

	svc, err := youtube.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	if guard == nil {
		guard = quota.NewDefaultGuard()
	}

	return &Client{svc: svc, guard: guard}, nil
}

// MyChannel returns the profile and statistics of the channel that owns
// the OAuth session.
func (c *Client) MyChannel(ctx context.Context) (*ChannelInfo, error) {
	var resp *youtube.ChannelListResponse
	err := c.guard.Do(ctx, func() error {
		var callErr error
		resp, callErr = c.svc.Channels.
			List([]string{"snippet", "statistics", "contentDetails"}).
			Mine(true).
			Context(ctx).
			Do()
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch channel: %w", err)
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("no channel is associated with the authenticated account")
	}

	info := toChannelInfo(resp.Items[0])
	return &info, nil
}

// Videos looks up full details for up to 50 videos by ID, preserving
// the API's response order.
func (c *Client) Videos(ctx context.Context, ids []string) ([]VideoInfo, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("at least one video ID is required")
	}
	if len(ids) > maxPageSize {
		return nil, fmt.Errorf("at most %d video IDs per lookup, got %d", maxPageSize, len(ids))
	}

	var resp *youtube.VideoListResponse
	err := c.guard.Do(ctx, func() error {
		var callErr error
		resp, callErr = c.svc.Videos.
			List([]string{"snippet", "statistics", "contentDetails", "status"}).
			Id(ids...).
			Context(ctx).
			Do()
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch videos: %w", err)
	}

	videos := make([]VideoInfo, 0, len(resp.Items))
	for _, item := range resp.Items {
		videos = append(videos, toVideoInfo(item))
	}
	return videos, nil
}

// RecentUploads lists the channel's most recent uploads, newest first,
// with full statistics for each video.
func (c *Client) RecentUploads(ctx context.Context, maxResults int64) ([]VideoInfo, error) {
	channel, err := c.MyChannel(ctx)
	if err != nil {
		return nil, err
	}
	if channel.UploadsPlaylist == "" {
		return nil, fmt.Errorf("channel has no uploads playlist")
	}

	var resp *youtube.PlaylistItemListResponse
	err = c.guard.Do(ctx, func() error {
		var callErr error
		resp, callErr = c.svc.PlaylistItems.
			List([]string{"contentDetails"}).
			PlaylistId(channel.UploadsPlaylist).
			MaxResults(clampPageSize(maxResults)).
			Context(ctx).
			Do()
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ContentDetails != nil && item.ContentDetails.VideoId != "" {
			ids = append(ids, item.ContentDetails.VideoId)
		}
	}
	if len(ids) == 0 {
		return []VideoInfo{}, nil
	}
	return c.Videos(ctx, ids)
}

// SearchMyVideos searches within the channel's own videos and returns
// full details for each match.
func (c *Client) SearchMyVideos(ctx context.Context, query string, maxResults int64) ([]VideoInfo, error) {
	if query == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}

	var resp *youtube.SearchListResponse
	err := c.guard.Do(ctx, func() error {
		var callErr error
		resp, callErr = c.svc.Search.
			List([]string{"id"}).
			ForMine(true).
			Type("video").
			Q(query).
			MaxResults(clampPageSize(maxResults)).
			Context(ctx).
			Do()
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			ids = append(ids, item.Id.VideoId)
		}
	}
	if len(ids) == 0 {
		return []VideoInfo{}, nil
	}
	return c.Videos(ctx, ids)
}

// Playlists lists the channel's own playlists.
func (c *Client) Playlists(ctx context.Context, maxResults int64) ([]PlaylistInfo, error) {
	var resp *youtube.PlaylistListResponse
	err := c.guard.Do(ctx, func() error {
		var callErr error
		resp, callErr = c.svc.Playlists.
			List([]string{"snippet", "contentDetails", "status"}).
			Mine(true).
			MaxResults(clampPageSize(maxResults)).
			Context(ctx).
			Do()
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}

	playlists := make([]PlaylistInfo, 0, len(resp.Items))
	for _, item := range resp.Items {
		playlists = append(playlists, toPlaylistInfo(item))
	}
	return playlists, nil
}

// clampPageSize keeps a requested page size within the API's 1..50 range.
func clampPageSize(n int64) int64 {
	if n <= 0 {
		return 10
	}
	if n > maxPageSize {
		return maxPageSize
	}
	return n
}
