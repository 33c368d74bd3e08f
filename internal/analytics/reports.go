package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Dimension names accepted by the reports API.
const (
	DimensionDay              = "day"
	DimensionMonth            = "month"
	DimensionVideo            = "video"
	DimensionAgeGroup         = "ageGroup"
	DimensionGender           = "gender"
	DimensionCountry          = "country"
	DimensionTrafficSource    = "insightTrafficSourceType"
	DimensionTrafficDetail    = "insightTrafficSourceDetail"
	DimensionDeviceType       = "deviceType"
	DimensionOperatingSystem  = "operatingSystem"
	DimensionPlaybackLocation = "insightPlaybackLocationType"
	DimensionSubscribedStatus = "subscribedStatus"
	DimensionSharingService   = "sharingService"
	DimensionElapsedTimeRatio = "elapsedVideoTimeRatio"
	DimensionLiveOrOnDemand   = "liveOrOnDemand"
	DimensionAdType           = "adType"
)

// Metric names accepted by the reports API.
const (
	MetricViews                  = "views"
	MetricMinutesWatched         = "estimatedMinutesWatched"
	MetricAverageViewDuration    = "averageViewDuration"
	MetricAverageViewPercentage  = "averageViewPercentage"
	MetricSubscribersGained      = "subscribersGained"
	MetricSubscribersLost        = "subscribersLost"
	MetricLikes                  = "likes"
	MetricDislikes               = "dislikes"
	MetricComments               = "comments"
	MetricShares                 = "shares"
	MetricViewerPercentage       = "viewerPercentage"
	MetricAudienceWatchRatio     = "audienceWatchRatio"
	MetricRelativeRetention      = "relativeRetentionPerformance"
	MetricCardImpressions        = "cardImpressions"
	MetricCardClicks             = "cardClicks"
	MetricCardClickRate          = "cardClickRate"
	MetricCardTeaserImpressions  = "cardTeaserImpressions"
	MetricCardTeaserClicks       = "cardTeaserClicks"
	MetricEstimatedRevenue       = "estimatedRevenue"
	MetricEstimatedAdRevenue     = "estimatedAdRevenue"
	MetricEstimatedRedRevenue    = "estimatedRedPartnerRevenue"
	MetricGrossRevenue           = "grossRevenue"
	MetricCPM                    = "cpm"
	MetricPlaybackBasedCPM       = "playbackBasedCpm"
	MetricMonetizedPlaybacks     = "monetizedPlaybacks"
	MetricAdImpressions          = "adImpressions"
	MetricPlaylistStarts         = "playlistStarts"
	MetricViewsPerPlaylistStart  = "viewsPerPlaylistStart"
	MetricAverageTimeInPlaylist  = "averageTimeInPlaylist"
)

// timeSeriesMetrics is the set of metrics accepted by DailySeries and
// MonthlySeries. Breakdown-only metrics (viewerPercentage, retention
// ratios) are excluded because they are invalid with time dimensions.
var timeSeriesMetrics = map[string]bool{
	MetricViews:                 true,
	MetricMinutesWatched:        true,
	MetricAverageViewDuration:   true,
	MetricAverageViewPercentage: true,
	MetricSubscribersGained:     true,
	MetricSubscribersLost:       true,
	MetricLikes:                 true,
	MetricDislikes:              true,
	MetricComments:              true,
	MetricShares:                true,
	MetricEstimatedRevenue:      true,
	MetricEstimatedAdRevenue:    true,
}

// TimeSeriesMetrics returns the metric names accepted by DailySeries
// and MonthlySeries, sorted for stable help text.
func TimeSeriesMetrics() []string {
	names := make([]string, 0, len(timeSeriesMetrics))
	for name := range timeSeriesMetrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateTimeSeriesMetrics rejects metric names outside the time
// series allowlist before any API call is made.
func ValidateTimeSeriesMetrics(metrics []string) error {
	if len(metrics) == 0 {
		return fmt.Errorf("at least one metric is required")
	}
	for _, m := range metrics {
		if !timeSeriesMetrics[m] {
			return fmt.Errorf("unsupported metric %q (supported: %s)", m, strings.Join(TimeSeriesMetrics(), ", "))
		}
	}
	return nil
}

const dateLayout = "2006-01-02"

// monthFloor snaps a YYYY-MM-DD date to the first day of its month.
// The API rejects month-dimension queries whose dates are not aligned
// to month boundaries.
func monthFloor(date string) (string, error) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).Format(dateLayout), nil
}

// ChannelSummary reports channel-wide engagement totals for the range.
func (c *Client) ChannelSummary(ctx context.Context, startDate, endDate string) (*Report, error) {
	return c.Run(ctx, Query{
		StartDate: startDate,
		EndDate:   endDate,
		Metrics: []string{
			MetricViews, MetricMinutesWatched, MetricAverageViewDuration,
			MetricAverageViewPercentage, MetricSubscribersGained,
			MetricSubscribersLost, MetricLikes, MetricComments, MetricShares,
		},
	})
}

// DailySeries reports the requested metrics broken down by day. Metric
// names are validated against the time series allowlist.
func (c *Client) DailySeries(ctx context.Context, startDate, endDate string, metrics []string) (*Report, error) {
	if err := ValidateTimeSeriesMetrics(metrics); err != nil {
		return nil, err
	}
	return c.Run(ctx, Query{
		StartDate:  startDate,
		EndDate:    endDate,
		Metrics:    metrics,
		Dimensions: []string{DimensionDay},
	})
}

// MonthlySeries reports the requested metrics broken down by month.
// Dates are snapped to the first day of their months as the API requires.
func (c *Client) MonthlySeries(ctx context.Context, startDate, endDate string, metrics []string) (*Report, error) {
	if err := ValidateTimeSeriesMetrics(metrics); err != nil {
		return nil, err
	}
	start, err := monthFloor(startDate)
	if err != nil {
		return nil, err
	}
	end, err := monthFloor(endDate)
	if err != nil {
		return nil, err
	}
	return c.Run(ctx, Query{
		StartDate:  start,
		EndDate:    end,
		Metrics:    metrics,
		Dimensions: []string{DimensionMonth},
	})
}

// TopVideos reports the channel's most viewed videos in the range.
func (c *Client) TopVideos(ctx context.Context, startDate, endDate string, maxResults int64) (*Report, error) {
	return c.Run(ctx, Query{
		StartDate: startDate,
		EndDate:   endDate,
		Metrics: []string{
			MetricViews, MetricMinutesWatched, MetricAverageViewDuration,
			MetricLikes, MetricComments,
		},
		Dimensions: []string{DimensionVideo},
		Sort:       "-" + MetricViews,
		MaxResults: maxResults,
	})
}

// VideoSummary reports engagement totals for a single video.
func (c *Client) VideoSummary(ctx context.Context, videoID, startDate, endDate string) (*Report, error) {
	return c.Run(ctx, Query{
		StartDate: startDate,
		EndDate:   endDate,
		Metrics: []string{
			MetricViews, MetricMinutesWatched, MetricAverageViewDuration,
			MetricAverageViewPercentage, MetricLikes, MetricComments,
			MetricShares, MetricSubscribersGained,
		},
		Filters: DimensionVideo + "==" + videoID,
	})
}

// Demographics reports viewer share by age group and gender.
func (c *Client) Demographics(ctx context.Context, startDate, endDate string) (*Report, error) {
	return c.Run(ctx, Query{
		StartDate:  startDate,
		EndDate:    endDate,
		Metrics:    []string{MetricViewerPercentage},
		Dimensions: []string{DimensionAgeGroup, DimensionGender},
	})
}

// Geography reports the top countries by views.
func (c *Client) Geography(ctx context.Context, startDate, endDate string, maxResults int64) (*Report, error) {
	return c.Run(ctx, Query{
		StartDate:  startDate,
		EndDate:    endDate,
		Metrics:    []string{MetricViews, MetricMinutesWatched, MetricAverageViewDuration},
		Dimensions: []string{DimensionCountry},
		Sort:       "-" + MetricViews,
		MaxResults: maxResults,
	})
}

// TrafficSources reports how viewers found the channel's videos.
func (c *Client) TrafficSources(ctx context.Context, startDate, endDate string) (*Report, error) {
	return c.Run(ctx, Query{
		StartDate:  startDate,
		EndDate:    endDate,
		Metrics:    []string{MetricViews, MetricMinutesWatched},
		Dimensions: []string{DimensionTrafficSource},
	})
}

// SearchTerms reports the YouTube search terms that led viewers to the channel.
func (c *Client) SearchTerms(ctx context.Context, startDate, endDate string, maxResults int64) (*Report, error) {
	return c.Run(ctx, Query{
		StartDate:  startDate,
		EndDate:    endDate,
		Metrics:    []string{MetricViews},
		Dimensions: []string{DimensionTrafficDetail},
		Filters:    DimensionTrafficSource + "==YT_SEARCH",
		Sort:       "-" + MetricViews,
		MaxResults: maxResults,
	})
}

// DeviceTypes reports views by device category.
func (c *Client) DeviceTypes(ctx context.Context, startDate, endDate string) (*Report, error) {
	return c.Run(ctx, Query{
		StartDate:  startDate,
		EndDate:    endDate,
		Metrics:    []string{MetricViews, MetricMinutesWatched},
		Dimensions: []string{DimensionDeviceType},
	})
}

// OperatingSystems reports views by viewer operating system.
func (c *Client) OperatingSystems(ctx context.Context, startDate, endDate string) (*Report, error) {
	return c.Run(ctx, Query{
		StartDate:  startDate,
		EndDate:    endDate,
		Metrics:    []string{MetricViews, MetricMinutesWatched},
		Dimensions: []string{DimensionOperatingSystem},
	})
}

// PlaybackLocations reports where playback happened (watch page, embeds, ...).
func (c *Client) PlaybackLocations(ctx context.Context, startDate, endDate string) (*Report, error) {
	return c.Run(ctx, Query{
		StartDate:  startDate,
		EndDate:    endDate,
		Metrics:    []string{MetricViews, MetricMinutesWatched},
		Dimensions: []string{DimensionPlaybackLocation},
	})
}

// SubscriptionStatus compares subscribed and unsubscribed viewers.
func (c *Client) SubscriptionStatus(ctx context.Context, startDate, endDate string) (*Report, error) {
	return c.Run(ctx, Query{
		StartDate:  startDate,
		EndDate:    endDate,
		Metrics:    []string{MetricViews, MetricMinutesWatched, MetricAverageViewDuration},
		Dimensions: []string{DimensionSubscribedStatus},
	})
}

// SharingServices reports which services viewers shared videos through.
func (c *Client) SharingServices(ctx context.Context, startDate, endDate string) (*Report, error) {
	return c.Run(ctx, Query{
		StartDate:  startDate,
		EndDate:    endDate,
		Metrics:    []string{MetricShares},
		Dimensions: []string{DimensionSharingService},
		Sort:       "-" + MetricShares,
	})
}

// AudienceRetention reports the organic retention curve for a video.
func (c *Client) AudienceRetention(ctx context.Context, videoID, startDate, endDate string) (*Report, error) {
	return c.Run(ctx, Query{
		StartDate:  startDate,
		EndDate:    endDate,
		Metrics:    []string{MetricAudienceWatchRatio, MetricRelativeRetention},
		Dimensions: []string{DimensionElapsedTimeRatio},
		Filters:    DimensionVideo + "==" + videoID + ";audienceType==ORGANIC",
	})
}

// LiveVsOnDemand compares live stream and on-demand viewing.
func (c *Client) LiveVsOnDemand(ctx context.Context, startDate, endDate string) (*Report, error) {
	return c.Run(ctx, Query{
		StartDate:  startDate,
		EndDate:    endDate,
		Metrics:    []string{MetricViews, MetricMinutesWatched, MetricAverageViewDuration},
		Dimensions: []string{DimensionLiveOrOnDemand},
	})
}

// CardPerformance reports info card impressions and clicks.
func (c *Client) CardPerformance(ctx context.Context, startDate, endDate string) (*Report, error) {
	return c.Run(ctx, Query{
		StartDate: startDate,
		EndDate:   endDate,
		Metrics: []string{
			MetricCardImpressions, MetricCardClicks, MetricCardClickRate,
			MetricCardTeaserImpressions, MetricCardTeaserClicks,
		},
	})
}

// RevenueSummary reports channel revenue totals. Requires the monetary
// scope and a monetized channel.
func (c *Client) RevenueSummary(ctx context.Context, startDate, endDate string) (*Report, error) {
	return c.Run(ctx, Query{
		StartDate: startDate,
		EndDate:   endDate,
		Metrics: []string{
			MetricEstimatedRevenue, MetricEstimatedAdRevenue,
			MetricEstimatedRedRevenue, MetricGrossRevenue, MetricCPM,
			MetricPlaybackBasedCPM, MetricMonetizedPlaybacks, MetricAdImpressions,
		},
	})
}

// RevenueByDay reports estimated revenue broken down by day.
func (c *Client) RevenueByDay(ctx context.Context, startDate, endDate string) (*Report, error) {
	return c.Run(ctx, Query{
		StartDate:  startDate,
		EndDate:    endDate,
		Metrics:    []string{MetricEstimatedRevenue, MetricEstimatedAdRevenue},
		Dimensions: []string{DimensionDay},
	})
}

// AdPerformance reports gross revenue and impressions by ad type.
func (c *Client) AdPerformance(ctx context.Context, startDate, endDate string) (*Report, error) {
	return c.Run(ctx, Query{
		StartDate:  startDate,
		EndDate:    endDate,
		Metrics:    []string{MetricGrossRevenue, MetricAdImpressions, MetricCPM},
		Dimensions: []string{DimensionAdType},
	})
}

// PlaylistSummary reports viewing totals for a single curated playlist.
func (c *Client) PlaylistSummary(ctx context.Context, playlistID, startDate, endDate string) (*Report, error) {
	return c.Run(ctx, Query{
		StartDate: startDate,
		EndDate:   endDate,
		Metrics: []string{
			MetricViews, MetricMinutesWatched, MetricPlaylistStarts,
			MetricViewsPerPlaylistStart, MetricAverageTimeInPlaylist,
		},
		Filters: "playlist==" + playlistID + ";isCurated==1",
	})
}
