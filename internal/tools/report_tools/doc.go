// Package report_tools provides MCP tools over the YouTube Analytics
// API for the authenticated channel.
//
// # Available Tools
//
// Overview:
//   - report_channel_summary: Channel-wide engagement totals
//   - report_daily_metrics: Selected metrics by day
//   - report_monthly_metrics: Selected metrics by month
//   - report_top_videos: Most viewed videos in the range
//   - report_video_summary: Engagement totals per video
//
// Audience:
//   - report_audience_demographics: Viewer share by age group and gender
//   - report_geography: Top countries by views
//   - report_device_types: Views by device category
//   - report_operating_systems: Views by operating system
//   - report_subscription_status: Subscribed vs. unsubscribed viewers
//   - report_playback_locations: Watch page, embeds, and other surfaces
//
// Engagement:
//   - report_traffic_sources: How viewers found the videos
//   - report_search_terms: YouTube search terms that led to views
//   - report_sharing_services: Where viewers shared videos
//   - report_audience_retention: Retention curve for a single video
//   - report_live_vs_on_demand: Live stream vs. on-demand viewing
//   - report_card_performance: Info card impressions and clicks
//   - report_playlist_summary: Viewing totals for a playlist
//
// Revenue (requires the monetary readonly scope and a monetized channel):
//   - revenue_summary: Revenue totals plus the daily revenue series
//   - revenue_ad_performance: Gross revenue and impressions by ad type
//
// All date-ranged tools take optional start_date and end_date parameters
// (YYYY-MM-DD). The default range is the last 28 days ending yesterday,
// matching the delay with which Analytics data is finalized.
package report_tools
