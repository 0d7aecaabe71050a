// ABOUTME: MCP resource implementations for the session user's health data.
// ABOUTME: Provides health://stats/today, health://workouts, and health://activities.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	uriStatsToday = "health://stats/today"
	uriWorkouts   = "health://workouts"
	uriActivities = "health://activities"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         uriStatsToday,
		Name:        "Today's Stats",
		Description: "Today's steps, water, workouts, and activities against the daily goals",
		MIMEType:    "application/json",
	}, s.handleStatsResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         uriWorkouts,
		Name:        "Workouts",
		Description: "All workouts of the logged-in user",
		MIMEType:    "application/json",
	}, s.handleWorkoutsResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         uriActivities,
		Name:        "Activities",
		Description: "All activities of the logged-in user",
		MIMEType:    "application/json",
	}, s.handleActivitiesResource)
}

// Resource handlers

func (s *Server) handleStatsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	if _, err := s.requireUser(); err != nil {
		return nil, err
	}
	return jsonResource(uriStatsToday, s.currentStats())
}

func (s *Server) handleWorkoutsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	if _, err := s.requireUser(); err != nil {
		return nil, err
	}
	workouts := s.health.Workouts()
	return jsonResource(uriWorkouts, workoutsOutput{Workouts: workouts, Count: len(workouts)})
}

func (s *Server) handleActivitiesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	if _, err := s.requireUser(); err != nil {
		return nil, err
	}
	activities := s.health.Activities()
	return jsonResource(uriActivities, activitiesOutput{Activities: activities, Count: len(activities)})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
