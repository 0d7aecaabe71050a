// ABOUTME: MCP tool implementations for accounts and health records.
// ABOUTME: Wraps auth and health store operations; validation mirrors the CLI.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/healthlog/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "signup",
		Description: "Create an account and start a session",
	}, s.handleSignup)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "login",
		Description: "Start a session with email and password",
	}, s.handleLogin)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "logout",
		Description: "End the current session",
	}, s.handleLogout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "whoami",
		Description: "Show the logged-in user",
	}, s.handleWhoami)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_workout",
		Description: "Log a workout (cardio, strength, flexibility, sports, other)",
	}, s.handleAddWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_workout",
		Description: "Delete a workout by ID",
	}, s.handleDeleteWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List workouts, optionally filtered by type",
	}, s.handleListWorkouts)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_water",
		Description: "Log water intake in millilitres for today",
	}, s.handleAddWater)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_steps",
		Description: "Add steps to today's step count",
	}, s.handleAddSteps)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_activity",
		Description: "Log a free-form activity",
	}, s.handleAddActivity)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_activity",
		Description: "Delete an activity by ID",
	}, s.handleDeleteActivity)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_activities",
		Description: "List logged activities",
	}, s.handleListActivities)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_stats",
		Description: "Today's totals against the daily goals",
	}, s.handleGetStats)
}

// Tool input/output types

type signupInput struct {
	Email    string `json:"email" jsonschema:"Account email"`
	Password string `json:"password" jsonschema:"Account password"`
	Name     string `json:"name" jsonschema:"Display name"`
}

type loginInput struct {
	Email    string `json:"email" jsonschema:"Account email"`
	Password string `json:"password" jsonschema:"Account password"`
}

type authOutput struct {
	Success bool         `json:"success"`
	Error   string       `json:"error,omitempty"`
	User    *models.User `json:"user,omitempty"`
}

type emptyInput struct{}

type simpleOutput struct {
	Message string `json:"message"`
}

type addWorkoutInput struct {
	Name     string `json:"name" jsonschema:"Workout name"`
	Type     string `json:"type" jsonschema:"Workout type: cardio, strength, flexibility, sports, or other"`
	Duration int    `json:"duration" jsonschema:"Duration in minutes"`
	Date     string `json:"date,omitempty" jsonschema:"Date as YYYY-MM-DD, defaults to today"`
}

type idInput struct {
	ID string `json:"id" jsonschema:"Record ID"`
}

type listWorkoutsInput struct {
	Type  string `json:"type,omitempty" jsonschema:"Filter by workout type"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max results, newest first (default 20)"`
}

type workoutsOutput struct {
	Workouts []models.Workout `json:"workouts"`
	Count    int              `json:"count"`
}

type amountInput struct {
	Amount int `json:"amount" jsonschema:"Amount in millilitres"`
}

type stepsInput struct {
	Steps int `json:"steps" jsonschema:"Number of steps to add"`
}

type stepsOutput struct {
	Date    string `json:"date"`
	Steps   int    `json:"steps"`
	Message string `json:"message"`
}

type addActivityInput struct {
	Name        string `json:"name" jsonschema:"Activity name"`
	Description string `json:"description,omitempty" jsonschema:"Optional description"`
	Duration    int    `json:"duration" jsonschema:"Duration in minutes"`
	Date        string `json:"date,omitempty" jsonschema:"Date as YYYY-MM-DD, defaults to today"`
}

type listActivitiesInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results, newest first (default 20)"`
}

type activitiesOutput struct {
	Activities []models.Activity `json:"activities"`
	Count      int               `json:"count"`
}

type statsOutput struct {
	Date             string             `json:"date"`
	Stats            models.HealthStats `json:"stats"`
	StepsProgress    float64            `json:"stepsProgress"`
	WaterProgress    float64            `json:"waterProgress"`
	WorkoutsProgress float64            `json:"workoutsProgress"`
	WorkoutTypes     []models.TypeCount `json:"workoutTypes"`
}

// Tool handlers

// recorded passes through a store write. A nil record with no error means
// the session ended after requireUser, which is reported as ErrNotLoggedIn.
func recorded[T any](rec *T, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotLoggedIn
	}
	return rec, nil
}

func (s *Server) handleSignup(ctx context.Context, req *mcp.CallToolRequest, input signupInput) (*mcp.CallToolResult, any, error) {
	res, err := s.auth.Signup(input.Email, input.Password, input.Name)
	if err != nil {
		return nil, nil, fmt.Errorf("signup: %w", err)
	}
	return s.authResult(res.Success, res.Error)
}

func (s *Server) handleLogin(ctx context.Context, req *mcp.CallToolRequest, input loginInput) (*mcp.CallToolResult, any, error) {
	res, err := s.auth.Login(input.Email, input.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("login: %w", err)
	}
	return s.authResult(res.Success, res.Error)
}

func (s *Server) authResult(success bool, msg string) (*mcp.CallToolResult, any, error) {
	if !success {
		return nil, authOutput{Success: false, Error: msg}, nil
	}
	if err := s.syncUser(); err != nil {
		return nil, nil, fmt.Errorf("load records: %w", err)
	}
	return nil, authOutput{Success: true, User: s.auth.User()}, nil
}

func (s *Server) handleLogout(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.auth.Logout(); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("logout: %w", err)
	}
	if err := s.syncUser(); err != nil {
		return nil, simpleOutput{}, err
	}
	return nil, simpleOutput{Message: "Logged out"}, nil
}

func (s *Server) handleWhoami(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	u := s.auth.User()
	if u == nil {
		return nil, authOutput{Success: false, Error: ErrNotLoggedIn.Error()}, nil
	}
	return nil, authOutput{Success: true, User: u}, nil
}

func (s *Server) handleAddWorkout(ctx context.Context, req *mcp.CallToolRequest, input addWorkoutInput) (*mcp.CallToolResult, any, error) {
	if _, err := s.requireUser(); err != nil {
		return nil, nil, err
	}
	if input.Name == "" {
		return nil, nil, errors.New("name is required")
	}
	if !models.IsValidWorkoutType(input.Type) {
		return nil, nil, fmt.Errorf("unknown workout type: %s", input.Type)
	}
	if input.Duration <= 0 {
		return nil, nil, errors.New("duration must be positive")
	}
	date, err := s.resolveDate(input.Date)
	if err != nil {
		return nil, nil, err
	}

	w, err := recorded(s.health.AddWorkout(models.NewWorkout{
		Name:     input.Name,
		Type:     models.WorkoutType(input.Type),
		Duration: input.Duration,
		Date:     date,
	}))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to add workout: %w", err)
	}
	return nil, *w, nil
}

func (s *Server) handleDeleteWorkout(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, simpleOutput, error) {
	if _, err := s.requireUser(); err != nil {
		return nil, simpleOutput{}, err
	}
	if err := s.health.DeleteWorkout(input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete workout: %w", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Deleted workout: %s", input.ID)}, nil
}

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input listWorkoutsInput) (*mcp.CallToolResult, any, error) {
	if _, err := s.requireUser(); err != nil {
		return nil, nil, err
	}
	if input.Limit <= 0 {
		input.Limit = 20
	}

	var out []models.Workout
	workouts := s.health.Workouts()
	for i := len(workouts) - 1; i >= 0 && len(out) < input.Limit; i-- {
		if input.Type != "" && string(workouts[i].Type) != input.Type {
			continue
		}
		out = append(out, workouts[i])
	}
	return nil, workoutsOutput{Workouts: out, Count: len(out)}, nil
}

func (s *Server) handleAddWater(ctx context.Context, req *mcp.CallToolRequest, input amountInput) (*mcp.CallToolResult, any, error) {
	if _, err := s.requireUser(); err != nil {
		return nil, nil, err
	}
	if input.Amount <= 0 {
		return nil, nil, errors.New("amount must be positive")
	}
	w, err := recorded(s.health.AddWaterIntake(input.Amount))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to add water: %w", err)
	}
	return nil, *w, nil
}

func (s *Server) handleAddSteps(ctx context.Context, req *mcp.CallToolRequest, input stepsInput) (*mcp.CallToolResult, stepsOutput, error) {
	if _, err := s.requireUser(); err != nil {
		return nil, stepsOutput{}, err
	}
	if input.Steps <= 0 {
		return nil, stepsOutput{}, errors.New("steps must be positive")
	}
	rec, err := recorded(s.health.AddSteps(input.Steps))
	if err != nil {
		return nil, stepsOutput{}, fmt.Errorf("failed to add steps: %w", err)
	}
	return nil, stepsOutput{
		Date:    rec.Date,
		Steps:   rec.Steps,
		Message: fmt.Sprintf("Added %d steps (%d today)", input.Steps, rec.Steps),
	}, nil
}

func (s *Server) handleAddActivity(ctx context.Context, req *mcp.CallToolRequest, input addActivityInput) (*mcp.CallToolResult, any, error) {
	if _, err := s.requireUser(); err != nil {
		return nil, nil, err
	}
	if input.Name == "" {
		return nil, nil, errors.New("name is required")
	}
	if input.Duration <= 0 {
		return nil, nil, errors.New("duration must be positive")
	}
	date, err := s.resolveDate(input.Date)
	if err != nil {
		return nil, nil, err
	}

	a, err := recorded(s.health.AddActivity(models.NewActivity{
		Name:        input.Name,
		Description: input.Description,
		Duration:    input.Duration,
		Date:        date,
	}))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to add activity: %w", err)
	}
	return nil, *a, nil
}

func (s *Server) handleDeleteActivity(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, simpleOutput, error) {
	if _, err := s.requireUser(); err != nil {
		return nil, simpleOutput{}, err
	}
	if err := s.health.DeleteActivity(input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete activity: %w", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Deleted activity: %s", input.ID)}, nil
}

func (s *Server) handleListActivities(ctx context.Context, req *mcp.CallToolRequest, input listActivitiesInput) (*mcp.CallToolResult, any, error) {
	if _, err := s.requireUser(); err != nil {
		return nil, nil, err
	}
	if input.Limit <= 0 {
		input.Limit = 20
	}

	var out []models.Activity
	activities := s.health.Activities()
	for i := len(activities) - 1; i >= 0 && len(out) < input.Limit; i-- {
		out = append(out, activities[i])
	}
	return nil, activitiesOutput{Activities: out, Count: len(out)}, nil
}

func (s *Server) handleGetStats(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, statsOutput, error) {
	if _, err := s.requireUser(); err != nil {
		return nil, statsOutput{}, err
	}
	return nil, s.currentStats(), nil
}

func (s *Server) currentStats() statsOutput {
	stats := s.health.Stats()
	return statsOutput{
		Date:             s.health.Today(),
		Stats:            stats,
		StepsProgress:    stats.StepsProgress(),
		WaterProgress:    stats.WaterProgress(),
		WorkoutsProgress: stats.WorkoutsProgress(),
		WorkoutTypes:     s.health.WorkoutTypeBreakdown(),
	}
}

// resolveDate defaults an empty date to today and validates the rest.
func (s *Server) resolveDate(date string) (string, error) {
	if date == "" {
		return s.health.Today(), nil
	}
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return "", fmt.Errorf("invalid date %q, want YYYY-MM-DD", date)
	}
	return date, nil
}
