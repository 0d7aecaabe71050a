// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Runs commands against a SQLite data directory and checks stored records.
package main

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harperreed/healthlog/internal/auth"
	"github.com/harperreed/healthlog/internal/health"
	"github.com/harperreed/healthlog/internal/kv"
	"github.com/harperreed/healthlog/internal/models"
	"github.com/harperreed/healthlog/internal/storage"
	"github.com/spf13/cobra"
)

func TestResolveID(t *testing.T) {
	ids := []string{"abc12345-0000", "abd99999-0000", "ffff0000-1111"}

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr string
	}{
		{"full id", "ffff0000-1111", "ffff0000-1111", ""},
		{"unique prefix", "abc1", "abc12345-0000", ""},
		{"ambiguous prefix", "ab", "", "ambiguous"},
		{"no match", "zzz", "", "not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveID(tt.input, ids)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("resolveID(%q) error = %v, want %q", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveID(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("resolveID(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"", "2025-03-01", false},
		{"2025-01-31", "2025-01-31", false},
		{"31-01-2025", "", true},
		{"2025-02-30", "", true},
	}

	for _, tt := range tests {
		got, err := parseDate(tt.input, "2025-03-01")
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseDate(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("parseDate(%q) = %q, %v; want %q", tt.input, got, err, tt.want)
		}
	}
}

func TestPositiveInt(t *testing.T) {
	if n, err := positiveInt("250", "amount"); err != nil || n != 250 {
		t.Errorf("positiveInt(250) = %d, %v", n, err)
	}
	for _, bad := range []string{"0", "-5", "abc", "1.5"} {
		if _, err := positiveInt(bad, "amount"); err == nil {
			t.Errorf("positiveInt(%q) expected error", bad)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world this is long", 10, "hello w..."},
		{"Schwimmen über Bäche", 10, "Schwimm..."},
		{"日本語のワークアウト", 6, "日本語..."},
		{"café", 4, "café"},
	}
	for _, tt := range tests {
		if got := truncate(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 5); got != "ab   " {
		t.Errorf("padRight = %q", got)
	}
	if got := padRight("abcdef", 3); got != "abcdef" {
		t.Errorf("padRight = %q", got)
	}
	if got := padRight("café", 6); got != "café  " {
		t.Errorf("padRight = %q", got)
	}
}

func TestReadPasswordFromPipe(t *testing.T) {
	resetFlags()
	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader("s3cret\n"))
	cmd.SetErr(io.Discard)

	got, err := readPassword(cmd)
	if err != nil || got != "s3cret" {
		t.Errorf("readPassword = %q, %v", got, err)
	}

	authPassword = "flag"
	defer func() { authPassword = "" }()
	if got, _ := readPassword(cmd); got != "flag" {
		t.Errorf("readPassword with --password = %q, want %q", got, "flag")
	}
}

func TestProgressBarWidth(t *testing.T) {
	for _, pct := range []float64{0, 37.5, 99.9} {
		if got := len([]rune(progressBar(pct))); got != barWidth {
			t.Errorf("progressBar(%v) has %d cells, want %d", pct, got, barWidth)
		}
	}
}

func TestRootCmd(t *testing.T) {
	if rootCmd.Use != "healthlog" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "healthlog")
	}
	for _, name := range []string{"backend", "data-dir", "log-level"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("Expected --%s persistent flag", name)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{
		"signup", "login", "logout", "whoami", "workout", "water", "steps",
		"activity", "stats", "export", "import", "migrate", "mcp", "sync", "install-skill",
	}
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, n := range want {
		if !names[n] {
			t.Errorf("Expected %q command to be registered", n)
		}
	}
}

func TestNeedsStore(t *testing.T) {
	if needsStore(installSkillCmd) {
		t.Error("install-skill should not open storage")
	}
	if needsStore(syncWipeCmd) {
		t.Error("sync wipe should not open storage")
	}
	if !needsStore(statsCmd) {
		t.Error("stats should open storage")
	}
	if needsStore(workoutCmd) {
		t.Error("non-runnable parent commands should not open storage")
	}
}

// cli runs commands against one SQLite data directory.
type cli struct {
	t       *testing.T
	dataDir string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	return &cli{t: t, dataDir: t.TempDir()}
}

// resetFlags restores every flag variable to its default between runs.
func resetFlags() {
	backendFlag, dataDirFlag, logLevelFlag = "", "", ""
	authPassword = ""
	workoutType, workoutListType, workoutDuration, workoutDate, workoutLimit = string(models.WorkoutOther), "", 0, "", 20
	activityDescription, activityDuration, activityDate, activityLimit = "", 0, "", 20
	exportOutput = ""
	migrateTo, migrateToDir, migrateForce, migrateDryRun, migrateSave = "", "", false, false, false
}

func (c *cli) run(args ...string) error {
	c.t.Helper()
	resetFlags()
	full := append([]string{"--backend", "sqlite", "--data-dir", c.dataDir}, args...)
	rootCmd.SetArgs(full)
	err := rootCmd.Execute()
	// PostRun is skipped when RunE fails.
	_ = closeRuntime()
	return err
}

func (c *cli) mustRun(args ...string) {
	c.t.Helper()
	if err := c.run(args...); err != nil {
		c.t.Fatalf("%v failed: %v", args, err)
	}
}

// open returns stores over the data directory with the session restored.
func (c *cli) open() (*auth.Store, *health.Store) {
	c.t.Helper()
	db, err := kv.OpenSQLite(filepath.Join(c.dataDir, "healthlog.db"))
	if err != nil {
		c.t.Fatalf("OpenSQLite failed: %v", err)
	}
	c.t.Cleanup(func() { db.Close() })

	a := auth.NewStore(db)
	a.RestoreSession()
	userID := ""
	if u := a.User(); u != nil {
		userID = u.ID
	}
	h, err := health.NewStore(db, userID)
	if err != nil {
		c.t.Fatalf("health.NewStore failed: %v", err)
	}
	return a, h
}

func TestCommandsRequireLogin(t *testing.T) {
	c := newCLI(t)

	for _, args := range [][]string{
		{"whoami"},
		{"workout", "list"},
		{"workout", "add", "Run", "--type", "cardio", "--duration", "10"},
		{"water", "add", "250"},
		{"steps", "add", "100"},
		{"activity", "list"},
		{"stats"},
		{"export", "json"},
	} {
		if err := c.run(args...); !errors.Is(err, errNotLoggedIn) {
			t.Errorf("%v error = %v, want %v", args, err, errNotLoggedIn)
		}
	}
}

func TestSignupLoginLogout(t *testing.T) {
	c := newCLI(t)

	c.mustRun("signup", "ann@example.com", "Ann", "-p", "pw")
	a, _ := c.open()
	if u := a.User(); u == nil || u.Email != "ann@example.com" {
		t.Fatalf("session after signup = %+v", u)
	}

	err := c.run("signup", "ann@example.com", "Other", "-p", "x")
	if err == nil || err.Error() != auth.MsgEmailRegistered {
		t.Errorf("duplicate signup error = %v", err)
	}

	c.mustRun("logout")
	c.mustRun("logout")
	if err := c.run("whoami"); !errors.Is(err, errNotLoggedIn) {
		t.Errorf("whoami after logout = %v", err)
	}

	err = c.run("login", "ann@example.com", "-p", "wrong")
	if err == nil || err.Error() != auth.MsgInvalidCredentials {
		t.Errorf("bad login error = %v", err)
	}
	c.mustRun("login", "ann@example.com", "-p", "pw")
	c.mustRun("whoami")
}

func TestRecordFlow(t *testing.T) {
	c := newCLI(t)
	c.mustRun("signup", "ann@example.com", "Ann", "-p", "pw")

	c.mustRun("workout", "add", "Morning run", "--type", "cardio", "--duration", "30")
	c.mustRun("workout", "add", "Old lift", "-t", "strength", "-d", "45", "--date", "2020-01-01")
	c.mustRun("water", "add", "250")
	c.mustRun("water", "add", "500")
	c.mustRun("steps", "add", "3000")
	c.mustRun("steps", "add", "4500")
	c.mustRun("activity", "add", "Gardening", "--duration", "40", "--description", "front yard")
	c.mustRun("stats")
	c.mustRun("workout", "list")
	c.mustRun("activity", "list")

	_, h := c.open()
	if got := len(h.Workouts()); got != 2 {
		t.Errorf("stored %d workouts, want 2", got)
	}
	if got := len(h.WaterIntakes()); got != 2 {
		t.Errorf("stored %d water records, want 2", got)
	}
	steps := h.StepCounts()
	if len(steps) != 1 || steps[0].Steps != 7500 {
		t.Errorf("step records = %+v, want one with 7500", steps)
	}
	acts := h.Activities()
	if len(acts) != 1 || acts[0].Description != "front yard" {
		t.Errorf("activities = %+v", acts)
	}

	stats := h.Stats()
	if stats.TotalWorkouts != 1 || stats.TotalWaterIntake != 750 || stats.TotalSteps != 7500 || stats.TotalActivities != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestArgumentValidation(t *testing.T) {
	c := newCLI(t)
	c.mustRun("signup", "ann@example.com", "Ann", "-p", "pw")

	for _, args := range [][]string{
		{"workout", "add", "Run", "--type", "running", "--duration", "10"},
		{"workout", "add", "Run", "--type", "cardio"},
		{"workout", "add", "Run", "--type", "cardio", "--duration", "10", "--date", "yesterday"},
		{"workout", "list", "--type", "running"},
		{"water", "add", "0"},
		{"water", "add", "lots"},
		{"steps", "add", "-10"},
		{"activity", "add", "Walk"},
		{"export", "csv"},
	} {
		if err := c.run(args...); err == nil {
			t.Errorf("%v expected error", args)
		}
	}

	_, h := c.open()
	if n := len(h.Workouts()) + len(h.WaterIntakes()) + len(h.StepCounts()) + len(h.Activities()); n != 0 {
		t.Errorf("invalid commands stored %d records", n)
	}
}

func TestDeleteByPrefix(t *testing.T) {
	c := newCLI(t)
	c.mustRun("signup", "ann@example.com", "Ann", "-p", "pw")
	c.mustRun("workout", "add", "Run", "--type", "cardio", "--duration", "10")
	c.mustRun("activity", "add", "Walk", "--duration", "10")

	_, h := c.open()
	w := h.Workouts()[0]
	a := h.Activities()[0]

	if err := c.run("workout", "delete", "not-an-id"); err == nil {
		t.Error("Expected error deleting unknown workout")
	}
	c.mustRun("workout", "delete", shortID(w.ID))
	c.mustRun("activity", "rm", a.ID)

	_, h = c.open()
	if len(h.Workouts()) != 0 || len(h.Activities()) != 0 {
		t.Errorf("records remain after delete: %+v %+v", h.Workouts(), h.Activities())
	}
}

func TestUsersAreIsolated(t *testing.T) {
	c := newCLI(t)
	c.mustRun("signup", "b@example.com", "Bo", "-p", "pw")
	c.mustRun("workout", "add", "B1", "--type", "sports", "--duration", "10")
	c.mustRun("workout", "add", "B2", "--type", "sports", "--duration", "10")

	c.mustRun("signup", "a@example.com", "Ann", "-p", "pw")
	for _, name := range []string{"A1", "A2", "A3"} {
		c.mustRun("workout", "add", name, "--type", "cardio", "--duration", "10")
	}

	a, h := c.open()
	if got := len(h.Workouts()); got != 3 {
		t.Errorf("Ann sees %d workouts, want 3", got)
	}
	users, err := a.Users()
	if err != nil || len(users) != 2 {
		t.Fatalf("Users() = %v, %v", users, err)
	}

	db, err := kv.OpenSQLite(filepath.Join(c.dataDir, "healthlog.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	all, err := storage.NewCollection[models.Workout](db, kv.WorkoutsKey).LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 5 {
		t.Errorf("persisted %d workouts, want 5", len(all))
	}
}

func TestExportImport(t *testing.T) {
	c := newCLI(t)
	c.mustRun("signup", "ann@example.com", "Ann", "-p", "pw")
	c.mustRun("workout", "add", "Run", "--type", "cardio", "--duration", "30")
	c.mustRun("steps", "add", "1200")

	out := filepath.Join(t.TempDir(), "backup.json")
	c.mustRun("export", "json", "-o", out)

	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var data storage.ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if data.User.Email != "ann@example.com" || len(data.Workouts) != 1 || len(data.StepCounts) != 1 {
		t.Errorf("export = %+v", data)
	}

	c.mustRun("signup", "bo@example.com", "Bo", "-p", "pw")
	c.mustRun("import", out)

	a, h := c.open()
	bo := a.User()
	ws := h.Workouts()
	if len(ws) != 1 || ws[0].UserID != bo.ID {
		t.Errorf("imported workouts = %+v, want one owned by %s", ws, bo.ID)
	}

	if err := c.run("import", filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error importing missing file")
	}
}

func TestMigrateToBadger(t *testing.T) {
	c := newCLI(t)
	c.mustRun("signup", "ann@example.com", "Ann", "-p", "pw")
	c.mustRun("water", "add", "300")

	dst := t.TempDir()
	c.mustRun("migrate", "--to", "badger", "--to-data-dir", dst, "--dry-run")

	b, err := kv.OpenBadger(filepath.Join(dst, "badger"))
	if err != nil {
		t.Fatalf("OpenBadger failed: %v", err)
	}
	has, err := kv.HasData(b)
	if err != nil {
		t.Fatal(err)
	}
	b.Close()
	if has {
		t.Fatal("dry run wrote data")
	}

	c.mustRun("migrate", "--to", "badger", "--to-data-dir", dst)

	if err := c.run("migrate", "--to", "badger", "--to-data-dir", dst); err == nil {
		t.Error("Expected error migrating into non-empty destination")
	}
	c.mustRun("migrate", "--to", "badger", "--to-data-dir", dst, "--force")

	b, err = kv.OpenBadger(filepath.Join(dst, "badger"))
	if err != nil {
		t.Fatalf("OpenBadger failed: %v", err)
	}
	defer b.Close()
	a := auth.NewStore(b)
	a.RestoreSession()
	if a.User() == nil {
		t.Fatal("session not migrated")
	}
	h, err := health.NewStore(b, a.User().ID)
	if err != nil {
		t.Fatal(err)
	}
	if got := h.Stats().TotalWaterIntake; got != 300 {
		t.Errorf("migrated water = %d, want 300", got)
	}
}

func TestMigrateRejectsSameBackend(t *testing.T) {
	c := newCLI(t)
	if err := c.run("migrate", "--to", "sqlite"); err == nil {
		t.Error("Expected error migrating onto the source")
	}
	if err := c.run("migrate", "--to", "floppy"); err == nil {
		t.Error("Expected error for unknown backend")
	}
}

func TestSyncNeedsCharmBackend(t *testing.T) {
	c := newCLI(t)
	if err := c.run("sync", "status"); !errors.Is(err, errNotCharm) {
		t.Errorf("sync status error = %v, want %v", err, errNotCharm)
	}
}

func TestSubcommands(t *testing.T) {
	tests := []struct {
		parent *cobra.Command
		want   []string
	}{
		{workoutCmd, []string{"add", "list", "delete"}},
		{activityCmd, []string{"add", "list", "delete"}},
		{syncCmd, []string{"link", "unlink", "status", "now", "repair", "reset", "wipe"}},
	}
	for _, tt := range tests {
		names := make(map[string]bool)
		for _, c := range tt.parent.Commands() {
			names[c.Name()] = true
		}
		for _, n := range tt.want {
			if !names[n] {
				t.Errorf("%s: missing subcommand %q", tt.parent.Name(), n)
			}
		}
	}
}
