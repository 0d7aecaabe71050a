// ABOUTME: Install Claude Code skill for healthlog
// ABOUTME: Embeds SKILL.md and writes it under ~/.claude/skills/healthlog/

package main

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

//go:embed skill/SKILL.md
var skillFS embed.FS

var skillSkipConfirm bool

var installSkillCmd = &cobra.Command{
	Use:         "install-skill",
	Short:       "Teach Claude Code to log workouts, water, and steps",
	Annotations: skipStore,
	Long: `Install the healthlog skill for Claude Code.

The skill tells Claude Code which healthlog commands to run when you talk
about your day:

  "I ran for 30 minutes"        → healthlog workout add ... --type cardio
  "had two glasses of water"    → healthlog water add 250 (twice)
  "walked 4000 steps"           → healthlog steps add 4000
  "how am I doing today?"       → healthlog stats

Commands run against your current session, so log in first.
The skill is written to ~/.claude/skills/healthlog/SKILL.md.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return installSkill(cmd.OutOrStdout(), cmd.InOrStdin())
	},
}

func init() {
	installSkillCmd.Flags().BoolVarP(&skillSkipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(installSkillCmd)
}

func skillPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".claude", "skills", "healthlog", "SKILL.md"), nil
}

// installSkill writes the embedded skill, asking on in unless --yes is set.
// An identical installed copy is left alone.
func installSkill(out io.Writer, in io.Reader) error {
	dest, err := skillPath()
	if err != nil {
		return err
	}
	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		return fmt.Errorf("failed to read embedded skill: %w", err)
	}

	existing, err := os.ReadFile(dest)
	switch {
	case err == nil && bytes.Equal(existing, content):
		fmt.Fprintf(out, "healthlog skill is already up to date at %s\n", dest)
		return nil
	case err == nil:
		fmt.Fprintf(out, "Updating the healthlog skill at %s\n", dest)
	default:
		fmt.Fprintf(out, "Installing the healthlog skill to %s\n", dest)
	}

	if !skillSkipConfirm {
		fmt.Fprint(out, "Continue? [y/N] ")
		response, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && response == "" {
			return fmt.Errorf("failed to read response: %w", err)
		}
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(out, "Installation canceled.")
			return nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0750); err != nil {
		return fmt.Errorf("failed to create skill directory: %w", err)
	}
	if err := os.WriteFile(dest, content, 0600); err != nil {
		return fmt.Errorf("failed to write skill file: %w", err)
	}

	fmt.Fprintln(out, color.GreenString("✓ Installed healthlog skill"))
	fmt.Fprintln(out, `Try asking Claude: "log a 30 minute run and 500 ml of water"`)
	return nil
}
