// ABOUTME: Tests for the install-skill command.
// ABOUTME: Validates embedded content, installation, and overwrite behavior.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSkillFSReadEmbeddedContent(t *testing.T) {
	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		t.Fatalf("Failed to read embedded skill/SKILL.md: %v", err)
	}

	contentStr := string(content)
	if !strings.HasPrefix(contentStr, "---") {
		t.Error("Expected SKILL.md to start with YAML frontmatter (---)")
	}
	for _, marker := range []string{
		"name: healthlog",
		"description:",
		"healthlog workout add",
		"healthlog water add",
		"healthlog steps add",
		"healthlog stats",
	} {
		if !strings.Contains(contentStr, marker) {
			t.Errorf("Expected SKILL.md to contain %q", marker)
		}
	}
}

func TestInstallSkillFunction(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	skillSkipConfirm = true
	defer func() { skillSkipConfirm = false }()

	var out bytes.Buffer
	if err := installSkill(&out, strings.NewReader("")); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}

	path := filepath.Join(tmpHome, ".claude", "skills", "healthlog", "SKILL.md")
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Expected skill file to be created: %v", err)
	}
	if mode := info.Mode().Perm(); mode&0600 != 0600 {
		t.Errorf("Expected file to be rw for owner, got %v", mode)
	}
	if !strings.Contains(out.String(), "Installed healthlog skill") {
		t.Errorf("unexpected output: %s", out.String())
	}

	out.Reset()
	if err := installSkill(&out, strings.NewReader("")); err != nil {
		t.Fatalf("second installSkill failed: %v", err)
	}
	if !strings.Contains(out.String(), "already up to date") {
		t.Errorf("Expected up-to-date message, got: %s", out.String())
	}
}

func TestInstallSkillOverwrite(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	skillDir := filepath.Join(tmpHome, ".claude", "skills", "healthlog")
	if err := os.MkdirAll(skillDir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(skillDir, "SKILL.md")
	if err := os.WriteFile(path, []byte("stale content"), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := installSkill(&out, strings.NewReader("y\n")); err != nil {
		t.Fatalf("installSkill overwrite failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "stale content") {
		t.Error("Old content should have been replaced")
	}
}

func TestInstallSkillDeclined(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	var out bytes.Buffer
	if err := installSkill(&out, strings.NewReader("n\n")); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}
	if !strings.Contains(out.String(), "canceled") {
		t.Errorf("Expected cancel message, got: %s", out.String())
	}
	if _, err := os.Stat(filepath.Join(tmpHome, ".claude", "skills", "healthlog", "SKILL.md")); !os.IsNotExist(err) {
		t.Errorf("Expected no skill file after declining, stat err = %v", err)
	}
}
