package editor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/amonks/tasklist/tasklist"
)

func TestRenderTaskTOML_New(t *testing.T) {
	task := tasklist.Task{ID: "abc12345", SectionID: "1"}
	content, err := RenderTaskTOML(DataFromTask(task, "Personal Tasks"))
	if err != nil {
		t.Fatalf("RenderTaskTOML failed: %v", err)
	}

	if !strings.Contains(content, `title = ""`) {
		t.Error("expected empty title")
	}
	if strings.Contains(content, "completed =") {
		t.Error("completed should not be present for a new task")
	}
	if !strings.Contains(content, "# section: Personal Tasks") {
		t.Error("expected section comment")
	}
	if !strings.Contains(content, "---") {
		t.Error("expected frontmatter separator")
	}
}

func TestRenderTaskTOML_Update(t *testing.T) {
	completedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	task := tasklist.Task{
		ID:          "abc12345",
		Title:       `Say "hi"`,
		Description: "A test description",
		CompletedAt: &completedAt,
	}

	content, err := RenderTaskTOML(DataFromTask(task, "Work"))
	if err != nil {
		t.Fatalf("RenderTaskTOML failed: %v", err)
	}

	if !strings.Contains(content, `title = "Say \"hi\""`) {
		t.Errorf("expected escaped title, got %q", content)
	}
	if !strings.Contains(content, "completed = true") {
		t.Error("expected completed = true")
	}
	if strings.Contains(content, "description =") {
		t.Error("expected description to be in body")
	}
	if !strings.HasSuffix(content, "---\nA test description\n") {
		t.Errorf("expected description after separator, got %q", content)
	}
}

func TestRenderParseRoundTrip(t *testing.T) {
	data := TaskData{IsUpdate: true, ID: "x", Section: "Work", Title: "Ship it", Description: "line one\nline two\n"}
	content, err := RenderTaskTOML(data)
	if err != nil {
		t.Fatalf("RenderTaskTOML failed: %v", err)
	}

	parsed, err := ParseTaskTOML(content)
	if err != nil {
		t.Fatalf("ParseTaskTOML failed: %v", err)
	}
	if parsed.Title != "Ship it" {
		t.Errorf("Title = %q", parsed.Title)
	}
	if parsed.Completed == nil || *parsed.Completed {
		t.Errorf("expected completed = false, got %v", parsed.Completed)
	}
	if !strings.HasPrefix(parsed.Description, "line one\nline two") {
		t.Errorf("Description = %q", parsed.Description)
	}
}

func TestParseTaskTOML(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantTitle string
		wantDesc  string
		wantErr   bool
	}{
		{
			name:      "title and body",
			content:   "title = \"  Buy milk \"\n---\n\n2% please\n",
			wantTitle: "Buy milk",
			wantDesc:  "2% please\n",
		},
		{
			name:      "no separator",
			content:   `title = "Only title"`,
			wantTitle: "Only title",
		},
		{
			name:      "blank title is allowed",
			content:   "title = \"\"\n---\n",
			wantTitle: "",
		},
		{
			name:      "crlf line endings",
			content:   "title = \"Windows\"\r\n---\r\nbody\r\n",
			wantTitle: "Windows",
			wantDesc:  "body\n",
		},
		{
			name:    "invalid toml",
			content: "title = \n---\n",
			wantErr: true,
		},
		{
			name:    "unknown field",
			content: "title = \"x\"\npriority = 2\n---\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseTaskTOML(tt.content)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if parsed.Title != tt.wantTitle {
				t.Errorf("Title = %q, expected %q", parsed.Title, tt.wantTitle)
			}
			if parsed.Description != tt.wantDesc {
				t.Errorf("Description = %q, expected %q", parsed.Description, tt.wantDesc)
			}
			edit := parsed.Edit()
			if edit.Title != parsed.Title || edit.Description != parsed.Description {
				t.Errorf("Edit() = %+v", edit)
			}
		})
	}
}

func TestEditTaskWithScriptedEditor(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "fake-editor")
	body := "#!/bin/sh\nprintf 'title = \"Edited\"\\n---\\nnew body\\n' > \"$1\"\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatalf("write fake editor: %v", err)
	}
	t.Setenv("EDITOR", script)

	parsed, err := EditTask(tasklist.Task{ID: "abc", Title: "Before"}, "Work")
	if err != nil {
		t.Fatalf("EditTask failed: %v", err)
	}
	if parsed.Title != "Edited" || parsed.Description != "new body\n" {
		t.Fatalf("unexpected parse result %+v", parsed)
	}
}

func TestEditReportsEditorFailure(t *testing.T) {
	t.Setenv("EDITOR", "false")

	if err := Edit(filepath.Join(t.TempDir(), "file")); err == nil {
		t.Fatal("expected error from failing editor")
	}
}
