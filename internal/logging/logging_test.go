package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected log.Level
	}{
		{"debug", log.DebugLevel},
		{" INFO ", log.InfoLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"", DefaultLevel},
		{"loud", DefaultLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestParseFormatter(t *testing.T) {
	tests := []struct {
		input    string
		expected log.Formatter
	}{
		{"json", log.JSONFormatter},
		{"logfmt", log.LogfmtFormatter},
		{"text", log.TextFormatter},
		{"", log.TextFormatter},
	}

	for _, tt := range tests {
		if got := ParseFormatter(tt.input); got != tt.expected {
			t.Errorf("ParseFormatter(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestFromStringsFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := FromStrings(&buf, "warn", "logfmt")

	logger.Info("hidden")
	logger.Warn("snapshot unusable", "key", "taskList")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message should be filtered, got %q", out)
	}
	if !strings.Contains(out, "snapshot unusable") || !strings.Contains(out, "key=taskList") {
		t.Errorf("expected warn message with fields, got %q", out)
	}
}

func TestDiscard(t *testing.T) {
	Discard().Error("nothing to see")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		level   string
		format  string
		wantErr error
	}{
		{"", "", nil},
		{"Debug", "json", nil},
		{"warning", "logfmt", nil},
		{"loud", "", ErrInvalidLevel},
		{"info", "yaml", ErrInvalidFormat},
	}

	for _, tt := range tests {
		err := Validate(tt.level, tt.format)
		if tt.wantErr == nil {
			if err != nil {
				t.Errorf("Validate(%q, %q) = %v, expected nil", tt.level, tt.format, err)
			}
			continue
		}
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("Validate(%q, %q) = %v, expected %v", tt.level, tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateListsValidValues(t *testing.T) {
	err := Validate("loud", "")
	if err == nil || !strings.Contains(err.Error(), "debug, info, warn, error") {
		t.Fatalf("expected valid levels in error, got %v", err)
	}
}
