package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	// Create a temporary log file
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	// Write 10 lines of content
	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{
			name:     "read all (0)",
			maxLines: 0,
			expected: expectedAll,
		},
		{
			name:     "read all (negative)",
			maxLines: -1,
			expected: expectedAll,
		},
		{
			name:     "read partial (5)",
			maxLines: 5,
			expected: expectedAll[5:],
		},
		{
			name:     "read exactly all (10)",
			maxLines: 10,
			expected: expectedAll,
		},
		{
			name:     "read more than exists (20)",
			maxLines: 20,
			expected: expectedAll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read() = %v, %v, want nil, nil", got, err)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty line",
			input:    "",
			expected: "",
		},
		{
			name:     "plain text passes through",
			input:    "panic: something",
			expected: "panic: something",
		},
		{
			name:     "broken json passes through",
			input:    `{"level":"warn"`,
			expected: `{"level":"warn"`,
		},
		{
			name:     "warn with fields sorted",
			input:    `{"level":"warn","ts":"2025-10-08T21:01:05.123+0000","caller":"f1api/client.go:210","msg":"fetch failed","resource":"circuits","kind":"status","status":500}`,
			expected: "21:01:05 WARN fetch failed kind=status resource=circuits status=500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.input)
			if result != tt.expected {
				t.Errorf("Format() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestParse_EpochTimestamp(t *testing.T) {
	e, ok := Parse(`{"level":"info","ts":1728421265.5,"msg":"using fallback seed"}`)
	if !ok {
		t.Fatal("Parse() ok = false")
	}
	if e.Time.Unix() != 1728421265 {
		t.Errorf("Time = %v, want unix 1728421265", e.Time)
	}
	if e.Level != "INFO" || e.Message != "using fallback seed" || len(e.Fields) != 0 {
		t.Errorf("Parse() = %+v", e)
	}
}

func TestFormatLines(t *testing.T) {
	input := []string{
		`{"level":"debug","ts":"2025-10-08T21:01:05.000+0000","msg":"stale result dropped","panel":"drivers"}`,
		"not json",
	}
	expected := []string{
		"21:01:05 DEBUG stale result dropped panel=drivers",
		"not json",
	}
	if got := FormatLines(input); !reflect.DeepEqual(got, expected) {
		t.Errorf("FormatLines() = %q, want %q", got, expected)
	}
}
