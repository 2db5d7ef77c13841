package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Format: "json", Output: &buf})

	log.Info("connected", "addr", "localhost:28015")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if record["msg"] != "connected" {
		t.Errorf("msg = %v, want %q", record["msg"], "connected")
	}
	if record["addr"] != "localhost:28015" {
		t.Errorf("addr = %v, want %q", record["addr"], "localhost:28015")
	}
}

func TestNew_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Format: "text", Output: &buf})

	log.Info("stopped")

	if !strings.Contains(buf.String(), "msg=stopped") {
		t.Errorf("text output %q should contain msg=stopped", buf.String())
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Format: "json", Output: &buf})

	log.Debug("hidden")
	log.Info("hidden too")
	if buf.Len() != 0 {
		t.Errorf("records below warn should be dropped, got %q", buf.String())
	}

	log.Warn("visible")
	if buf.Len() == 0 {
		t.Error("warn record should be emitted")
	}
}

func TestSetLevel_Dynamic(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Format: "json", Output: &buf})

	SetLevel("debug")
	defer SetLevel("info")

	log.Debug("now visible")
	if buf.Len() == 0 {
		t.Error("debug record should be emitted after SetLevel(debug)")
	}
	if Level() != "debug" {
		t.Errorf("Level() = %q, want %q", Level(), "debug")
	}
}

func TestNew_RedactsAuthKey(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Format: "json", Output: &buf})

	log.Info("connecting", "auth_key", "hunter2")

	out := buf.String()
	if strings.Contains(out, "hunter2") {
		t.Errorf("output %q leaks the auth key", out)
	}
	if !strings.Contains(out, redactedValue) {
		t.Errorf("output %q should contain the redaction placeholder", out)
	}
}

func TestNew_RedactsNestedGroup(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Format: "json", Output: &buf})

	log.Info("saved", slog.Group("connection", "addr", "localhost:28015", "auth_key", "hunter2"))

	out := buf.String()
	if strings.Contains(out, "hunter2") {
		t.Errorf("output %q leaks the auth key inside a group", out)
	}
	if !strings.Contains(out, "localhost:28015") {
		t.Errorf("output %q should keep non-sensitive group values", out)
	}
}
