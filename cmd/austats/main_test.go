package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSeasonsCommand(t *testing.T) {
	cmd := seasonsCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs(nil)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"aux_softball  2023", "softball      2020", "volleyball    2023"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestGameBoxRejectsBadMode(t *testing.T) {
	cmd := gameBoxCmd()
	cmd.SetArgs([]string{"--mode", "coaches"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	if err := cmd.Execute(); err == nil {
		t.Error("Execute() error = nil, want mode error")
	}
}

func TestWriteTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.csv")
	err := writeTo(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "a,b\n")
		return err
	})
	if err != nil {
		t.Fatalf("writeTo() error = %v", err)
	}
	b, _ := os.ReadFile(path)
	if string(b) != "a,b\n" {
		t.Errorf("file = %q", b)
	}
}
