package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"musiclib/internal/store"
)

func TestCopyFileWritesBackup(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "music.db")
	if err := os.WriteFile(src, []byte("sqlite bytes"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	if err := copyFile(src, src+".backup"); err != nil {
		t.Fatalf("copyFile: %v", err)
	}
	got, err := os.ReadFile(src + ".backup")
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(got) != "sqlite bytes" {
		t.Fatalf("unexpected backup contents %q", got)
	}
}

func TestPrintTableCounts(t *testing.T) {
	db, err := store.OpenSQLite(t.Context(), filepath.Join(t.TempDir(), "music.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer db.Close()
	if _, err := db.CreatePlaylist(t.Context(), "Road Trip", ""); err != nil {
		t.Fatalf("CreatePlaylist: %v", err)
	}

	counts, err := db.TableCounts(t.Context())
	if err != nil {
		t.Fatalf("TableCounts: %v", err)
	}
	var buf bytes.Buffer
	if err := printTableCounts(&buf, db.Engine(), counts); err != nil {
		t.Fatalf("printTableCounts: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "TABLE (sqlite)") {
		t.Fatalf("missing header in %q", out)
	}
	for _, table := range store.Tables {
		if !strings.Contains(out, table) {
			t.Fatalf("missing %s in %q", table, out)
		}
	}
	found := false
	for _, line := range strings.Split(out, "\n") {
		if fields := strings.Fields(line); len(fields) == 2 && fields[0] == "playlists" {
			found = fields[1] == "1"
		}
	}
	if !found {
		t.Fatalf("expected playlists row count 1 in %q", out)
	}
}

func TestPrintCopyStats(t *testing.T) {
	var buf bytes.Buffer
	stats := store.CopyStats{Playlists: 2, PlaylistSongs: 5, LikedSongs: 1}
	if err := printCopyStats(&buf, stats); err != nil {
		t.Fatalf("printCopyStats: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 7 {
		t.Fatalf("expected header plus six tables, got %d lines", len(lines))
	}
	if fields := strings.Fields(lines[2]); fields[0] != "playlist_songs" || fields[1] != "5" {
		t.Fatalf("unexpected row %q", lines[2])
	}
}
