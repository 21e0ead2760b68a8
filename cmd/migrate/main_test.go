package main

import (
	"regexp"
	"strings"
	"testing"
)

func readMigration(t *testing.T, name string) string {
	t.Helper()
	data, err := migrations.ReadFile("migrations/" + name)
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return string(data)
}

func TestMediaExternalIDNotUnique(t *testing.T) {
	up := readMigration(t, "000001_initial_schema.up.sql")

	if regexp.MustCompile(`(?i)UNIQUE[^;]*external_id`).MatchString(up) {
		t.Error("media.external_id must not be unique; headlines may be ingested again on a later run")
	}
	if !strings.Contains(up, "CREATE INDEX idx_media_external_id ON media(external_id)") {
		t.Error("external_id lookup index missing")
	}
}

func TestArchivedScoresMediaIDHasNoForeignKey(t *testing.T) {
	up := readMigration(t, "000001_initial_schema.up.sql")

	start := strings.Index(up, "CREATE TABLE archived_scores")
	if start < 0 {
		t.Fatal("archived_scores table missing")
	}
	end := strings.Index(up[start:], ");")
	table := up[start : start+end]

	if strings.Contains(table, "REFERENCES") {
		t.Errorf("archived_scores must not reference other tables:\n%s", table)
	}
	if !strings.Contains(table, "media_id UUID NOT NULL") {
		t.Errorf("archived_scores.media_id missing:\n%s", table)
	}
}
