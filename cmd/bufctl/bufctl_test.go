package main

import (
	"path/filepath"
	"testing"
)

func TestNewSetGetRoundTrip(t *testing.T) {
	writeTestSchema(t)
	buf := filepath.Join(t.TempDir(), "user.buf")

	if err := runNew([]string{buf}); err != nil {
		t.Fatalf("new failed: %v", err)
	}

	if err := runSet([]string{buf, "name", `"ada"`}); err != nil {
		t.Fatalf("set name failed: %v", err)
	}
	if err := runSet([]string{buf, "age", "36"}); err != nil {
		t.Fatalf("set age failed: %v", err)
	}
	if err := runSet([]string{buf, "tags.0", "math"}); err != nil {
		t.Fatalf("set tags.0 failed: %v", err)
	}

	out, err := captureOutput(t, func() error { return runGet([]string{buf, "name"}) })
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	assertJSON(t, out)
	assertContains(t, out, []string{"ada"})

	out, err = captureOutput(t, func() error { return runGet([]string{buf, "tags.0"}) })
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	assertContains(t, out, []string{"math"})
}

func TestGetAbsentPrintsNull(t *testing.T) {
	writeTestSchema(t)
	buf := filepath.Join(t.TempDir(), "user.buf")
	if err := runNew([]string{buf}); err != nil {
		t.Fatalf("new failed: %v", err)
	}

	out, err := captureOutput(t, func() error { return runGet([]string{buf, "name"}) })
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	assertContains(t, out, []string{"null"})
}

func TestDumpCommand(t *testing.T) {
	writeTestSchema(t)
	buf := filepath.Join(t.TempDir(), "user.buf")
	if err := runNew([]string{buf}); err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if err := runSet([]string{buf, "name", `"ada"`}); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	out, err := captureOutput(t, func() error { return runDump([]string{buf}) })
	if err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	assertJSON(t, out)
	assertContains(t, out, []string{"name", "ada"})
}

func TestDeleteAndCompact(t *testing.T) {
	writeTestSchema(t)
	buf := filepath.Join(t.TempDir(), "user.buf")
	if err := runNew([]string{buf}); err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if err := runSet([]string{buf, "name", `"a very long name payload"`}); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := runDelete([]string{buf, "name"}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := runCompact([]string{buf}); err != nil {
		t.Fatalf("compact failed: %v", err)
	}

	out, err := captureOutput(t, func() error { return runGet([]string{buf, "name"}) })
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	assertContains(t, out, []string{"null"})
}

func TestValidateCommand(t *testing.T) {
	writeTestSchema(t)
	out, err := captureOutput(t, runValidate)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	assertContains(t, out, []string{"valid", "table"})
}

func TestInfoCommand(t *testing.T) {
	writeTestSchema(t)
	buf := filepath.Join(t.TempDir(), "user.buf")
	if err := runNew([]string{buf}); err != nil {
		t.Fatalf("new failed: %v", err)
	}

	out, err := captureOutput(t, func() error { return runInfo([]string{buf}) })
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	assertContains(t, out, []string{"16-bit"})
}
