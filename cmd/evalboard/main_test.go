package main

import (
	"errors"
	"testing"
)

func TestMainWiring(t *testing.T) {
	origSetVersion := setVersionInfo
	origExecute := executeCmd
	origExit := exit
	t.Cleanup(func() {
		setVersionInfo = origSetVersion
		executeCmd = origExecute
		exit = origExit
	})

	calls := struct {
		version bool
		exec    bool
		exit    bool
	}{}

	setVersionInfo = func(v, c, d string) {
		calls.version = true
		if v == "" || c == "" || d == "" {
			t.Fatalf("expected version info to be set")
		}
	}
	executeCmd = func() error {
		calls.exec = true
		return nil
	}
	exit = func(code int) {
		calls.exit = true
	}

	main()

	if !calls.version || !calls.exec || calls.exit {
		t.Fatalf("unexpected wiring calls: %+v", calls)
	}
}

func TestMainExitsOnError(t *testing.T) {
	origExecute := executeCmd
	origExit := exit
	t.Cleanup(func() {
		executeCmd = origExecute
		exit = origExit
	})

	code := -1
	executeCmd = func() error { return errors.New("boom") }
	exit = func(c int) { code = c }

	main()

	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}
