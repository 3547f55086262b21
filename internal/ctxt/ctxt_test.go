// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package ctxt

import (
	"testing"

	_ "dx8gl/driver/null"
)

func TestOpenMatchesByName(t *testing.T) {
	c, err := Open("null")
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	if c.GPU() == nil {
		t.Fatal("expected a non-nil GPU")
	}
	if c.Driver().Name() != "null" {
		t.Fatalf("driver name = %q, want %q", c.Driver().Name(), "null")
	}
}

func TestOpenUnknownNameFails(t *testing.T) {
	if _, err := Open("nonexistent-backend"); err == nil {
		t.Fatal("expected an error for an unmatched driver name")
	}
}
