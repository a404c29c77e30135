package entity

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetLogger_DerivationEvent(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	type Audit struct {
		Id   int `db:",key"`
		Note string
	}

	if _, err := Of[Audit](); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The cached second lookup must not log again.
	if _, err := Of[Audit](); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := logs.FilterMessage("derived entity metadata").All()
	if len(entries) != 1 {
		t.Fatalf("got %d derivation events, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["table"] != "Audit" {
		t.Errorf("table field: got %v, want %q", fields["table"], "Audit")
	}
	if fields["key"] != "Id" {
		t.Errorf("key field: got %v, want %q", fields["key"], "Id")
	}
}

func TestSetLogger_NilRestoresNoop(t *testing.T) {
	SetLogger(nil)
	if log() == nil {
		t.Fatal("expected the no-op logger, got nil")
	}
}
