package telemetry

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestNewEmitter_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	e, err := NewEmitter(path)
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}
	defer e.Close()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file at %s: %v", path, err)
	}
}

func TestNewEmitter_ErrorOnBadPath(t *testing.T) {
	_, err := NewEmitter(filepath.Join(t.TempDir(), "missing", "events.jsonl"))
	if err == nil {
		t.Fatal("expected error for path in nonexistent directory")
	}
}

func TestEmit_WritesValidJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	e, err := NewEmitter(path)
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}

	events := []Event{
		{Timestamp: time.Now(), Kind: KindAnalyze, Strategy: "smart_balance", TaskCount: 4, DurationMs: 12},
		{Timestamp: time.Now(), Kind: KindSuggest, Strategy: "fastest_wins", TaskCount: 2, CycleCount: 1},
		{Timestamp: time.Now(), Kind: KindError, Detail: "No tasks provided"},
	}
	for _, evt := range events {
		if err := e.Emit(evt); err != nil {
			t.Fatalf("Emit: %v", err)
		}
	}
	if err := e.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()

	var got []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var evt Event
		if err := json.Unmarshal(scanner.Bytes(), &evt); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", len(got)+1, err)
		}
		got = append(got, evt)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}

	if len(got) != len(events) {
		t.Fatalf("got %d events, want %d", len(got), len(events))
	}
	for i, evt := range got {
		if evt.Kind != events[i].Kind {
			t.Errorf("event %d kind = %q, want %q", i, evt.Kind, events[i].Kind)
		}
	}
	if got[0].TaskCount != 4 || got[2].Detail != "No tasks provided" {
		t.Errorf("event fields did not round-trip: %+v", got)
	}
}

func TestEmit_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")

	for range 2 {
		e, err := NewEmitter(path)
		if err != nil {
			t.Fatalf("NewEmitter: %v", err)
		}
		if err := e.Emit(Event{Timestamp: time.Now(), Kind: KindAnalyze}); err != nil {
			t.Fatalf("Emit: %v", err)
		}
		e.Close()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := 0
	for _, b := range data {
		if b == '\n' {
			lines++
		}
	}
	if lines != 2 {
		t.Errorf("got %d lines after two sessions, want 2", lines)
	}
}

func TestEmit_Concurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	e, err := NewEmitter(path)
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}

	const workers = 8
	const perWorker = 25
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if err := e.Emit(Event{Timestamp: time.Now(), Kind: KindAnalyze}); err != nil {
					t.Errorf("Emit: %v", err)
				}
			}
		}()
	}
	wg.Wait()
	if err := e.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var evt Event
		if err := json.Unmarshal(scanner.Bytes(), &evt); err != nil {
			t.Fatalf("interleaved write produced invalid JSON: %v", err)
		}
		count++
	}
	if count != workers*perWorker {
		t.Errorf("got %d events, want %d", count, workers*perWorker)
	}
}

func TestNilEmitterIsNoOp(t *testing.T) {
	var e *Emitter
	if err := e.Emit(Event{Kind: KindAnalyze}); err != nil {
		t.Errorf("nil Emit = %v", err)
	}
	if err := e.Close(); err != nil {
		t.Errorf("nil Close = %v", err)
	}
}
