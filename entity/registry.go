// Package entity maintains the process-wide cache of derived metadata.
package entity

import (
	"reflect"
	"sync"

	"go.uber.org/zap"
)

var metadataRegistry = struct {
	mu     sync.RWMutex
	byType map[reflect.Type]*Metadata
}{
	byType: make(map[reflect.Type]*Metadata),
}

var logger = struct {
	mu sync.RWMutex
	l  *zap.Logger
}{
	l: zap.NewNop(),
}

// SetLogger installs a logger for metadata derivation events. Passing nil
// restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.mu.Lock()
	logger.l = l
	logger.mu.Unlock()
}

func log() *zap.Logger {
	logger.mu.RLock()
	defer logger.mu.RUnlock()
	return logger.l
}

// Of returns the mapping metadata for the record type T, deriving it on
// first use and serving the cached instance afterwards. Concurrent first
// access may derive more than once; one result is published and all callers
// observe it. Derivation failures are never cached: a type without exactly
// one key member fails identically on every call.
func Of[T any]() (*Metadata, error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	metadataRegistry.mu.RLock()
	meta, ok := metadataRegistry.byType[t]
	metadataRegistry.mu.RUnlock()
	if ok {
		return meta, nil
	}

	meta, err := derive(t)
	if err != nil {
		return nil, err
	}

	metadataRegistry.mu.Lock()
	defer metadataRegistry.mu.Unlock()
	if existing, ok := metadataRegistry.byType[t]; ok {
		// Another goroutine won the race; its result is the published one.
		return existing, nil
	}
	metadataRegistry.byType[t] = meta

	log().Debug("derived entity metadata",
		zap.String("type", t.String()),
		zap.String("table", meta.Table),
		zap.String("key", meta.KeyName),
		zap.Int("columns", len(meta.Columns)),
	)
	return meta, nil
}

// MustOf is a helper that calls Of and panics if derivation fails. It is
// intended for use during application initialization.
func MustOf[T any]() *Metadata {
	meta, err := Of[T]()
	if err != nil {
		panic(err)
	}
	return meta
}
