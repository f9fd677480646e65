// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package history

import (
	"bytes"
	"crypto/md5" //nolint:gosec
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/apex/log"

	"github.com/staranto/cachedash/internal/config"
)

// Entry is one remembered session identifier. EncodedKey is the hashed
// filename it is stored under.
type Entry struct {
	SessionID  string
	EncodedKey string
	Path       string
	Used       time.Time
}

// Dir resolves the history directory.
// Precedence:
//  1. CACHEDASH_HISTORY_DIR, if set and non-empty
//  2. os.UserCacheDir()/cachedash/history
//
// Returns ("", false) if no directory can be resolved.
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("CACHEDASH_HISTORY_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "cachedash", "history"), true
	}
	return "", false
}

// Enabled reports whether history is turned on. CACHEDASH_HISTORY wins over
// the config file.
func Enabled() bool {
	if v, ok := os.LookupEnv("CACHEDASH_HISTORY"); ok && v != "" {
		return v == "1" || v == "true"
	}
	enabled, _ := config.GetBool("history.enabled", false)
	return enabled
}

// Add records sessionID as just used. It is a no-op when history is off.
func Add(sessionID string) error {
	if !Enabled() || sessionID == "" {
		return nil
	}
	base, ok := Dir()
	if !ok {
		return nil
	}
	if err := os.MkdirAll(base, 0o700); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	p := filepath.Join(base, encodeKey(sessionID))
	if err := os.WriteFile(p, []byte(sessionID), 0o600); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write history: %w", err)
	}

	// Rewriting identical content does not always move mtime on coarse
	// filesystems.
	now := time.Now()
	_ = os.Chtimes(p, now, now)
	return nil
}

// Recent returns up to limit entries, most recently used first. A limit of
// zero or less returns everything.
func Recent(limit int) []Entry {
	if !Enabled() {
		return nil
	}
	base, ok := Dir()
	if !ok {
		return nil
	}

	files, err := os.ReadDir(base)
	if err != nil {
		return nil
	}

	var entries []Entry
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		p := filepath.Join(base, f.Name())
		info, err := f.Info()
		if err != nil {
			continue
		}
		b, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			SessionID:  string(bytes.TrimSpace(b)),
			EncodedKey: f.Name(),
			Path:       p,
			Used:       info.ModTime(),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Used.After(entries[j].Used)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// SessionIDs is Recent reduced to the identifiers.
func SessionIDs(limit int) []string {
	entries := Recent(limit)
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.SessionID)
	}
	return ids
}

// Purge removes entries not used in the last hours hours.
// If hours <= 0 or the directory cannot be resolved, it is a no-op.
func Purge(hours int) error {
	if hours <= 0 {
		log.Debug("history cleaning disabled")
		return nil
	}
	base, ok := Dir()
	if !ok {
		return nil
	}
	if _, err := os.Stat(base); os.IsNotExist(err) {
		return nil
	}

	maxAge := time.Duration(hours) * time.Hour
	if err := filepath.Walk(base, func(path string, info os.FileInfo, err error) error {
		if err != nil || info == nil {
			return nil
		}
		if !info.IsDir() && time.Since(info.ModTime()) > maxAge {
			if err := os.Remove(path); err == nil {
				log.Debugf("removed history file %s", path)
			} else {
				log.WithError(err).Warnf("failed to remove history file %s", path)
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("failed to purge history: %w", err)
	}
	return nil
}

// encodeKey hashes k with MD5 and returns the hex string.
func encodeKey(k string) string {
	h := md5.New() //nolint:gosec
	_, _ = h.Write([]byte(k))
	return hex.EncodeToString(h.Sum(nil))
}
