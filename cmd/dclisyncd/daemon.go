package main

import (
	"context"
	"time"

	"github.com/kpango/glg"

	"github.com/mikechambers/dcli-sub000/store"
)

// syncInterval is the sleep between daemon-mode sync passes (§4.4.10).
const syncInterval = 15 * time.Second

// runDaemon repeats SyncAll on an interval until ctx is cancelled. A
// cancellation while sleeping returns immediately; a cancellation while
// SyncAll is working lets the in-flight activity finish its own transaction
// (SyncAll already stops walking members once ctx.Err() is non-nil) before
// this loop breaks at its top.
func runDaemon(ctx context.Context, engine *store.Engine) {
	for {
		result, err := engine.SyncAll(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			glg.Errorf("sync pass failed: %s", err.Error())
		} else {
			glg.Infof("sync pass complete: synced %d of %d available", result.TotalSynced, result.TotalAvailable)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(syncInterval):
		}
	}
}
