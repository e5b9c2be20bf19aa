// Package watcher detects storage-device arrival and removal by polling
// the storage service and diffing consecutive id snapshots.
package watcher

import (
	"context"
	"strings"
	"time"

	"github.com/keketcl/umanager/internal/usb"
)

// DefaultInterval is the poll period between scans.
const DefaultInterval = 2 * time.Second

// Lister is the slice of the storage service the watcher needs.
type Lister interface {
	Refresh() error
	ListStorageDeviceIDs() []usb.DeviceID
}

// Change reports one observed difference between consecutive scans.
type Change struct {
	Added   []usb.DeviceID
	Removed []usb.DeviceID
}

// Watcher polls a Lister and delivers a Change whenever the set of storage
// devices differs from the previous scan. All service calls happen on the
// watcher's own goroutine, keeping the single-mutator rule intact.
type Watcher struct {
	lister   Lister
	interval time.Duration
	changes  chan Change
}

func New(lister Lister, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Watcher{
		lister:   lister,
		interval: interval,
		changes:  make(chan Change, 1),
	}
}

// Changes delivers detected differences. A change is dropped when the
// receiver is not keeping up; the next scan reports against the newest
// state anyway.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Run polls until ctx is canceled. The first scan seeds the baseline and
// emits nothing.
func (w *Watcher) Run(ctx context.Context) error {
	var previous []usb.DeviceID
	seeded := false

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if err := w.lister.Refresh(); err == nil {
			current := w.lister.ListStorageDeviceIDs()
			if seeded {
				if change := Diff(previous, current); !change.Empty() {
					select {
					case w.changes <- change:
					default:
					}
				}
			}
			previous = current
			seeded = true
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Empty reports whether the change carries no additions or removals.
func (c Change) Empty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0
}

// Diff compares two id snapshots case-insensitively.
func Diff(previous, current []usb.DeviceID) Change {
	prevSet := idSet(previous)
	currSet := idSet(current)

	var change Change
	for _, id := range current {
		if !prevSet[key(id)] {
			change.Added = append(change.Added, id)
		}
	}
	for _, id := range previous {
		if !currSet[key(id)] {
			change.Removed = append(change.Removed, id)
		}
	}
	return change
}

func idSet(ids []usb.DeviceID) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[key(id)] = true
	}
	return set
}

func key(id usb.DeviceID) string {
	return strings.ToLower(id.InstanceID())
}
