package service

import (
	"context"
	"log"
	"time"

	"github.com/keketcl/umanager/internal/watcher"
	"github.com/keketcl/umanager/internal/winapi"
)

// Daemon runs the device-change watcher in the background and logs
// arrivals and removals. It is the payload of the OS service wrapper and
// of `umanager watch`.
type Daemon struct {
	interval time.Duration
	maxDepth int
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewDaemon(interval time.Duration, maxAncestorDepth int) *Daemon {
	return &Daemon{interval: interval, maxDepth: maxAncestorDepth}
}

// Start opens the platform session and launches the watch loop. It
// returns immediately; the loop runs until Stop.
func (d *Daemon) Start() error {
	session, err := winapi.Open()
	if err != nil {
		return err
	}
	_, storage := session.Services(d.maxDepth)

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.done = make(chan struct{})

	w := watcher.New(storage, d.interval)
	go func() {
		defer close(d.done)
		w.Run(ctx)
	}()
	go d.logChanges(ctx, w)

	log.Println("umanager daemon started")
	return nil
}

// Stop cancels the watch loop and waits for it to exit.
func (d *Daemon) Stop() error {
	if d.cancel == nil {
		return nil
	}
	d.cancel()
	<-d.done
	log.Println("umanager daemon stopped")
	return nil
}

func (d *Daemon) logChanges(ctx context.Context, w *watcher.Watcher) {
	for {
		select {
		case <-ctx.Done():
			return
		case change := <-w.Changes():
			for _, id := range change.Added {
				log.Printf("storage device attached: %s", id)
			}
			for _, id := range change.Removed {
				log.Printf("storage device removed: %s", id)
			}
		}
	}
}
