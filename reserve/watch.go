package reserve

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/forestrie/go-reserve/merkle"
)

// Refresh re-reads the store and publishes a new snapshot only if the records
// now commit to a different root. It reports whether a snapshot was
// published. With nothing published yet it behaves as Rebuild.
func (p *Prover) Refresh(ctx context.Context) (Commitment, bool, error) {
	p.rebuildMu.Lock()
	defer p.rebuildMu.Unlock()

	current := p.current.Load()
	if current == nil {
		c, err := p.rebuild(ctx)
		return c, err == nil, err
	}

	records, err := p.store.Records(ctx)
	if err != nil {
		return Commitment{}, false, err
	}
	root, err := merkle.ComputeRecordsRoot(records, p.opts.tags)
	if err != nil {
		return Commitment{}, false, err
	}
	if bytes.Equal(root[:], current.commitment.Root) {
		return current.commitment, false, nil
	}

	c, err := p.rebuild(ctx)
	if err != nil {
		return Commitment{}, false, err
	}
	return c, true, nil
}

// Watch calls Refresh every interval until ctx is done, passing each newly
// published commitment to onChange. Store errors are logged and retried on
// the next tick, as a record document may be briefly unavailable while it is
// replaced. The interval must be positive.
func (p *Prover) Watch(ctx context.Context, interval time.Duration, onChange func(Commitment)) error {
	if interval <= 0 {
		return fmt.Errorf("%w: got %v", ErrWatchInterval, interval)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		c, changed, err := p.Refresh(ctx)
		switch {
		case err != nil && ctx.Err() != nil:
			return watchDone(ctx)
		case err != nil:
			p.log.Infof("refresh failed, retrying in %v: %v", interval, err)
		case changed && onChange != nil:
			onChange(c)
		}

		select {
		case <-ctx.Done():
			return watchDone(ctx)
		case <-ticker.C:
		}
	}
}

// watchDone treats cancellation as a normal end of watching.
func watchDone(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return nil
	}
	return ctx.Err()
}
