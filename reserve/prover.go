package reserve

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-reserve/merkle"
	"github.com/google/uuid"
)

type ProverOptions struct {
	tags  merkle.Tags
	clock func() time.Time
	newID func() uuid.UUID
}

type ProverOption func(*ProverOptions)

// WithTags sets the hashing scheme. The default is merkle.DefaultTags.
func WithTags(tags merkle.Tags) ProverOption {
	return func(opts *ProverOptions) {
		opts.tags = tags
	}
}

func WithClock(clock func() time.Time) ProverOption {
	return func(opts *ProverOptions) {
		opts.clock = clock
	}
}

// WithSnapshotIDs replaces the generator of snapshot identifiers.
func WithSnapshotIDs(newID func() uuid.UUID) ProverOption {
	return func(opts *ProverOptions) {
		opts.newID = newID
	}
}

// ProofResponse is an inclusion proof for one record against the root of the
// snapshot it was produced from.
type ProofResponse struct {
	RecordID   int64
	Balance    uint64
	LeafIndex  uint64
	Root       merkle.Hash
	Steps      merkle.Proof
	SnapshotID string
}

// snapshot is immutable once published.
type snapshot struct {
	tree       *merkle.Tree
	records    []merkle.Record
	index      map[int64]int
	commitment Commitment
}

// Prover answers proof requests from a materialized tree over the records of
// a store. The tree is built once per snapshot and replaced wholesale when the
// records change, so readers never observe a partially rebuilt tree.
type Prover struct {
	log   logger.Logger
	store RecordStore
	opts  ProverOptions

	// rebuildMu serialises rebuilds and store mutations. Readers only load
	// current.
	rebuildMu sync.Mutex
	current   atomic.Pointer[snapshot]
}

func NewProver(log logger.Logger, store RecordStore, opts ...ProverOption) (*Prover, error) {
	p := &Prover{
		log:   log,
		store: store,
		opts: ProverOptions{
			tags:  merkle.DefaultTags(),
			clock: time.Now,
			newID: uuid.New,
		},
	}
	for _, o := range opts {
		o(&p.opts)
	}
	if err := p.opts.tags.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Prover) Tags() merkle.Tags { return p.opts.tags }

// Rebuild reads the store, builds a new tree and publishes it.
func (p *Prover) Rebuild(ctx context.Context) (Commitment, error) {
	p.rebuildMu.Lock()
	defer p.rebuildMu.Unlock()
	return p.rebuild(ctx)
}

func (p *Prover) rebuild(ctx context.Context) (Commitment, error) {
	records, err := p.store.Records(ctx)
	if err != nil {
		return Commitment{}, err
	}
	tree, err := merkle.BuildTree(records, p.opts.tags)
	if err != nil {
		return Commitment{}, err
	}

	index := make(map[int64]int, len(records))
	for i, r := range records {
		// the first record with an id is the one proofs are given for
		if _, ok := index[r.ID]; !ok {
			index[r.ID] = i
		}
	}

	snap := &snapshot{
		tree:       tree,
		records:    records,
		index:      index,
		commitment: NewCommitment(tree, p.opts.newID(), p.opts.clock()),
	}
	p.current.Store(snap)

	p.log.Infof(
		"reserve snapshot %s: %d records, root %s",
		snap.commitment.SnapshotID, len(records), tree.Root())
	return snap.commitment, nil
}

func (p *Prover) snapshot() (*snapshot, error) {
	snap := p.current.Load()
	if snap == nil {
		return nil, ErrNotBuilt
	}
	return snap, nil
}

// Commitment returns the commitment of the current snapshot.
func (p *Prover) Commitment() (Commitment, error) {
	snap, err := p.snapshot()
	if err != nil {
		return Commitment{}, err
	}
	return snap.commitment, nil
}

// Tree returns the tree of the current snapshot.
func (p *Prover) Tree() (*merkle.Tree, error) {
	snap, err := p.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.tree, nil
}

// Proof returns the inclusion proof for the record with the given id.
func (p *Prover) Proof(id int64) (ProofResponse, error) {
	snap, err := p.snapshot()
	if err != nil {
		return ProofResponse{}, err
	}
	i, ok := snap.index[id]
	if !ok {
		return ProofResponse{}, fmt.Errorf("%w: id %d", merkle.ErrRecordNotFound, id)
	}
	r := snap.records[i]

	leaf, err := snap.tree.LeafHash(i)
	if err != nil {
		return ProofResponse{}, err
	}
	proof, ok := merkle.GenerateProofFromTree(snap.tree, leaf)
	if !ok {
		return ProofResponse{}, fmt.Errorf("%w: id %d has no path to the root", merkle.ErrRecordNotFound, id)
	}

	p.log.Debugf("proof for record %d: %d steps, snapshot %s", id, len(proof), snap.commitment.SnapshotID)
	return ProofResponse{
		RecordID:   r.ID,
		Balance:    r.Balance,
		LeafIndex:  uint64(i),
		Root:       snap.tree.Root(),
		Steps:      proof,
		SnapshotID: snap.commitment.SnapshotID,
	}, nil
}

// Verify reports whether (id, balance) is included in the current snapshot.
// An id that is not committed at all is an error rather than false.
func (p *Prover) Verify(id int64, balance uint64) (bool, error) {
	resp, err := p.Proof(id)
	if err != nil {
		return false, err
	}
	candidate := merkle.Record{ID: id, Balance: balance}
	return merkle.VerifyProof(resp.Steps, candidate, resp.Root, p.opts.tags), nil
}

// Receipt returns a self contained receipt for the record with the given id.
func (p *Prover) Receipt(id int64) (Receipt, error) {
	resp, err := p.Proof(id)
	if err != nil {
		return Receipt{}, err
	}
	return NewReceipt(resp, resp.SnapshotID), nil
}

// AddRecord adds r to the store and publishes a snapshot that includes it.
// Proofs obtained before the call remain valid only against the previous
// root.
func (p *Prover) AddRecord(ctx context.Context, r merkle.Record) (Commitment, error) {
	p.rebuildMu.Lock()
	defer p.rebuildMu.Unlock()

	if err := p.store.Add(ctx, r); err != nil {
		return Commitment{}, err
	}
	return p.rebuild(ctx)
}
