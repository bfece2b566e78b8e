// Package reserve publishes proof of reserve commitments over an account
// record store.
//
// It is the collaborator layer around package merkle: stores supply the
// ordered record list, a Prover keeps an immutable materialized tree for the
// current record set and answers proof requests from it, and commitments can
// be signed as COSE Sign1 messages and proofs exported as CBOR receipts.
//
// Any change to the record set invalidates every previously issued proof. The
// Prover rebuilds the whole tree and swaps it in atomically; it never patches
// nodes in place.
package reserve
