/*
Package envelope implements the envelope encryption protocol behind the
vault: a passphrase-derived key encryption key (KEK) wraps a random data
encryption key (DEK), and the DEK seals the actual vault payload.

The two-key design exists for one reason: rotating the passphrase re-wraps
the DEK under a new KEK and touches nothing else, so rotation cost is
independent of how large the vault has grown.

All functions here are stateless and pure with respect to storage. Each one
either returns a complete new Envelope value or an error; nothing is written
anywhere, no derived key survives the call, and callers are free to run
operations on independent envelopes concurrently. Serializing updates to a
single logical vault (a rotation racing a content update) is the remote
store's read-modify-write contract, not this package's.
*/
package envelope
