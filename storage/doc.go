// Package storage defines the persistence contracts for postings and tags,
// the serialization of stored records, and the shared storage error values.
//
// The PostingRepository is the exclusive owner of durable writes: posting
// rows, tag rows, posting-tag associations, and the cached total count are
// only ever mutated through it. Concrete backends live in subpackages
// (storage/badger).
package storage
