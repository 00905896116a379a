// Package output renders datasets and reads them back.
//
// Two formats are supported: a JSON document keyed by cadastral code, and a
// TypeScript module exporting the dataset as a typed object literal. Both
// readers report malformed entries individually through EntryError so an
// update run can drop a bad record without discarding the whole base file.
package output
