// Package rowparse turns one MEF source record into a surtax entry.
//
// The MEF table stores each municipality's rates as up to a dozen
// rate/description column pairs. Descriptions are free Italian prose that
// mix flat rates, progressive brackets, and exemptions; the Interpreter uses
// the fascia classifier and the italnum normalizer to recover a structured
// model.Entry, or reports why the row carries no usable data.
package rowparse
