// Package store defines the storage interfaces the HTTP handlers depend on.
//
// Every write is constrained by both the row id and the caller's owner id;
// the filtered statement is the sole authorization mechanism. A write that
// matches zero rows is reported as ErrNotFound, never as a silent success.
package store
