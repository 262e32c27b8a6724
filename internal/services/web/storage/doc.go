// Package storage declares persistence interfaces for tracker records.
//
// Stores own durable task, user, and equipment state; reporting code never
// touches the database directly and works on slices loaded through these
// contracts.
package storage
