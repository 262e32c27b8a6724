// Package tracker defines the record types shared by the storage,
// reporting, and web layers: tasks, users, ICT equipment, device
// assignments, device issues, and directorates.
//
// Records are owned by the storage layer. Reporting code only reads them
// and derives ephemeral summary values.
package tracker
