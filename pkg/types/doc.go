// Package types defines the entity structs, enumerations, configuration and
// standard error values for the huntbook record store.
//
// Entities mirror the tables of the embedded SQLite database: traps and their
// catches, firearms with usage logs and ammunition purchases, the species
// reference table, checklists, settings and the hunter profile. Callers create
// and mutate these structs and hand them to the internal/sqlite Store.
package types
