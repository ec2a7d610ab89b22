// Package models defines the billing aggregate.
//
// An Account is the aggregate root. It exclusively owns its Bills, and every
// Bill exclusively owns its BillCharges:
//
//	Account ──< Bill ──< BillCharge
//
// Ownership runs parent to child through slices. Each child also keeps a
// non-owning pointer back to its parent so a loaded graph can be walked in
// either direction. Deleting an owner deletes everything it owns.
//
// Identifiers are assigned by the storage layer when a row is first created
// and are only supplied by callers to address an existing row on update.
package models
