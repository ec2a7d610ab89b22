// Package dto defines the JSON shapes exchanged over HTTP and the conversions
// between them and the domain models.
//
// The DTO graph mirrors the domain graph. Back-references are kept in memory
// so either side can be walked, but they are never serialized: an AccountDTO
// lists its bills, a BillDTO names its owner only through accountId.
package dto
