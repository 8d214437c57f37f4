// Package domain defines the core domain types and interfaces.
//
// Concept-oriented files (application.go, history.go, user.go, session.go, tx.go, errors.go)
// hold shared types and the store contracts implemented by the adapters. Validation that
// belongs to a type lives next to it; there is no storage or transport code here.
package domain
