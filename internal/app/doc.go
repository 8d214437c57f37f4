// Package app provides the application service layer.
//
// ApplicationService coordinates the application record store and the status history
// ledger so that every state change commits both or neither. AccountService covers
// registration, login and user lookup. Both depend on domain interfaces only.
package app
