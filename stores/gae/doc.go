//go:build !wasm
// +build !wasm

// Package gae provides a Google Cloud Datastore implementation of the
// gatehouse UserStore - the document-database credential store.
//
// # Datastore Kinds
//
// The package uses the following Datastore kinds:
//   - User: User accounts keyed by their opaque id
//   - Username: Reservation entities keyed by the lowercased username,
//     written in the same transaction as the User to enforce uniqueness
//
// # Namespacing
//
// The store supports Datastore namespaces for multi-tenant applications.
// Pass a namespace when creating the store to isolate data between tenants:
//
//	userStore := gae.NewUserStore(client, "tenant-123")
//
// # Usage
//
//	client, _ := datastore.NewClient(ctx, projectID)
//	userStore := gae.NewUserStore(client, "") // default namespace
package gae
