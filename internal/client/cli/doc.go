// Package cli provides the interactive storefront command-line client.
//
// It wires configuration, the local state database, the authenticated HTTP
// pipeline, and an interactive REPL over the storefront operations. Typical
// flow: restore the session silently in the background, browse the catalog,
// fill the cart, and walk the three-step checkout.
//
// Key features:
//   - Register / Login / Logout
//   - Catalog listing and cart management
//   - Three-step checkout with pay-online and pay-on-delivery paths
//   - Profile viewing, editing and account deletion
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
