// Package window implements the per-window session controller.
//
// A Controller owns exactly one Document for its whole life. It derives the
// window state (title, save enablement, read-only) from that document with
// the pure Derive function and pushes the result to its Sink. It decides
// whether an opened file replaces the current blank document or gets a new,
// cascaded window, guards closing against unsaved changes, and writes shared
// settings to the Store before broadcasting the change to every other window
// through the session registry.
//
// Everything runs on one UI thread. Collaborators (the document, the sink,
// the spawner) are called synchronously, and a Document change notification
// always observes the mutation that caused it.
//
// # Construction order
//
// New installs the document before attaching the sink, since the first
// Render reads the document. A missing document is rejected with
// ErrNoDocument.
//
// # Lifecycle
//
//	Open ──RequestClose──▶ Document.ConfirmDiscard
//	                        ├─ Proceed ─▶ Closed (removed from registry)
//	                        └─ Cancel  ─▶ CloseDenied, stays Open
package window
