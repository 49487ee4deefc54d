// Package core provides the session and upload logic behind every
// presentation adapter.
//
// The package sits between the transport layer and the pure pipeline in
// package viewmodel. It owns no HTTP types and can be driven by handlers,
// tests or tools without modification.
//
// # Sessions
//
// Each browser session owns one [viewmodel.Model]. [Service.NewSession]
// registers a session and returns its uuid; [Service.Session] looks it up and
// refreshes its idle timer. [Service.RunSessionSweeper] drops sessions that
// stay idle for longer than [Options.SessionTTL].
//
// # Uploads
//
// [Service.Upload] reserves the session's next generation and returns an
// [UploadTicket] at once. A background goroutine then:
//
//  1. Waits for a slot in the process-wide [UploadLimiter]
//  2. Buffers the body with [ReadAllLimited]
//  3. Decodes it with [sheet.Parse]
//  4. Installs the table with [viewmodel.Model.Complete]
//
// Step 4 only succeeds for the newest generation, so when uploads race the
// file chosen last is the one shown. [Service.WaitForUploads] lets shutdown
// wait for in-flight uploads.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each category has a code for support reference:
//
//   - FILE001, FILE002, FILE004: file errors (size, decoding, missing)
//   - UPL002-UPL006: upload errors (busy, cancelled, timeout, superseded)
//   - SES001: expired session
//   - REQ001, RATE001, AUTH001: request errors
package core
