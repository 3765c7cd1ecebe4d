package ui

// Package ui contains the Fyne-based desktop user interface for the
// application. It renders the workflow from state snapshots and dispatches
// user actions to the workflow controller and session manager; it never
// mutates workflow state or credit balances itself.
