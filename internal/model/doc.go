package model

// Package model defines domain data structures used across the app: user
// profiles, the workflow state enum, selected files, processing results, and
// the shared error taxonomy. Structures are designed for direct binding in
// the UI and explicit state transitions.
