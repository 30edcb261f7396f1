package store

// Package store persists tokens and their display order in fyne preferences.
// The order is a string list of token IDs; every token is a JSON record keyed
// by its ID. All mutations are expected to come from the UI loop.
