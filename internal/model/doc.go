package model

// Package model defines the token entity rendered by the grid: issuer and
// label text, lock flag, style kind, image locator and the lazily computed
// current code. Tokens are owned by the store; the UI holds them only while a
// cell is bound.
