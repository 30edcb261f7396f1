package layout

// Package layout computes token grid geometry from container width,
// orientation and device class. Everything here is pure and must be
// re-evaluated on every layout pass.
