// Package grid is the token grid controller. It is the data source of the
// rendered grid: it binds cells to tokens, resolves their thumbnails, routes
// gestures into the reorder machine and user actions into the presentation
// router.
package grid
