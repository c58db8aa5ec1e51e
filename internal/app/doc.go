// Package app is the composition root. It loads config, builds the logger,
// the catalog client, the store and the controller, then hands them to either
// the dashboard (Run) or the headless page exporter (Export).
//
// Both entry points share setup so that a page exported from the command line
// contains exactly the rows the dashboard would show for the same search,
// sort and page.
package app
