// Package state holds the in-memory product collection and everything the
// dashboard derives from it: the filtered and sorted view, the current page,
// and the product open in the detail form.
//
// Loads are tagged with a Revision from BeginLoad. CommitLoad and FailLoad
// ignore any revision older than the newest one, so a slow response can never
// overwrite a newer collection.
//
// Search and sort compose in one direction only. ApplySearch always filters
// the full collection and clears the sort; ApplySort reorders whatever the
// view currently holds. Both reset the page to one.
package state
