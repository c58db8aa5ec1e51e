// Package controller turns user intents into store mutations and catalog
// round trips.
//
// Methods block on the network and are meant to run inside a tea.Cmd, never
// on the Bubble Tea update loop itself. Every successful mutation is followed
// by a full reload; failed mutations leave the store exactly as it was.
package controller
