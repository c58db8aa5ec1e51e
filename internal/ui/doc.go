// Package ui implements the shopkeep dashboard as a Bubble Tea program.
//
// # Layout
//
// Every frame is rebuilt from a state.Snapshot:
//
//	row 0      header: counts, active search and sort, last load time
//	row 1      search box and sort selector
//	rows 2-14  product table (one page, at most state.PageSize rows)
//	row 15     pagination control, one item per page
//	row 16     status line
//	row 17     key help
//
// The layout is fixed so mouse coordinates can be mapped back to table rows,
// page items and sort options (see rowAt, pageAt and sortSpans).
//
// # Modal states
//
// Alerts, the help overlay and the product forms replace the main frame while
// open. An alert swallows the next key press. The hover tooltip is the only
// overlay drawn on top of the table; it is spliced into the frame with
// charmbracelet/x/ansi so the cells around it keep their styling.
//
// # Concurrency
//
// Network work never runs inside Update. Loads, saves and exports are
// tea.Cmds that call into the controller and report back with loadedMsg,
// savedMsg or exportedMsg. Search, sort and page changes are in-memory and
// applied synchronously.
package ui
