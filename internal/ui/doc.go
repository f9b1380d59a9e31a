// Package ui contains the Bubble Tea program that powers the clipboard menu.
// The package is structured so the Model type focuses on message orchestration,
// while dedicated helpers own navigation, input, rendering, and state updates.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - Update forwards messages to the new-menu form while it is open. Otherwise
//     the message is routed through a typed handler registry so each tea.Msg is
//     handled by a focused function (key presses, action results, backend
//     events, window resizes).
//   - Navigation helpers (navigation.go) move between tabs and rows and queue
//     copy, paste and delete actions. Filter helpers (input.go) keep text entry
//     isolated from the browse key map.
//
// State ownership:
//   - Tab, row, viewport and filter state live in internal/ui/state.Nav.
//   - The command snapshot lives in internal/state.CommandStore and is refreshed
//     by the dispatcher after every store mutation or external file change. The
//     active tab is re-resolved by name whenever the menu list is rebuilt.
//   - Actions run asynchronously through internal/ui/command and report back
//     with a menu.ActionResult.
//
// Backend interactions:
//   - A backend.Watcher emits a tick every interval and a store event when the
//     command file changes on disk. Update re-arms waitForBackendEvent after
//     each one so the watcher is drained in order.
package ui
