// Package ui contains the Bubble Tea program that hosts the command palette.
// The palette itself lives in internal/palette and knows nothing about
// terminals; this package feeds it menus, keys and pointer events and draws
// whatever it reports.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Keys go to the palette's key map first (navigation, activation); keys it
//     does not consume edit the search input, whose value is pushed back into
//     the palette as the search term.
//   - Every Update ends in finishUpdate, which settles the palette so deferred
//     rescoring, reselection and scrolling run once per message.
//
// State ownership:
//   - Menus are kept per source in internal/state and merged in source order.
//     The reconciler (reconcile.go) mounts, updates and unmounts palette
//     handles so the palette mirrors the merged menu, and serves the visual
//     order the navigator walks.
//   - The list (list.go) turns reconciled sections into rendered rows and owns
//     the viewport; it implements the palette's scroll hook.
//   - Item actions run asynchronously through the internal/ui/command bus and
//     report back as menu.ActionResult messages.
//
// Backend interactions:
//   - Each source is loaded once by Init. Live sources are then polled by a
//     backend.Watcher; its events pass through the dispatcher and, when the
//     menu changed, are reconciled into the palette.
package ui
