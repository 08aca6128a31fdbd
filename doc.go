// Package autosave is the Composition Root for the autosave engine.
//
// It wires the save-decision engine (pkg/core) to its collaborators: a save
// action, a log sink and a settings store.
//
// Philosophy:
//
// An editor should never lose work because the user switched windows. When a
// pane loses focus, or the whole editor does, autosave decides for every
// affected document whether it should be written now, and writes it.
//
// Rules, first match wins:
//
//   - **No document**: nothing to do.
//   - **Already saved**: nothing to do.
//   - **Read-only**: skipped, with a log line.
//   - **Ignored pattern**: the path ends with an ignored suffix (or matches an
//     ignored regular expression when use_regex is on).
//   - Otherwise the document is saved.
//
// Usage:
//
//	ws := fs.NewWorkspace(logger)
//	engine, store, err := autosave.New(
//		autosave.WithSaver(ws),
//		autosave.WithLogger(logger),
//		autosave.WithSettingsSearch("."),
//	)
//
//	// pane lost focus
//	engine.OnFocusTransferred(ctx, losing, gaining, store.Snapshot())
package autosave
