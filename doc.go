// Package schedsync is the document synchronization layer of the course
// schedule visualizer.
//
// Several independent users edit shared scheduling data stored as JSON
// documents in a common network folder. This layer is the only part of the
// system with real correctness hazards, and it owns exactly four concerns:
//
//   - Optimistic concurrency: documents carry a version (the stored file's
//     modification time in milliseconds); a write is rejected when the
//     stored version no longer matches the writer's baseline, so edits made
//     by other users between a read and a write are detected, never lost.
//   - Batch commits: related documents (a term's sections plus the workload
//     ledgers derived from them) are staged to sibling temp files and
//     renamed into place as one logical transaction.
//   - Save serialization: a single in-process queue runs at most one save
//     at a time and discards any queued save superseded by a newer edit,
//     so rapid local edits never race each other.
//   - Conflict resolution: a rejected save parks the client in the
//     Conflicted state until the user picks Overwrite ("keep mine") or
//     Reload ("take theirs"); resolution is binary and whole-document.
//
// There is no locking, no merge, and no transport: the shared folder is an
// ordinary filesystem path, and correctness against other processes rests
// entirely on the version check performed at write time.
//
// Usage:
//
//	c, err := schedsync.New(
//		schedsync.WithLogger(logger),
//		schedsync.WithConflictHandler(onConflict),
//	)
//
//	term := schedule.Term{Year: 2026, Semester: "Fall"}
//	entries, _, err := schedsync.LoadAs[[]schedule.Entry](ctx, c, schedule.SectionsDocument(term), nil)
//
//	// edit entries in memory, then:
//	c.Save(schedule.SectionsDocument(term), entries, schedule.NewUpdater(term).Derive)
package schedsync
