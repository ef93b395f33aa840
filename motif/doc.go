// Package motif parses the two small text grammars the node network's
// atom-producing nodes are authored in:
//
//   - a motif definition (param/site/bond commands) describing a
//     repeating unit cell's atoms and internal bonds, with parameter
//     elements substitutable at fill time;
//   - the atom-edit diff grammar (one line per atom, plus bond/unbond
//     lines) that a text-editable atom-edit node stores, which parses
//     into a structure.Diff ready for structure.ApplyDiff.
package motif
