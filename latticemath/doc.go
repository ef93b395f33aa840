// Package latticemath provides the scalar and lattice algebra shared by the
// rest of atomcore: integer and double-precision 2/3-vectors, unit
// quaternions, and the UnitCellStruct that converts between integer lattice
// coordinates and real-space Ångströms.
//
// All public positions elsewhere in this module are real-space Ångströms;
// lattice coordinates are integers interpreted through a UnitCellStruct.
package latticemath
