// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package shader

import "fmt"

// UnsupportedOpcode is returned when a bytecode instruction has no
// translation rule, or uses a source/destination modifier this
// package does not implement.
type UnsupportedOpcode struct {
	Index int
	Op    string
}

func (e *UnsupportedOpcode) Error() string {
	return fmt.Sprintf("shader: instruction %d (%s) has no translation rule", e.Index, e.Op)
}

// VersionMismatch is returned when the program's shader version is
// outside the 1.1..1.4 range this package translates.
type VersionMismatch struct {
	Got string
}

func (e *VersionMismatch) Error() string {
	return fmt.Sprintf("shader: unsupported shader model %s (this module translates vs/ps 1.1..1.4)", e.Got)
}

// InvalidRegister is returned when an instruction references a
// register file/number combination that is not legal for the
// program's shader version (e.g. a pixel shader writing oPos, or a
// constant register index beyond the version's limit). Translate
// does not perform this check and does not return this type.
type InvalidRegister struct {
	Index  int
	Detail string
}

func (e *InvalidRegister) Error() string {
	return fmt.Sprintf("shader: instruction %d references an invalid register: %s", e.Index, e.Detail)
}
