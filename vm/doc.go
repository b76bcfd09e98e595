// Package vm implements the interpreter and assembler for the LED strip
// virtual machine.
//
// The machine consists of a program counter, a register bank of one boolean
// register (strip enabled), three 8-bit color channel registers (rcr, rcg,
// rcb) and five 32-bit general-purpose registers (rgd, rgp, rgi, rgo, rgl),
// a sparse 32-bit memory addressed through rgp/rgd, and a label table built
// when the bytecode is decoded.
//
// Writes to the strip register, and the cmd and program instructions, are
// forwarded to a strip.Bridge.
//
// The assembler translates mnemonic source, with equates and compile-time
// expression evaluation, into the bytecode the decoder consumes.
package vm
