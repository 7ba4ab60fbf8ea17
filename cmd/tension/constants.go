package main

// Marks used in plain-text output.
const (
	markDone    = "[x]"
	markPending = "[ ]"
	indentUnit  = "  "
)
