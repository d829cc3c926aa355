// Package command parses layout commands into typed config mutations.
//
// A command is one line of whitespace-separated tokens, as delivered by a
// control channel. Flags may be written bare, long or short:
//
//	outer-gap 5
//	--reverse -i 5
//	split-perc=0.6 start-hsplit
//
// [Parse] turns a line into a [Batch] of [config.Op] values without touching
// any store; [Apply] parses and then commits the batch atomically. Unknown
// tokens and malformed numbers fail with an INVALID_COMMAND error naming the
// offending token; out-of-range values and conflicting orientation flags fail
// with INVALID_VALUE.
//
// The same flag definitions seed the startup configuration: [Options.Register]
// adds them to any pflag.FlagSet, including a cobra command's flags, and
// [Options.Batch] converts whatever was set into ops.
package command
