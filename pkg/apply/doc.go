// Package apply commits a resolved display mode through an escalating chain.
//
// The chain is tried in order and the first step that yields an applied mode
// wins:
//
//  1. Direct: commit the exact mode in one begin/configure/commit
//     transaction. Skipped unless the resolver found an exact match.
//  2. Custom timing: push a synthetic timing for the requested rate through
//     the platform's timing injector, then re-read the current mode to see
//     whether the hardware accepted it.
//  3. Standard: commit the closest advertised mode.
//
// A failed transaction step always cancels the transaction, so a display is
// never left partially configured.
package apply
