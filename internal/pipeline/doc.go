// Package pipeline orchestrates the daily run: extraction from all
// configured calendar sources, transformation into the text agenda,
// and delivery to the chat.
//
// The orchestrator is a straight-line state machine
// (Idle → Extracting → Transforming → Delivering → Succeeded/Failed).
// Extracting and Delivering run under a bounded retry policy (3
// attempts, 5 s apart) that branches on the fault's Retryable flag;
// Transforming is pure and never retried. A failed run stays failed for
// this invocation; scheduling another run is the caller's concern.
package pipeline
