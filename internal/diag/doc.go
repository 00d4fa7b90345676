// Package diag defines the diagnostic model shared by every pyplus phase.
//
// # Purpose
//
//   - Provide deterministic data structures for findings produced by the lexer,
//     parser, translator and driver.
//   - Offer light-weight utilities (Reporter, Bag) so producers can emit
//     diagnostics without depending on storage or formatting.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning, Error.
//   - Code – compact numeric identifier with a stable string form (LEX1001, TRN3001).
//   - Message – short, actionable text.
//   - Primary – the source.Span the finding is about.
//   - Notes – optional secondary spans with extra context.
//
// Translation fallbacks are reported as warnings: the generated C++ still
// contains the original text, so the run succeeds. Lexer/parser problems and
// I/O failures are errors.
//
// # Emitting
//
// Phases receive a Reporter. ReportBuilder (ReportError/ReportWarning) chains
// notes before Emit; BagReporter aggregates into a bounded Bag, which supports
// sorting and deduplication. Formatting lives in internal/diagfmt.
package diag
