// Package token defines lexical token kinds and trivia for the pyplus front end.
// Invariants:
//   - Token.Span covers the exact source bytes of the token; layout tokens
//     (Newline, Indent, Dedent) may have empty spans.
//   - Token.Text is the source text, except for identifiers, which are NFKC-normalized.
//   - Comments ('# ...') are represented as leading Trivia and never appear in the
//     main token stream.
//   - Builtin names (print, int, str, ...) are identifiers. They are recognized by
//     the translator, not the lexer.
package token
