// Package testkit holds structural checks shared by parser and fuzz tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"pyplus/internal/ast"
	"pyplus/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) file.Span lies within the file content and points at the same file
// 2) every statement span is non-empty and inside its parent span
// 3) sibling statements appear in source order and do not overlap
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}

	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent || f.Span.Start > f.Span.End {
		return fmt.Errorf("file span %v beyond content of %d bytes", f.Span, lenContent)
	}
	return checkBody(b, f.Body, f.Span, sf.ID)
}

func checkBody(b *ast.Builder, body []ast.StmtID, parent source.Span, file source.FileID) error {
	var prevEnd uint32
	for i, id := range body {
		st := b.Stmts.Get(id)
		if st == nil {
			return fmt.Errorf("nil statement for id=%d", id)
		}
		sp := st.Span
		if sp.Empty() || sp.End < sp.Start {
			return fmt.Errorf("empty %s span: %v", st.Kind, sp)
		}
		if sp.File != file {
			return fmt.Errorf("statement span file mismatch: got=%d want=%d", sp.File, file)
		}
		if sp.Start < parent.Start || sp.End > parent.End {
			return fmt.Errorf("%s span %v is outside parent span %v", st.Kind, sp, parent)
		}
		if i > 0 && sp.Start < prevEnd {
			return fmt.Errorf("%s span %v overlaps previous statement ending at %d", st.Kind, sp, prevEnd)
		}
		prevEnd = sp.End
		for _, nested := range childBodies(b, id, st.Kind) {
			if err := checkBody(b, nested, sp, file); err != nil {
				return err
			}
		}
	}
	return nil
}

// childBodies — вложенные блоки составного оператора.
func childBodies(b *ast.Builder, id ast.StmtID, kind ast.StmtKind) [][]ast.StmtID {
	switch kind {
	case ast.StmtIf:
		if d, ok := b.Stmts.If(id); ok {
			return [][]ast.StmtID{d.Body, d.Orelse}
		}
	case ast.StmtWhile:
		if d, ok := b.Stmts.While(id); ok {
			return [][]ast.StmtID{d.Body, d.Orelse}
		}
	case ast.StmtFor:
		if d, ok := b.Stmts.For(id); ok {
			return [][]ast.StmtID{d.Body, d.Orelse}
		}
	case ast.StmtFunctionDef:
		if d, ok := b.Stmts.FunctionDef(id); ok {
			return [][]ast.StmtID{d.Body}
		}
	case ast.StmtClassDef:
		if d, ok := b.Stmts.ClassDef(id); ok {
			return [][]ast.StmtID{d.Body}
		}
	case ast.StmtWith:
		if d, ok := b.Stmts.With(id); ok {
			return [][]ast.StmtID{d.Body}
		}
	case ast.StmtTry:
		if d, ok := b.Stmts.Try(id); ok {
			out := [][]ast.StmtID{d.Body, d.Orelse, d.Finalbody}
			for _, h := range d.Handlers {
				out = append(out, h.Body)
			}
			return out
		}
	}
	return nil
}
