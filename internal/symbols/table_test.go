package symbols

import (
	"errors"
	"testing"

	"github.com/nalgeon/be"

	"pyplus/internal/types"
)

func newAdd(t *testing.T, tbl *Table) ScopeID {
	t.Helper()
	id, err := tbl.NewFunction("add", 1, 2, []ParamSpec{
		{Name: "a", Type: types.Auto},
		{Name: "b", Type: types.Int, Bound: true, Default: "3"},
	}, types.Void, false, false)
	be.Err(t, err, nil)
	return id
}

func TestFindSymbolParamsThenLocals(t *testing.T) {
	tbl := NewTable(Hints{})
	fn := newAdd(t, tbl)
	a, err := tbl.FindSymbol(fn, "a")
	be.Err(t, err, nil)
	be.Equal(t, tbl.Symbols.Get(a).Role, RoleParam)

	_, err = tbl.FindSymbol(fn, "x")
	be.True(t, errors.Is(err, ErrNotFound))

	x := tbl.Declare(fn, "x", 2, types.Float)
	got, err := tbl.FindSymbol(fn, "x")
	be.Err(t, err, nil)
	be.Equal(t, got, x)
	be.Equal(t, tbl.Type(x), types.Float)
}

func TestDuplicateFunction(t *testing.T) {
	tbl := NewTable(Hints{})
	newAdd(t, tbl)
	_, err := tbl.NewFunction("add", 5, 6, nil, types.Void, false, false)
	be.True(t, errors.Is(err, ErrDuplicate))
	be.Equal(t, len(tbl.Functions()), 1)
}

func TestEntryIsNotCallable(t *testing.T) {
	tbl := NewTable(Hints{})
	_, err := tbl.NewFunction("main", 0, 0, []ParamSpec{
		{Name: "argc", Type: types.Int, Bound: true},
		{Name: "argv", Type: types.CharPtrPtr, Bound: true},
	}, types.Int, true, true)
	be.Err(t, err, nil)
	_, ok := tbl.Function("main")
	be.Equal(t, ok, false)
}

func TestCallSiteBackPropagation(t *testing.T) {
	tbl := NewTable(Hints{})
	fn := newAdd(t, tbl)
	a, _ := tbl.FindSymbol(fn, "a")

	tbl.UpdateParameterTypes(fn, []types.Tag{types.Int})
	be.Equal(t, tbl.Type(a), types.Int)

	// идемпотентно
	tbl.UpdateParameterTypes(fn, []types.Tag{types.Int})
	be.Equal(t, tbl.Type(a), types.Int)

	tbl.UpdateParameterTypes(fn, []types.Tag{types.Float, types.Int})
	be.Equal(t, tbl.Type(a), types.Widen(types.Int, types.Float))

	// ранг не возвращается назад
	tbl.UpdateParameterTypes(fn, []types.Tag{types.Int})
	be.Equal(t, tbl.Type(a), types.Float)

	tbl.UpdateParameterTypes(fn, []types.Tag{types.Auto})
	be.Equal(t, tbl.Type(a), types.Float)
}

func TestAutoArgumentLeavesCellUnbound(t *testing.T) {
	tbl := NewTable(Hints{})
	fn := newAdd(t, tbl)
	a, _ := tbl.FindSymbol(fn, "a")
	tbl.UpdateParameterTypes(fn, []types.Tag{types.Auto})
	be.True(t, !tbl.Symbols.Get(a).Bound)

	tbl.UpdateParameterTypes(fn, []types.Tag{types.Int})
	be.Equal(t, tbl.Type(a), types.Int)
}

func TestDefaultedParamWidens(t *testing.T) {
	tbl := NewTable(Hints{})
	fn := newAdd(t, tbl)
	b, _ := tbl.FindSymbol(fn, "b")
	tbl.UpdateParameterTypes(fn, []types.Tag{types.Int, types.String})
	be.Equal(t, tbl.Type(b), types.String)
}

func TestReturnCellIsCumulative(t *testing.T) {
	tbl := NewTable(Hints{})
	fn := newAdd(t, tbl)
	ret := tbl.Scopes.Get(fn).Return
	be.Equal(t, tbl.Type(ret), types.Void)
	be.Equal(t, tbl.WidenReturn(fn, types.Int), types.Int)
	be.Equal(t, tbl.WidenReturn(fn, types.Float), types.Float)
	be.Equal(t, tbl.WidenReturn(fn, types.Int), types.Float)
	be.Equal(t, tbl.Type(ret), types.Float)
}

func TestRequiredCount(t *testing.T) {
	tbl := NewTable(Hints{})
	fn := newAdd(t, tbl)
	be.Equal(t, tbl.Scopes.Get(fn).Required, 1)
}
