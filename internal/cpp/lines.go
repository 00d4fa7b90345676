package cpp

import "slices"

// Piece — строка, дописанная к CodeLine позже (закрывающая скобка)
// со своим отступом.
type Piece struct {
	Indent int
	Text   string
	// Col — отступ заголовка блока в исходнике; комментарий глубже него
	// ещё внутри блока.
	Col int
}

// CodeLine — единица вывода, привязанная к диапазону строк исходника.
type CodeLine struct {
	Start  int // первая строка исходника, 1-based; ключ в Lines
	End    int // последняя строка
	EndCol int // байтовый столбец на End, после которого ищется inline-комментарий
	Indent int
	// Text может содержать '\n'; каждая строка рендерится с отступом Indent.
	Text       string
	Comment    string // inline-комментарий без маркера
	PreComment string // отдельная строка-комментарий перед кодом
	// Verbatim — исходный текст в /* */; inline-комментарии в нём уже есть.
	Verbatim bool
	Tail     []Piece
}

// Append дописывает строку после кода с отдельным отступом.
func (cl *CodeLine) Append(indent int, text string) {
	cl.Tail = append(cl.Tail, Piece{Indent: indent, Text: text})
}

// Close дописывает закрывающую скобку блока, заголовок которого в
// исходнике имеет отступ col.
func (cl *CodeLine) Close(indent, col int) {
	cl.Tail = append(cl.Tail, Piece{Indent: indent, Text: "}", Col: col})
}

// SplitTail отдаёт скобки блоков, открытых на глубине width: хвост
// упорядочен от внутреннего блока к внешнему, отступы убывают.
func (cl *CodeLine) SplitTail(width int) []Piece {
	k := 0
	for k < len(cl.Tail) && cl.Tail[k].Col >= width {
		k++
	}
	if k == len(cl.Tail) {
		return nil
	}
	open := slices.Clone(cl.Tail[k:])
	cl.Tail = cl.Tail[:k]
	return open
}

// Lines — упорядоченный по строке исходника набор CodeLine.
// Ключ уникален: один оператор начинается на одной строке.
type Lines struct {
	byLine map[int]*CodeLine
	keys   []int
	sorted bool
}

func NewLines() *Lines {
	return &Lines{byLine: make(map[int]*CodeLine), sorted: true}
}

// Put кладёт строку по ключу Start; существующая запись заменяется.
func (l *Lines) Put(cl *CodeLine) {
	if _, ok := l.byLine[cl.Start]; !ok {
		if n := len(l.keys); n > 0 && l.keys[n-1] > cl.Start {
			l.sorted = false
		}
		l.keys = append(l.keys, cl.Start)
	}
	l.byLine[cl.Start] = cl
}

func (l *Lines) Get(line int) (*CodeLine, bool) {
	cl, ok := l.byLine[line]
	return cl, ok
}

func (l *Lines) Len() int { return len(l.keys) }

func (l *Lines) sort() {
	if !l.sorted {
		slices.Sort(l.keys)
		l.sorted = true
	}
}

// LastIn возвращает строку с наибольшим ключом в [from, to].
func (l *Lines) LastIn(from, to int) (*CodeLine, bool) {
	l.sort()
	i, _ := slices.BinarySearch(l.keys, to+1)
	if i == 0 || l.keys[i-1] < from {
		return nil, false
	}
	return l.byLine[l.keys[i-1]], true
}

// Sorted — все строки в порядке исходника.
func (l *Lines) Sorted() []*CodeLine {
	l.sort()
	out := make([]*CodeLine, 0, len(l.keys))
	for _, k := range l.keys {
		out = append(out, l.byLine[k])
	}
	return out
}
