package compute

import (
	"strconv"
	"strings"
)

// Expr is a node of a spreadsheet formula.
type Expr interface {
	write(b *strings.Builder)
}

// Call is a function call such as AVERAGE(...).
type Call struct {
	Name string
	Args []Expr
}

// Ref is a cell or range reference, written verbatim.
type Ref string

// Str is a string literal.
type Str string

// Int is an integer literal.
type Int int

// Concat joins two expressions with &.
type Concat struct {
	Left, Right Expr
}

// Eq compares two expressions with =.
type Eq struct {
	Left, Right Expr
}

// Blank is an omitted argument.
type Blank struct{}

func Fn(name string, args ...Expr) Call {
	return Call{Name: name, Args: args}
}

func (c Call) write(b *strings.Builder) {
	b.WriteString(c.Name)
	b.WriteByte('(')
	for i, a := range c.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		a.write(b)
	}
	b.WriteByte(')')
}

func (r Ref) write(b *strings.Builder) {
	b.WriteString(string(r))
}

func (s Str) write(b *strings.Builder) {
	b.WriteByte('"')
	b.WriteString(strings.ReplaceAll(string(s), `"`, `""`))
	b.WriteByte('"')
}

func (i Int) write(b *strings.Builder) {
	b.WriteString(strconv.Itoa(int(i)))
}

func (c Concat) write(b *strings.Builder) {
	c.Left.write(b)
	b.WriteByte('&')
	c.Right.write(b)
}

func (e Eq) write(b *strings.Builder) {
	e.Left.write(b)
	b.WriteString(" = ")
	e.Right.write(b)
}

func (Blank) write(*strings.Builder) {}

// Render returns the formula text for e, including the leading "=".
func Render(e Expr) string {
	var b strings.Builder
	b.WriteByte('=')
	e.write(&b)
	return b.String()
}

// SheetRef qualifies ref with a quoted sheet name: 'My sheet'!A1.
func SheetRef(sheet, ref string) Ref {
	return Ref("'" + strings.ReplaceAll(sheet, "'", "''") + "'!" + ref)
}
