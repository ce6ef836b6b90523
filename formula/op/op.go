package op

type Op rune

const (
	Invalid Op = 0

	Add Op = 1 << iota
	Sub
	Mul
	Div
	Pow
	Concat
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
)

var mapping = map[Op]string{
	Add:    "+",
	Sub:    "-",
	Mul:    "*",
	Pow:    "^",
	Div:    "/",
	Concat: "&",
	Eq:     "=",
	Ne:     "<>",
	Lt:     "<",
	Le:     "<=",
	Gt:     ">",
	Ge:     ">=",
}

func Symbol(oper Op) string {
	return mapping[oper]
}

func (o Op) Comparison() bool {
	return o == Eq || o == Ne || o == Lt || o == Le || o == Gt || o == Ge
}
