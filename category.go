package ccg

// Direction is the side on which a functor category expects its argument
type Direction int

const (
	// Forward functors (X/Y) take their argument from the right
	Forward Direction = iota

	// Backward functors (X\Y) take their argument from the left
	Backward
)

// String returns "/" or "\"
func (d Direction) String() string {
	if d == Backward {
		return "\\"
	}
	return "/"
}

// Category is a CCG category, either an Atomic or a Functor. The set of
// implementations is closed; use a type switch to tell them apart.
type Category interface {
	String() string

	isCategory()
}

// Atomic is a basic category like S, NP or N. Atomics are equal by name.
type Atomic struct {
	Name string
}

// Functor is a function category Result/Argument or Result\Argument
type Functor struct {
	Result    Category
	Argument  Category
	Direction Direction
}

func (Atomic) isCategory()  {}
func (Functor) isCategory() {}

// NewAtomic creates an atomic category
func NewAtomic(name string) Atomic {
	return Atomic{Name: name}
}

// NewFunctor creates the functor category result<direction>argument
func NewFunctor(result Category, direction Direction, argument Category) Functor {
	assert(result != nil && argument != nil, "NewFunctor: nil operand")
	return Functor{Result: result, Argument: argument, Direction: direction}
}

// ForwardFunctor creates result/argument
func ForwardFunctor(result, argument Category) Functor {
	return NewFunctor(result, Forward, argument)
}

// BackwardFunctor creates result\argument
func BackwardFunctor(result, argument Category) Functor {
	return NewFunctor(result, Backward, argument)
}

// String returns the name of the atomic category
func (a Atomic) String() string {
	return a.Name
}

// String returns the category in the usual slash notation. Operands that are
// functors themselves are wrapped in parentheses, e.g. (S\NP)/NP
func (f Functor) String() string {
	return operandString(f.Result) + f.Direction.String() + operandString(f.Argument)
}

func operandString(c Category) string {
	if _, ok := c.(Functor); ok {
		return "(" + c.String() + ")"
	}
	return c.String()
}

// InnermostFunction returns the functor closest to the atomic result of f by
// following Result while it is a functor. For (S\NP)/NP it returns S\NP.
func (f Functor) InnermostFunction() Functor {
	if result, ok := f.Result.(Functor); ok {
		return result.InnermostFunction()
	}
	return f
}

// Equal reports whether a and b are structurally the same category
func Equal(a, b Category) bool {
	switch a := a.(type) {
	case Atomic:
		b, ok := b.(Atomic)
		return ok && a.Name == b.Name
	case Functor:
		b, ok := b.(Functor)
		return ok &&
			a.Direction == b.Direction &&
			Equal(a.Result, b.Result) &&
			Equal(a.Argument, b.Argument)
	case nil:
		return b == nil
	}
	panic("unreachable")
}

// IsAtomic reports whether c is an atomic category
func IsAtomic(c Category) bool {
	_, ok := c.(Atomic)
	return ok
}

// Atoms returns the names of the atomic categories in c, left to right
func Atoms(c Category) []string {
	switch c := c.(type) {
	case Atomic:
		return []string{c.Name}
	case Functor:
		return append(Atoms(c.Result), Atoms(c.Argument)...)
	}
	return nil
}
