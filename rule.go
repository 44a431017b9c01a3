package ccg

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// BinaryFunc combines two adjacent categories. ok is false when the rule does
// not apply
type BinaryFunc func(left, right Category) (result Category, ok bool)

// UnaryFunc transforms one of two adjacent categories. The returned direction
// tells which one: Forward raises left, Backward raises right
type UnaryFunc func(left, right Category) (result Category, direction Direction, ok bool)

// Rule describes a combinatory rule. Rules are compared by identity, the
// chart stores a pointer to the rule that produced each constituent. A rule
// can't be changed once created
type Rule struct {
	name  string
	tag   string
	arity int

	// combinesRaised reports whether a binary rule may take a type-raised
	// constituent as its primary functor: a forward-raised T/(T\X) on the
	// left or a backward-raised T\(T/X) on the right
	combinesRaised bool

	binary BinaryFunc
	unary  UnaryFunc
}

// NewBinaryRule creates a rule with arity 2
func NewBinaryRule(name, tag string, combinesRaised bool, f BinaryFunc) *Rule {
	assert(f != nil, "NewBinaryRule: nil function")
	return &Rule{
		name:           name,
		tag:            tag,
		arity:          2,
		combinesRaised: combinesRaised,
		binary:         f,
	}
}

// NewUnaryRule creates a rule with arity 1
func NewUnaryRule(name, tag string, f UnaryFunc) *Rule {
	assert(f != nil, "NewUnaryRule: nil function")
	return &Rule{
		name:  name,
		tag:   tag,
		arity: 1,
		unary: f,
	}
}

// Name of the rule, like "application"
func (r *Rule) Name() string {
	return r.name
}

// Tag is the short label used in derivation trees, like "A"
func (r *Rule) Tag() string {
	return r.tag
}

// Arity is 1 for unary rules and 2 for binary rules
func (r *Rule) Arity() int {
	return r.arity
}

// CombinesRaised reports whether a binary rule may take a type-raised
// constituent as its primary functor
func (r *Rule) CombinesRaised() bool {
	return r.combinesRaised
}

// Combine applies a binary rule to left and right
func (r *Rule) Combine(left, right Category) (Category, bool) {
	assert(r.arity == 2, "Rule::Combine: not a binary rule")
	return r.binary(left, right)
}

// accepts reports whether the binary rule may combine left and right
func (r *Rule) accepts(left, right *Constituent) bool {
	if !left.Raised() && !right.Raised() {
		return true
	}
	if !r.combinesRaised {
		return false
	}
	if left.Raised() && !hasDirection(left.Category, Forward) {
		return false
	}
	if right.Raised() && !hasDirection(right.Category, Backward) {
		return false
	}
	return true
}

func hasDirection(c Category, direction Direction) bool {
	f, ok := c.(Functor)
	return ok && f.Direction == direction
}

// Raise applies a unary rule to the pair (left, right)
func (r *Rule) Raise(left, right Category) (Category, Direction, bool) {
	assert(r.arity == 1, "Rule::Raise: not a unary rule")
	return r.unary(left, right)
}

// String returns the rule name
func (r *Rule) String() string {
	return r.name
}

// Application implements function application
//     X/Y  Y  => X
//     Y  X\Y  => X
func Application(left, right Category) (Category, bool) {
	if f, ok := left.(Functor); ok && f.Direction == Forward && Equal(f.Argument, right) {
		return f.Result, true
	}
	if f, ok := right.(Functor); ok && f.Direction == Backward && Equal(f.Argument, left) {
		return f.Result, true
	}
	return nil, false
}

// Composition implements function composition
//     X/Y  Y/Z  => X/Z
//     Y\Z  X\Y  => X\Z
func Composition(left, right Category) (Category, bool) {
	f, ok := left.(Functor)
	if !ok {
		return nil, false
	}
	g, ok := right.(Functor)
	if !ok {
		return nil, false
	}

	switch {
	case f.Direction == Forward && g.Direction == Forward && Equal(f.Argument, g.Result):
		return ForwardFunctor(f.Result, g.Argument), true
	case f.Direction == Backward && g.Direction == Backward && Equal(g.Argument, f.Result):
		return BackwardFunctor(g.Result, f.Argument), true
	}
	return nil, false
}

// TypeRaising raises an atomic category using its neighbour as context.
// When right is a functor whose innermost function is T\X with X == left,
// left is raised to T/(T\X) and the direction is Forward. When left is a
// functor whose innermost function is T/X with X == right, right is raised
// to T\(T/X) and the direction is Backward.
func TypeRaising(left, right Category) (Category, Direction, bool) {
	leftFunctor, leftOk := left.(Functor)
	rightFunctor, rightOk := right.(Functor)
	if leftOk == rightOk {
		// Both or neither are functors
		return nil, Forward, false
	}

	if rightOk {
		inner := rightFunctor.InnermostFunction()
		if IsAtomic(inner.Argument) && inner.Direction == Backward && Equal(inner.Argument, left) {
			raised := ForwardFunctor(inner.Result, BackwardFunctor(inner.Result, left))
			return raised, Forward, true
		}
		return nil, Forward, false
	}

	inner := leftFunctor.InnermostFunction()
	if IsAtomic(inner.Argument) && inner.Direction == Forward && Equal(inner.Argument, right) {
		raised := BackwardFunctor(inner.Result, ForwardFunctor(inner.Result, right))
		return raised, Backward, true
	}
	return nil, Forward, false
}

var (
	applicationRule = NewBinaryRule("application", "A", false, Application)
	compositionRule = NewBinaryRule("composition", "C", true, Composition)
	typeRaisingRule = NewUnaryRule("type-raising", "T", TypeRaising)
)

// ApplicationRule returns the built-in application rule, tagged "A"
func ApplicationRule() *Rule {
	return applicationRule
}

// CompositionRule returns the built-in composition rule, tagged "C"
func CompositionRule() *Rule {
	return compositionRule
}

// TypeRaisingRule returns the built-in type raising rule, tagged "T"
func TypeRaisingRule() *Rule {
	return typeRaisingRule
}

// RuleSet is an immutable list of rules ordered by increasing arity
type RuleSet struct {
	rules []*Rule
}

// NewRuleSet creates a rule set. Rules keep their relative order within the
// same arity
func NewRuleSet(rules ...*Rule) RuleSet {
	sorted := make([]*Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].arity < sorted[j].arity
	})
	return RuleSet{rules: sorted}
}

// DefaultRuleSet returns type-raising, application and composition
func DefaultRuleSet() RuleSet {
	return NewRuleSet(typeRaisingRule, applicationRule, compositionRule)
}

// RuleSetByName builds a rule set from a comma separated list of built-in
// rule names or tags, like "application,composition" or "A,C,T"
func RuleSetByName(names string) (RuleSet, error) {
	builtin := []*Rule{applicationRule, compositionRule, typeRaisingRule}
	rules := []*Rule{}
	seen := map[*Rule]bool{}
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		var found *Rule
		for _, rule := range builtin {
			if strings.EqualFold(name, rule.name) || strings.EqualFold(name, rule.tag) {
				found = rule
				break
			}
		}
		if found == nil {
			return RuleSet{}, errors.Errorf("RuleSetByName: unknown rule '%s'", name)
		}
		if !seen[found] {
			seen[found] = true
			rules = append(rules, found)
		}
	}
	if len(rules) == 0 {
		return RuleSet{}, errors.New("RuleSetByName: empty rule list")
	}
	return NewRuleSet(rules...), nil
}

// Rules returns the rules in the set, unary rules first
func (rs RuleSet) Rules() []*Rule {
	rules := make([]*Rule, len(rs.rules))
	copy(rules, rs.rules)
	return rules
}

// Unary returns the rules with arity 1
func (rs RuleSet) Unary() []*Rule {
	return rs.withArity(1)
}

// Binary returns the rules with arity 2
func (rs RuleSet) Binary() []*Rule {
	return rs.withArity(2)
}

func (rs RuleSet) withArity(arity int) []*Rule {
	rules := []*Rule{}
	for _, rule := range rs.rules {
		if rule.arity == arity {
			rules = append(rules, rule)
		}
	}
	return rules
}

// Len returns the number of rules
func (rs RuleSet) Len() int {
	return len(rs.rules)
}

// String returns the rule names separated by commas
func (rs RuleSet) String() string {
	names := []string{}
	for _, rule := range rs.rules {
		names = append(names, rule.name)
	}
	return strings.Join(names, ",")
}
