package ccg

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"
)

// Chart is the CKY table of a sentence. table[length][start] holds the
// constituents spanning tokens[start:start+length]
type Chart struct {
	tokens []string
	table  [][][]*Constituent
	pool   *constituentPool

	// raised records (child, category) pairs already type-raised, so that the
	// same raising in another context is not inserted twice
	raised map[raisedKey]bool
}

type raisedKey struct {
	child    *Constituent
	category Category
}

// raising is a unary rule result waiting to be inserted into the chart
type raising struct {
	category Category
	rule     *Rule
	child    *Constituent
	start    int
	length   int
}

// Len returns the number of tokens of the sentence
func (c *Chart) Len() int {
	return len(c.tokens)
}

// Tokens returns the sentence of the chart
func (c *Chart) Tokens() []string {
	return c.tokens
}

// Cell returns the constituents spanning tokens[start:end]. It returns nil for
// an invalid span
func (c *Chart) Cell(start, end int) []*Constituent {
	length := end - start
	if start < 0 || length < 1 || end > len(c.tokens) {
		return nil
	}
	return c.table[length][start]
}

// Forest returns the constituents spanning the whole sentence
func (c *Chart) Forest() []*Constituent {
	return c.Cell(0, len(c.tokens))
}

// Size returns the number of constituents in the chart
func (c *Chart) Size() int {
	return c.pool.Len()
}

// String dumps the chart, one row per span length
func (c *Chart) String() string {
	rows := []string{}
	for length := 1; length < len(c.table); length++ {
		rows = append(rows, c.rowString(length))
	}
	return strings.Join(rows, "\n")
}

// rowString prints the cells of one span length
func (c *Chart) rowString(length int) string {
	cellReprs := []string{}
	for start, cell := range c.table[length] {
		nodeReprs := []string{}
		for _, node := range cell {
			nodeReprs = append(nodeReprs, node.Category.String())
		}
		cellReprs = append(cellReprs, fmt.Sprintf(
			"[%d,%d: %s]",
			start,
			start+length,
			strings.Join(nodeReprs, " ")))
	}
	return strings.Join(cellReprs, " ")
}

// fillChart parses tokens with the CKY algorithm. Span lengths are processed
// in increasing order; within one length the starts are independent and run
// on up to workers goroutines.
func fillChart(lexicon Lexicon, rules RuleSet, workers int, tokens []string) (*Chart, error) {
	chart := &Chart{
		tokens: tokens,
		table:  make([][][]*Constituent, len(tokens)+1),
		pool:   newConstituentPool(),
		raised: map[raisedKey]bool{},
	}
	if len(tokens) == 0 {
		return chart, nil
	}

	// Row 1: leaves from the lexicon
	chart.table[1] = make([][]*Constituent, len(tokens))
	for i, tok := range tokens {
		categories := lexicon.Categories(tok)
		if len(categories) == 0 {
			return nil, errors.WithStack(&VocabularyError{Token: tok, Position: i})
		}
		cell := make([]*Constituent, 0, len(categories))
		for _, category := range categories {
			cell = append(cell, chart.pool.newLeaf(category, tok, i))
		}
		chart.table[1][i] = cell
	}
	chart.debugRow(1)

	unary := rules.Unary()
	binary := rules.Binary()

	// Row 2 to row n
	for length := 2; length <= len(tokens); length++ {
		columns := len(tokens) - length + 1
		chart.table[length] = make([][]*Constituent, columns)

		// Unary rules first. They only read the smaller spans, the results are
		// inserted after every start has been examined
		if len(unary) != 0 {
			proposals := make([][]raising, columns)
			err := forEachStart(workers, columns, func(start int) error {
				proposals[start] = chart.proposeRaisings(unary, start, length)
				return nil
			})
			if err != nil {
				return nil, err
			}
			for _, raisings := range proposals {
				for _, r := range raisings {
					chart.insertRaised(r)
				}
			}
		}

		// Binary rules. Each start writes its own cell only
		err := forEachStart(workers, columns, func(start int) error {
			chart.table[length][start] = chart.combine(binary, start, length)
			return nil
		})
		if err != nil {
			return nil, err
		}
		chart.debugRow(length)
	}

	return chart, nil
}

// forEachStart calls f for start in [0, columns), concurrently when
// workers > 1. It returns the first error of f
func forEachStart(workers, columns int, f func(start int) error) error {
	if workers <= 1 || columns == 1 {
		for start := 0; start < columns; start++ {
			if err := f(start); err != nil {
				return err
			}
		}
		return nil
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < columns; start++ {
		start := start
		g.Go(func() error {
			return f(start)
		})
	}
	return g.Wait()
}

// proposeRaisings applies the unary rules to every pair of adjacent
// sub-spans of [start, start+length)
func (c *Chart) proposeRaisings(rules []*Rule, start, length int) []raising {
	raisings := []raising{}
	for partition := 1; partition < length; partition++ {
		lefts := c.table[partition][start]
		rights := c.table[length-partition][start+partition]
		for _, rule := range rules {
			for _, left := range lefts {
				for _, right := range rights {
					category, direction, ok := rule.Raise(left.Category, right.Category)
					if !ok {
						continue
					}
					if direction == Forward {
						raisings = append(raisings, raising{
							category: category,
							rule:     rule,
							child:    left,
							start:    start,
							length:   partition,
						})
					} else {
						raisings = append(raisings, raising{
							category: category,
							rule:     rule,
							child:    right,
							start:    start + partition,
							length:   length - partition,
						})
					}
				}
			}
		}
	}
	return raisings
}

// insertRaised adds a raised constituent to the cell of its child
func (c *Chart) insertRaised(r raising) {
	key := raisedKey{child: r.child, category: r.category}
	if c.raised[key] {
		return
	}
	c.raised[key] = true

	node := c.pool.newRaised(r.category, r.rule, r.child)
	c.table[r.length][r.start] = append(c.table[r.length][r.start], node)
	log.Debugf(
		"raise %s to %s over [%d,%d]",
		r.child.Category,
		r.category,
		r.start,
		r.start+r.length)
}

// combine applies the binary rules to every split of [start, start+length)
// and returns the new cell
func (c *Chart) combine(rules []*Rule, start, length int) []*Constituent {
	cell := []*Constituent{}
	for partition := 1; partition < length; partition++ {
		lefts := c.table[partition][start]
		rights := c.table[length-partition][start+partition]
		for _, rule := range rules {
			for _, left := range lefts {
				for _, right := range rights {
					if !rule.accepts(left, right) {
						continue
					}
					category, ok := rule.Combine(left.Category, right.Category)
					if !ok {
						continue
					}
					cell = append(cell, c.pool.newCombined(category, rule, left, right))
				}
			}
		}
	}
	return cell
}

// debugRow prints a row of the chart for debugging
func (c *Chart) debugRow(length int) {
	if log.AllowLevel(commonlog.Debug) {
		log.Debugf("row %d: %s", length, c.rowString(length))
	}
}
