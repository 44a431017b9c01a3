package ccg

// DefaultStart is the category of a complete sentence
var DefaultStart Category = NewAtomic("S")

// Parser is the struct for CCG parsing
type Parser struct {
	lexicon Lexicon
	rules   RuleSet
	workers int
}

// Option configures a Parser
type Option func(*Parser)

// WithRules sets the combinatory rules of the parser. The default is
// DefaultRuleSet()
func WithRules(rules RuleSet) Option {
	return func(p *Parser) {
		p.rules = rules
	}
}

// WithParallelism fills the cells of one span length on up to n goroutines.
// n <= 1 parses on the calling goroutine only
func WithParallelism(n int) Option {
	return func(p *Parser) {
		p.workers = n
	}
}

// NewParser creates a new instance of CCG parser with lexicon
func NewParser(lexicon Lexicon, opts ...Option) *Parser {
	assert(lexicon != nil, "NewParser: nil lexicon")
	p := &Parser{
		lexicon: lexicon,
		rules:   DefaultRuleSet(),
		workers: 1,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Rules returns the rule set of the parser
func (p *Parser) Rules() RuleSet {
	return p.rules
}

// FillChart builds the CKY chart of tokens. It returns a *VocabularyError
// (wrapped) when a token is not in the lexicon
func (p *Parser) FillChart(tokens []string) (*Chart, error) {
	chart, err := fillChart(p.lexicon, p.rules, p.workers, tokens)
	if err != nil {
		log.Infof("parse failed: %s", err.Error())
		return nil, err
	}
	log.Debugf("%d tokens, %d constituents, %d parses", len(tokens), chart.Size(), len(chart.Forest()))
	return chart, nil
}

// Parse returns the derivation trees of every constituent spanning the whole
// sentence. An ungrammatical sentence gives an empty slice
func (p *Parser) Parse(tokens []string) ([]*Tree, error) {
	chart, err := p.FillChart(tokens)
	if err != nil {
		return nil, err
	}
	return Trees(chart.Forest()), nil
}

// ParseAs is like Parse but keeps only the derivations whose category is
// start
func (p *Parser) ParseAs(tokens []string, start Category) ([]*Tree, error) {
	chart, err := p.FillChart(tokens)
	if err != nil {
		return nil, err
	}
	forest := []*Constituent{}
	for _, c := range chart.Forest() {
		if Equal(c.Category, start) {
			forest = append(forest, c)
		}
	}
	return Trees(forest), nil
}

// Accepts reports whether tokens can be derived as start
func (p *Parser) Accepts(tokens []string, start Category) (bool, error) {
	chart, err := p.FillChart(tokens)
	if err != nil {
		return false, err
	}
	for _, c := range chart.Forest() {
		if Equal(c.Category, start) {
			return true, nil
		}
	}
	return false, nil
}

// Trees builds the derivation tree of each constituent
func Trees(forest []*Constituent) []*Tree {
	trees := make([]*Tree, 0, len(forest))
	for _, c := range forest {
		trees = append(trees, BuildTree(c))
	}
	return trees
}
