package ccg

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Lexicon maps a word to its candidate categories. An empty result means the
// word is unknown
type Lexicon interface {
	Categories(token string) []Category
}

// MapLexicon is an in-memory lexicon. Besides word entries it knows the
// primitive categories of the grammar and category families (named
// categories usable in entries)
type MapLexicon struct {
	entries    map[string][]Category
	primitives map[string]bool
	families   map[string]Category
}

// NewLexicon creates an empty MapLexicon
func NewLexicon() *MapLexicon {
	return &MapLexicon{
		entries:    map[string][]Category{},
		primitives: map[string]bool{},
		families:   map[string]Category{},
	}
}

// Add adds categories of word. Categories the word already has are ignored
func (l *MapLexicon) Add(word string, categories ...Category) {
	for _, category := range categories {
		duplicated := false
		for _, existing := range l.entries[word] {
			if Equal(existing, category) {
				duplicated = true
				break
			}
		}
		if !duplicated {
			l.entries[word] = append(l.entries[word], category)
		}
	}
}

// Categories returns the categories of token in the order they were added
func (l *MapLexicon) Categories(token string) []Category {
	categories := l.entries[token]
	if len(categories) == 0 {
		return nil
	}
	result := make([]Category, len(categories))
	copy(result, categories)
	return result
}

// Words returns the words of the lexicon in sorted order
func (l *MapLexicon) Words() []string {
	words := make([]string, 0, len(l.entries))
	for word := range l.entries {
		words = append(words, word)
	}
	sort.Strings(words)
	return words
}

// Len returns the number of words
func (l *MapLexicon) Len() int {
	return len(l.entries)
}

// AddPrimitive declares primitive categories. Once a primitive is declared,
// entries may only use declared primitives and families
func (l *MapLexicon) AddPrimitive(names ...string) {
	for _, name := range names {
		l.primitives[name] = true
	}
}

// Primitives returns the declared primitives in sorted order
func (l *MapLexicon) Primitives() []string {
	names := []string{}
	for name := range l.primitives {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddFamily declares a named category. An atomic category with the name of a
// family is replaced by the family category in entries. Families must be
// declared before the entries using them
func (l *MapLexicon) AddFamily(name string, category Category) error {
	if l.primitives[name] {
		return errors.Errorf("family '%s' shadows a primitive", name)
	}
	for _, word := range l.Words() {
		for _, existing := range l.entries[word] {
			for _, atom := range Atoms(existing) {
				if atom == name {
					return errors.Errorf("family '%s' declared after its use in '%s'", name, word)
				}
			}
		}
	}
	l.families[name] = category
	return nil
}

// AddEntry parses the category text, expands families, checks primitives and
// adds the result to word
func (l *MapLexicon) AddEntry(word, categoryText string) error {
	category, err := ParseCategory(categoryText)
	if err != nil {
		return err
	}
	category, err = l.expand(category, map[string]bool{})
	if err != nil {
		return err
	}
	if len(l.primitives) != 0 {
		for _, atom := range Atoms(category) {
			if !l.primitives[atom] {
				return errors.Errorf("'%s' is not a primitive category", atom)
			}
		}
	}
	l.Add(word, category)
	return nil
}

// expand replaces family names in category. visiting holds the families being
// expanded to detect cycles
func (l *MapLexicon) expand(category Category, visiting map[string]bool) (Category, error) {
	switch category := category.(type) {
	case Atomic:
		family, ok := l.families[category.Name]
		if !ok {
			return category, nil
		}
		if visiting[category.Name] {
			return nil, errors.Errorf("family '%s' refers to itself", category.Name)
		}
		visiting[category.Name] = true
		defer delete(visiting, category.Name)
		return l.expand(family, visiting)
	case Functor:
		result, err := l.expand(category.Result, visiting)
		if err != nil {
			return nil, err
		}
		argument, err := l.expand(category.Argument, visiting)
		if err != nil {
			return nil, err
		}
		return NewFunctor(result, category.Direction, argument), nil
	}
	panic("unreachable")
}

// lexiconLine is a non-empty line of a text lexicon
type lexiconLine struct {
	no    int
	kind  int
	left  string
	right string
}

// Kinds of lexicon lines, in the order they are applied
const (
	primitiveLine = iota
	familyLine
	entryLine
)

// ParseLexicon parses the text lexicon format:
//     # comment
//     :- S, NP, N            (primitive categories)
//     Det :: NP/N            (family)
//     the => Det             (entry)
//     saw => (S\NP)/NP | N   (entry with two categories)
// Anything after '{' in an entry is ignored. Primitives and families apply to
// every entry wherever they are declared in the text.
func ParseLexicon(text string) (*MapLexicon, error) {
	lines := []lexiconLine{}
	for i, line := range strings.Split(text, "\n") {
		lineNo := i + 1
		if index := strings.Index(line, "#"); index >= 0 {
			line = line[:index]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, ":-"):
			lines = append(lines, lexiconLine{no: lineNo, kind: primitiveLine, right: line[len(":-"):]})
		case strings.Contains(line, "::"):
			fields := strings.SplitN(line, "::", 2)
			lines = append(lines, lexiconLine{no: lineNo, kind: familyLine, left: fields[0], right: fields[1]})
		case strings.Contains(line, "=>"):
			fields := strings.SplitN(line, "=>", 2)
			lines = append(lines, lexiconLine{no: lineNo, kind: entryLine, left: fields[0], right: fields[1]})
		default:
			return nil, &LexiconError{
				Line: lineNo,
				Msg:  fmt.Sprintf("unexpected line '%s'", line),
			}
		}
	}
	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].kind < lines[j].kind
	})

	lexicon := NewLexicon()
	for _, line := range lines {
		if err := lexicon.addLine(line); err != nil {
			return nil, &LexiconError{Line: line.no, Msg: err.Error()}
		}
	}
	return lexicon, nil
}

// addLine applies one line of a text lexicon
func (l *MapLexicon) addLine(line lexiconLine) error {
	switch line.kind {
	case primitiveLine:
		for _, name := range strings.Split(line.right, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				return errors.New("empty primitive name")
			}
			l.AddPrimitive(name)
		}

	case familyLine:
		name := strings.TrimSpace(line.left)
		if name == "" {
			return errors.New("empty family name")
		}
		category, err := ParseCategory(strings.TrimSpace(line.right))
		if err != nil {
			return err
		}
		return l.AddFamily(name, category)

	case entryLine:
		word := strings.TrimSpace(line.left)
		if word == "" {
			return errors.New("empty word")
		}
		right := line.right
		if index := strings.Index(right, "{"); index >= 0 {
			right = right[:index]
		}
		for _, categoryText := range strings.Split(right, "|") {
			if err := l.AddEntry(word, strings.TrimSpace(categoryText)); err != nil {
				return err
			}
		}
	}
	return nil
}

// lexiconFile is the YAML form of a lexicon
type lexiconFile struct {
	Primitives []string          `yaml:"primitives"`
	Families   map[string]string `yaml:"families"`
	Entries    yaml.Node         `yaml:"entries"`
}

// categoryList accepts a single category or a list of them
type categoryList []string

func (c *categoryList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*c = categoryList{value.Value}
		return nil
	}
	var list []string
	if err := value.Decode(&list); err != nil {
		return err
	}
	*c = list
	return nil
}

// ParseLexiconYAML parses a lexicon like
//     primitives: [S, NP, N]
//     families:
//       Det: NP/N
//     entries:
//       the: Det
//       dog: [N]
func ParseLexiconYAML(data []byte) (*MapLexicon, error) {
	var file lexiconFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "ParseLexiconYAML")
	}

	lexicon := NewLexicon()
	lexicon.AddPrimitive(file.Primitives...)

	// Families may refer to each other, they are expanded when used
	names := make([]string, 0, len(file.Families))
	for name := range file.Families {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		category, err := ParseCategory(file.Families[name])
		if err != nil {
			return nil, &LexiconError{Msg: err.Error()}
		}
		if err := lexicon.AddFamily(name, category); err != nil {
			return nil, &LexiconError{Msg: err.Error()}
		}
	}

	if file.Entries.Kind == 0 {
		return lexicon, nil
	}
	if file.Entries.Kind != yaml.MappingNode {
		return nil, &LexiconError{Line: file.Entries.Line, Msg: "entries must be a mapping"}
	}
	content := file.Entries.Content
	for i := 0; i+1 < len(content); i += 2 {
		key, value := content[i], content[i+1]
		var categories categoryList
		if err := value.Decode(&categories); err != nil {
			return nil, &LexiconError{Line: value.Line, Msg: err.Error()}
		}
		for _, categoryText := range categories {
			if err := lexicon.AddEntry(key.Value, categoryText); err != nil {
				return nil, &LexiconError{Line: value.Line, Msg: err.Error()}
			}
		}
	}
	return lexicon, nil
}

// LoadLexicon reads a lexicon file. Files ending in .yaml or .yml are read
// with ParseLexiconYAML, other files with ParseLexicon
func LoadLexicon(path string) (*MapLexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "LoadLexicon")
	}

	var lexicon *MapLexicon
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		lexicon, err = ParseLexiconYAML(data)
	default:
		lexicon, err = ParseLexicon(string(data))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "LoadLexicon: %s", path)
	}
	log.Debugf("loaded %d words from %s", lexicon.Len(), path)
	return lexicon, nil
}
