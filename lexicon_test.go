package ccg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

const textLexicon = `
# toy grammar
:- S, NP, N
Det :: NP/N
TV :: (S\NP)/NP

the => Det
dog => N        # a noun
saw => TV | N
saw => N
runs => S\NP {\x.run(x)}
`

const yamlLexicon = `
primitives: [S, NP, N]
families:
  Det: NP/N
  TV: (S\NP)/NP
entries:
  the: Det
  dog: [N]
  saw: [TV, N]
  runs: S\NP
`

func TestParseLexicon(t *testing.T) {
	lexicon, err := ParseLexicon(textLexicon)
	require.NoError(t, err)

	require.Equal(t, []string{"dog", "runs", "saw", "the"}, lexicon.Words())
	require.Equal(t, []string{"N", "NP", "S"}, lexicon.Primitives())
	require.Equal(t, 4, lexicon.Len())

	saw := lexicon.Categories("saw")
	require.Len(t, saw, 2)
	require.Equal(t, "(S\\NP)/NP", saw[0].String())
	require.Equal(t, "N", saw[1].String())
	require.Equal(t, "NP/N", lexicon.Categories("the")[0].String())
	require.Equal(t, "S\\NP", lexicon.Categories("runs")[0].String())
	require.Nil(t, lexicon.Categories("cat"))

	// Callers can't change the lexicon through the result
	saw[0] = NewAtomic("X")
	require.Equal(t, "(S\\NP)/NP", lexicon.Categories("saw")[0].String())
}

func TestParseLexiconErrors(t *testing.T) {
	testCases := []struct {
		text string
		line int
	}{
		{"the => NP/N\ngarbage", 2},
		{":- S, NP\nthe => NP/N", 2},
		{"the => NP/", 1},
		{"A :: B\nB :: A\nx => A", 3},
		{":- S, NP\nNP :: S/NP", 2},
		{" => NP", 1},
		{"Det :: NP/(N", 1},
	}
	for _, tc := range testCases {
		_, err := ParseLexicon(tc.text)
		require.Error(t, err, tc.text)

		var lexiconErr *LexiconError
		require.True(t, errors.As(err, &lexiconErr), tc.text)
		require.Equal(t, tc.line, lexiconErr.Line, tc.text)
	}
}

func TestParseLexiconYAML(t *testing.T) {
	fromYAML, err := ParseLexiconYAML([]byte(yamlLexicon))
	require.NoError(t, err)
	fromText, err := ParseLexicon(textLexicon)
	require.NoError(t, err)

	require.Equal(t, fromText.Words(), fromYAML.Words())
	for _, word := range fromText.Words() {
		if diff := cmp.Diff(fromText.Categories(word), fromYAML.Categories(word)); diff != "" {
			t.Fatalf("%s (-text +yaml):\n%s", word, diff)
		}
	}

	_, err = ParseLexiconYAML([]byte("entries:\n  the: NP/\n"))
	require.Error(t, err)
	_, err = ParseLexiconYAML([]byte("entries: [the]\n"))
	require.Error(t, err)
	_, err = ParseLexiconYAML([]byte("primitives: [S]\nentries:\n  dog: N\n"))
	require.Error(t, err)

	empty, err := ParseLexiconYAML([]byte("primitives: [S]\n"))
	require.NoError(t, err)
	require.Equal(t, 0, empty.Len())
}

func TestLoadLexicon(t *testing.T) {
	dir := t.TempDir()
	textPath := filepath.Join(dir, "toy.lex")
	yamlPath := filepath.Join(dir, "toy.yaml")
	require.NoError(t, os.WriteFile(textPath, []byte(textLexicon), 0644))
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlLexicon), 0644))

	for _, path := range []string{textPath, yamlPath} {
		lexicon, err := LoadLexicon(path)
		require.NoError(t, err, path)
		accepted, err := NewParser(lexicon).Accepts([]string{"the", "dog", "saw", "the", "dog"}, DefaultStart)
		require.NoError(t, err)
		require.True(t, accepted, path)
	}

	_, err := LoadLexicon(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestLexiconAdd(t *testing.T) {
	lexicon := NewLexicon()
	lexicon.Add("dog", NewAtomic("N"), NewAtomic("N"))
	lexicon.Add("dog", MustParseCategory("N"))
	require.Len(t, lexicon.Categories("dog"), 1)

	require.NoError(t, lexicon.AddFamily("Det", MustParseCategory("NP/N")))
	require.NoError(t, lexicon.AddEntry("the", "Det"))
	require.Equal(t, "NP/N", lexicon.Categories("the")[0].String())

	lexicon.AddPrimitive("NP", "N")
	require.Error(t, lexicon.AddFamily("NP", MustParseCategory("N")))
	require.Error(t, lexicon.AddEntry("runs", "S\\NP"))
}

func TestLexiconDeclarationOrder(t *testing.T) {
	// Families and primitives declared after the entries still apply
	lexicon, err := ParseLexicon(`
the => Det
saw => TV
Det :: NP/N
TV :: (S\NP)/NP
:- S, NP, N
`)
	require.NoError(t, err)
	require.Equal(t, "NP/N", lexicon.Categories("the")[0].String())
	require.Equal(t, "(S\\NP)/NP", lexicon.Categories("saw")[0].String())

	_, err = ParseLexicon("dog => N\n:- S, NP")
	var lexiconErr *LexiconError
	require.True(t, errors.As(err, &lexiconErr))
	require.Equal(t, 1, lexiconErr.Line)

	// A family can't change entries added before it
	added := NewLexicon()
	require.NoError(t, added.AddEntry("the", "Det"))
	require.Error(t, added.AddFamily("Det", MustParseCategory("NP/N")))
	require.Equal(t, "Det", added.Categories("the")[0].String())
}
