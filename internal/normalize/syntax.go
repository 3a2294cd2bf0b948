package normalize

import (
	"regexp"

	"github.com/evanw/esbuild/pkg/api"
)

// Fixed repairs applied when the source does not compile. Order matters.
var syntaxRepairs = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`;(\s*)\}`), "$1}"},
	{regexp.MustCompile(`';`), "'"},
	{regexp.MustCompile(`,(?:\s*,)+`), ","},
	{regexp.MustCompile(`\{\s*,`), "{"},
	{regexp.MustCompile(`,(\s*)\}`), "$1}"},
}

const maxRepairRounds = 4

// Compiles reports whether src parses as JSX.
func Compiles(src string) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	res := api.Transform(src, api.TransformOptions{
		Loader:   api.LoaderJSX,
		LogLevel: api.LogLevelSilent,
	})
	return len(res.Errors) == 0
}

// RepairSyntax is a best-effort pass: source that compiles is returned
// unchanged; otherwise the fixed regex repairs are applied until they stop
// changing the text, and the result is returned whether or not it compiles.
func RepairSyntax(src string) string {
	if Compiles(src) {
		return src
	}
	for round := 0; round < maxRepairRounds; round++ {
		next := src
		for _, r := range syntaxRepairs {
			next = r.re.ReplaceAllString(next, r.repl)
		}
		if next == src {
			break
		}
		src = next
	}
	return src
}
