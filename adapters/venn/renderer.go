package venn

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"

	"emvenn/domain/run"
	"emvenn/internal/errors"
)

// codeLine matches the template's region labels: a y-coordinate attribute
// followed by a lowercase a-f code closed by the element delimiter.
var codeLine = regexp.MustCompile(`(y="[0-9]+\.[0-9]+">)([a-f]+)(</)`)

// Renderer substitutes estimated agreement probabilities into a 6-way Venn
// diagram SVG template. The template ships with the paper's documentation
// (Heberle et al.'s interactivenn 6-way base diagram).
type Renderer struct {
	templatePath string
}

// NewRenderer creates a renderer for the given template file
func NewRenderer(templatePath string) *Renderer {
	return &Renderer{templatePath: templatePath}
}

// Render streams the template to w, replacing each region's letter code with
// the run's probability for that code and leaving every other line unchanged.
// A missing template is reported as NOT_FOUND; read failures surface to the
// caller instead of being swallowed.
func (r *Renderer) Render(result *run.Result, w io.Writer) error {
	f, err := os.Open(r.templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NotFound(fmt.Sprintf("venn template %s", r.templatePath))
		}
		return errors.Wrapf(err, "failed to open venn template %s", r.templatePath)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		out, err := r.substitute(result, line)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, out); err != nil {
			return errors.Wrap(err, "failed to write rendered diagram")
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "failed to read venn template %s", r.templatePath)
	}
	return nil
}

// substitute replaces the letter code on a label line with its probability.
func (r *Renderer) substitute(result *run.Result, line string) (string, error) {
	m := codeLine.FindStringSubmatchIndex(line)
	if m == nil {
		return line, nil
	}
	code := line[m[4]:m[5]]
	p, err := result.Probability(code)
	if err != nil {
		return "", errors.Wrapf(err, "template label %q is not a subset code", code)
	}
	return line[:m[4]] + strconv.FormatFloat(p, 'f', -1, 64) + line[m[5]:], nil
}
