package pnmkit

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// Step is one parsed pipeline operation, written as name[:arg[,arg...]].
// Resize also accepts WxH as its argument.
type Step struct {
	Name string
	Args []string
}

func (s Step) String() string {
	if len(s.Args) == 0 {
		return s.Name
	}
	return s.Name + ":" + strings.Join(s.Args, ",")
}

// stepArity is the number of arguments each step takes.
var stepArity = map[string]int{
	"rotate":   1,
	"resize":   2,
	"erode":    0,
	"dilate":   0,
	"negate":   0,
	"binarize": 1,
	"invert":   0,
	"blur":     0,
	"denoise":  0,
	"gradient": 0,
}

// intSteps take whole-number arguments.
var intSteps = map[string]bool{
	"resize":   true,
	"binarize": true,
}

// ParseStep parses a single step such as "rotate:45" or "resize:64x32".
func ParseStep(s string) (Step, error) {
	s = strings.TrimSpace(s)
	name, rest, _ := strings.Cut(s, ":")
	name = strings.ToLower(strings.TrimSpace(name))

	arity, ok := stepArity[name]
	if !ok {
		return Step{}, errors.Wrapf(ErrUnknownStep, "%q", name)
	}

	var args []string
	if rest = strings.TrimSpace(rest); rest != "" {
		if name == "resize" && !strings.Contains(rest, ",") {
			rest = strings.Replace(strings.ToLower(rest), "x", ",", 1)
		}
		for _, a := range strings.Split(rest, ",") {
			args = append(args, strings.TrimSpace(a))
		}
	}
	if len(args) != arity {
		return Step{}, errors.Wrapf(ErrUnknownStep,
			"%s takes %d argument(s), got %d", name, arity, len(args))
	}

	step := Step{Name: name, Args: args}
	// Reject bad arguments now rather than halfway through a run.
	var err error
	if intSteps[name] {
		_, err = step.ints()
	} else {
		_, err = step.floats()
	}
	if err != nil {
		return Step{}, err
	}
	return step, nil
}

// ParseRecipe reads one step per line. Blank lines and lines starting with
// '#' are ignored.
func ParseRecipe(r io.Reader) ([]Step, error) {
	var steps []Step
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		step, err := ParseStep(text)
		if err != nil {
			return nil, errors.Wrapf(err, "recipe line %d", line)
		}
		steps = append(steps, step)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read recipe")
	}
	return steps, nil
}

func (s Step) floats() ([]float64, error) {
	out := make([]float64, len(s.Args))
	for i, a := range s.Args {
		f, err := cast.ToFloat64E(a)
		if err != nil {
			return nil, errors.Wrapf(ErrUnknownStep, "%s: bad argument %q", s.Name, a)
		}
		out[i] = f
	}
	return out, nil
}

// ints parses decimal integers. A leading zero does not mean octal.
func (s Step) ints() ([]int, error) {
	out := make([]int, len(s.Args))
	for i, a := range s.Args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, errors.Wrapf(ErrUnknownStep, "%s: expected integer, got %q", s.Name, a)
		}
		out[i] = n
	}
	return out, nil
}

// Apply runs steps in order, stopping at the first error.
func (img *Image) Apply(steps ...Step) error {
	for _, step := range steps {
		if err := img.apply(step); err != nil {
			return errors.Wrapf(err, "step %s", step)
		}
	}
	return nil
}

func (img *Image) apply(step Step) error {
	switch step.Name {
	case "rotate":
		f, err := step.floats()
		if err != nil {
			return err
		}
		img.Rotate(f[0])
	case "resize":
		n, err := step.ints()
		if err != nil {
			return err
		}
		return img.Resize(n[0], n[1])
	case "erode":
		img.Erode()
	case "dilate":
		img.Dilate()
	case "negate":
		img.Negate()
	case "binarize":
		n, err := step.ints()
		if err != nil {
			return err
		}
		img.Binarize(n[0])
	case "invert":
		img.Invert()
	case "blur":
		img.Blur()
	case "denoise":
		img.ReduceNoise()
	case "gradient":
		img.Gradient()
	default:
		return errors.Wrapf(ErrUnknownStep, "%q", step.Name)
	}
	return nil
}
