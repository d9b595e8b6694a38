package expr

import (
	"strings"
	"sync"

	"github.com/bornholm/solite-docs/internal/check"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/pkg/errors"
)

// Rule reports an issue for every link its expression evaluates to true on.
type Rule struct {
	name     string
	script   string
	severity check.Severity
	message  string

	program     *vm.Program
	compileOnce sync.Once
	compileErr  error
}

// Name implements check.Rule.
func (r *Rule) Name() string {
	return r.name
}

// Severity implements check.Rule.
func (r *Rule) Severity() check.Severity {
	return r.severity
}

// Message implements check.Rule.
func (r *Rule) Message() string {
	return r.message
}

// Match implements check.Rule.
func (r *Rule) Match(env check.RuleEnv) (bool, error) {
	program, err := r.getProgram()
	if err != nil {
		return false, errors.WithStack(err)
	}

	result, err := expr.Run(program, env.Map())
	if err != nil {
		return false, errors.Wrapf(err, "could not evaluate rule '%s'", r.name)
	}

	matched, ok := result.(bool)
	if !ok {
		return false, errors.Errorf("unexpected rule '%s' result type '%T', expected boolean", r.name, result)
	}

	return matched, nil
}

// Compile reports expression errors before the rule is first evaluated.
func (r *Rule) Compile() error {
	_, err := r.getProgram()
	return errors.WithStack(err)
}

func (r *Rule) getProgram() (*vm.Program, error) {
	r.compileOnce.Do(func() {
		program, err := expr.Compile(r.script, append([]expr.Option{expr.AsBool()}, RuleAPI()...)...)
		if err != nil {
			r.compileErr = errors.Wrapf(err, "could not compile rule '%s'", r.name)
			return
		}

		r.program = program
	})
	if r.compileErr != nil {
		return nil, errors.WithStack(r.compileErr)
	}

	return r.program, nil
}

func (r *Rule) String() string {
	return r.script
}

// RuleAPI declares the variables and helpers available to rule expressions.
func RuleAPI() []expr.Option {
	return []expr.Option{
		expr.Env(check.RuleEnv{}.Map()),
		expr.Function(
			"segments",
			func(params ...any) (any, error) {
				path, ok := params[0].(string)
				if !ok {
					return nil, errors.Errorf("segments: unexpected argument type '%T'", params[0])
				}

				trimmed := strings.Trim(path, "/")
				if trimmed == "" {
					return []string{}, nil
				}

				return strings.Split(trimmed, "/"), nil
			},
			new(func(string) []string),
		),
	}
}

func NewRule(name string, script string, severity check.Severity, message string) *Rule {
	return &Rule{
		name:     name,
		script:   script,
		severity: severity,
		message:  message,
	}
}

var _ check.Rule = &Rule{}
