package envvars

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ExprResolver resolves variable references by evaluating named
// expr-lang programs. It supplies computed variables behind the same
// [Resolver] interface the store implements, so macro expansion cannot
// tell a stored value from a computed one.
//
// Program names share the store's case-insensitive identity. Programs
// may call the built-in env function to read the process environment:
//
//	r, err := envvars.NewExprResolver(map[string]string{
//		"workers": "2 * 4",
//		"prompt":  `env("USER") + "@" + env("HOST")`,
//	})
type ExprResolver struct {
	programs map[string]*vm.Program
	env      map[string]any
}

// ExprOption applies a configuration option to an [ExprResolver] under
// construction.
type ExprOption func(*exprConfig)

type exprConfig struct {
	processEnv []string
}

// WithProcessEnv overrides the process environment exposed to programs
// through the env function. Each entry has the form NAME=VALUE; the
// default is [os.Environ].
func WithProcessEnv(environ []string) ExprOption {
	return func(cfg *exprConfig) { cfg.processEnv = environ }
}

// NewExprResolver compiles one program per definition. A definition
// that fails to compile fails the whole construction with
// [ErrExprCompile] wrapping the compiler diagnostic.
func NewExprResolver(
	defs map[string]string,
	opts ...ExprOption,
) (*ExprResolver, error) {
	var cfg exprConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	env := map[string]any{
		"env": envFunc(processEnvMap(cfg.processEnv)),
	}

	r := &ExprResolver{
		programs: make(map[string]*vm.Program, len(defs)),
		env:      env,
	}

	for _, name := range sortedNames(defs) {
		source := defs[name]

		program, err := expr.Compile(source,
			expr.Env(env),
			expr.AllowUndefinedVariables(),
		)
		if err != nil {
			return nil, ErrExprCompile.Wrap(err).
				With(
					slog.String("name", name),
					slog.String("source", source),
				)
		}

		r.programs[foldName(name)] = program
	}

	return r, nil
}

// Resolve evaluates the program registered under name. Names without
// a program, and programs that fail at runtime, resolve to nothing,
// which leaves the reference untouched in the expanded text.
func (r *ExprResolver) Resolve(name string) (string, bool) {
	value, err := r.Eval(name)
	if err != nil {
		return "", false
	}

	return value, true
}

// Eval evaluates the program registered under name, surfacing the
// failures that [ExprResolver.Resolve] discards: an unregistered name
// fails with [ErrProgramNotFound], a runtime failure with
// [ErrExprEvaluate] wrapping the cause.
func (r *ExprResolver) Eval(name string) (string, error) {
	program, ok := r.programs[foldName(name)]
	if !ok {
		return "", ErrProgramNotFound.
			With(slog.String("name", name))
	}

	result, err := vm.Run(program, r.env)
	if err != nil {
		return "", ErrExprEvaluate.Wrap(err).
			With(slog.String("name", name))
	}

	return formatValue(result), nil
}

// processEnvMap converts NAME=VALUE entries to a map, reading
// [os.Environ] when environ is nil.
func processEnvMap(environ []string) map[string]string {
	if environ == nil {
		environ = os.Environ()
	}

	m := make(map[string]string, len(environ))

	for _, line := range environ {
		if name, value, ok := strings.Cut(line, "="); ok {
			m[name] = value
		}
	}

	return m
}

// envFunc returns the built-in env() function that provides process
// environment access to expr programs.
func envFunc(processEnv map[string]string) func(string) string {
	return func(key string) string {
		return processEnv[key]
	}
}

// formatValue renders an evaluation result as a variable value.
func formatValue(result any) string {
	switch v := result.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
