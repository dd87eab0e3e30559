package xmain

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"oss.terrastruct.com/xos"
)

// Opts declares flags whose defaults may come from the environment. A flag
// passed on the command line always wins over its variable.
type Opts struct {
	Args  []string
	Flags *pflag.FlagSet
	env   *xos.Env

	// envFlags pairs each consulted variable with the flag it backs.
	envFlags [][2]string
}

func NewOpts(env *xos.Env, args []string) *Opts {
	flags := pflag.NewFlagSet("", pflag.ContinueOnError)
	flags.SortFlags = false
	flags.Usage = func() {}
	flags.SetOutput(io.Discard)
	return &Opts{
		Args:  args,
		Flags: flags,
		env:   env,
	}
}

// Help lists the flags followed by the variables that can stand in for them.
func (o *Opts) Help() string {
	b := &strings.Builder{}
	o.Flags.SetOutput(b)
	o.Flags.PrintDefaults()
	o.Flags.SetOutput(io.Discard)

	if len(o.envFlags) > 0 {
		b.WriteString("\nEnvironment (flags take precedence):\n")
		for _, ef := range o.envFlags {
			fmt.Fprintf(b, "  $%-16s --%s\n", ef[0], ef[1])
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Changed reports whether flag was passed explicitly.
func (o *Opts) Changed(flag string) bool {
	return o.Flags.Changed(flag)
}

func (o *Opts) lookupEnv(envKey, flag string) string {
	if envKey == "" {
		return ""
	}
	o.envFlags = append(o.envFlags, [2]string{envKey, flag})
	return o.env.Getenv(envKey)
}

func (o *Opts) Float64(envKey, flag, shortFlag string, defaultVal float64, usage string) (*float64, error) {
	if env := o.lookupEnv(envKey, flag); env != "" {
		v, err := strconv.ParseFloat(env, 64)
		if err != nil {
			return nil, fmt.Errorf(`invalid environment variable %s. Expected a number. Found "%s".`, envKey, env)
		}
		defaultVal = v
	}
	return o.Flags.Float64P(flag, shortFlag, defaultVal, usage), nil
}

func (o *Opts) String(envKey, flag, shortFlag string, defaultVal, usage string) *string {
	if env := o.lookupEnv(envKey, flag); env != "" {
		defaultVal = env
	}
	return o.Flags.StringP(flag, shortFlag, defaultVal, usage)
}

// Bool accepts 1, 0, true and false from the environment.
func (o *Opts) Bool(envKey, flag, shortFlag string, defaultVal bool, usage string) (*bool, error) {
	switch env := o.lookupEnv(envKey, flag); env {
	case "":
	case "1", "true":
		defaultVal = true
	case "0", "false":
		defaultVal = false
	default:
		return nil, fmt.Errorf(`invalid environment variable %s. Expected bool. Found "%s".`, envKey, env)
	}
	return o.Flags.BoolP(flag, shortFlag, defaultVal, usage), nil
}
