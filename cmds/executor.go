package cmds

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/reusee/mscript/vars"
)

var (
	errorType = reflect.TypeFor[error]()

	ErrUnknownCommand = errors.New("unknown command")
)

// Executor maps command line words to commands. A command consumes one following word
// per function parameter; pointer parameters are optional.
type Executor struct {
	commands map[string]*Command
	// rest receives arguments that do not name a command
	rest *Command
}

func NewExecutor() *Executor {
	ret := &Executor{
		commands: make(map[string]*Command),
	}
	ret.Define("-h", Func(func() {
		ret.PrintUsage()
		os.Exit(0)
	}).
		Desc("print this usage").
		Alias("help", "-help", "--help"))
	return ret
}

func (p *Executor) Define(name string, command *Command) {
	for _, name := range append([]string{name}, command.Aliases...) {
		if _, ok := p.commands[name]; ok {
			panic(fmt.Errorf("duplicated command %s", name))
		}
		p.commands[name] = command
	}
}

// Rest sets the command that consumes arguments not naming any command.
// It must take exactly one argument.
func (p *Executor) Rest(command *Command) {
	if !command.Func.IsValid() || command.Func.Type().NumIn() != 1 {
		panic(fmt.Errorf("rest command must take one argument"))
	}
	p.rest = command
}

func (p *Executor) Execute(args []string) error {
	commands := p.commands
	for len(args) > 0 {
		name := strings.TrimSpace(args[0])

		command, ok := commands[name]
		if ok {
			args = args[1:]
		} else if p.rest != nil {
			// the word itself is the argument
			command = p.rest
		} else {
			return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
		}

		var err error
		args, err = call(command, args)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		if len(command.Subs) > 0 {
			commands = maps.Clone(commands)
			for subname, sub := range command.Subs {
				if _, ok := commands[subname]; ok {
					return fmt.Errorf("duplicated sub command: %s %s", name, subname)
				}
				commands[subname] = sub
			}
		}
	}
	return nil
}

func (p *Executor) MustExecute(args []string) {
	if err := p.Execute(args); err != nil {
		panic(err)
	}
}

// call runs the command function and returns the arguments left.
func call(command *Command, args []string) ([]string, error) {
	if !command.Func.IsValid() {
		return args, nil
	}
	fnType := command.Func.Type()
	in := make([]reflect.Value, 0, fnType.NumIn())
	for i := range fnType.NumIn() {
		value, err := parseArg(fnType.In(i), args)
		if err != nil {
			return nil, err
		}
		if len(args) > 0 {
			args = args[1:]
		}
		in = append(in, value)
	}
	out := command.Func.Call(in)
	if len(out) > 0 && !out[0].IsNil() {
		return nil, out[0].Interface().(error)
	}
	return args, nil
}

func parseArg(t reflect.Type, args []string) (reflect.Value, error) {
	if t.Kind() == reflect.Pointer {
		if len(args) == 0 {
			// optional
			return reflect.New(t.Elem()), nil
		}
		elem, err := parseArg(t.Elem(), args)
		if err != nil {
			return reflect.Value{}, err
		}
		return elem.Addr(), nil
	}
	if len(args) == 0 {
		return reflect.Value{}, fmt.Errorf("expecting %v argument, got nothing", t.Kind())
	}

	str := args[0]
	ret := reflect.New(t).Elem()
	switch t.Kind() {

	case reflect.String:
		ret.SetString(str)

	case reflect.Bool:
		v, err := vars.ParseBool(str)
		if err != nil {
			return ret, err
		}
		ret.SetBool(v)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(str, 10, t.Bits())
		if err != nil {
			return ret, fmt.Errorf("convert %s to int: %w", str, err)
		}
		ret.SetInt(v)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseUint(str, 10, t.Bits())
		if err != nil {
			return ret, fmt.Errorf("convert %s to unsigned int: %w", str, err)
		}
		ret.SetUint(v)

	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(str, t.Bits())
		if err != nil {
			return ret, fmt.Errorf("convert %s to float: %w", str, err)
		}
		ret.SetFloat(v)

	default:
		return ret, fmt.Errorf("unsupported type: %v", t)
	}
	return ret, nil
}
