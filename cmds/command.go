package cmds

import (
	"fmt"
	"reflect"
)

// Command is a command line word. Func consumes the words following it, one per parameter.
type Command struct {
	Func        reflect.Value
	Subs        map[string]*Command
	Description string
	Aliases     []string
}

func (c *Command) Desc(desc string) *Command {
	c.Description = desc
	return c
}

func (c *Command) Alias(names ...string) *Command {
	c.Aliases = append(c.Aliases, names...)
	return c
}

// Params describes the arguments of the command for usage output. Optional ones are bracketed.
func (c *Command) Params() (ret []string) {
	if !c.Func.IsValid() {
		return nil
	}
	t := c.Func.Type()
	for i := range t.NumIn() {
		in := t.In(i)
		if in.Kind() == reflect.Pointer {
			ret = append(ret, "["+in.Elem().Kind().String()+"]")
			continue
		}
		ret = append(ret, in.Kind().String())
	}
	return
}

func Func(fn any) *Command {
	fnValue := reflect.ValueOf(fn)
	if fnValue.Kind() != reflect.Func {
		panic(fmt.Errorf("command must be a function, got %T", fn))
	}

	fnType := fnValue.Type()
	if fnType.IsVariadic() {
		panic(fmt.Errorf("command can not be variadic: %v", fnType))
	}
	switch fnType.NumOut() {
	case 0:
	case 1:
		if fnType.Out(0) != errorType {
			panic(fmt.Errorf("command may only return error, got %v", fnType.Out(0)))
		}
	default:
		panic(fmt.Errorf("command returns too many values: %v", fnType))
	}

	return &Command{
		Func: fnValue,
	}
}

func Sub(subs map[string]*Command) *Command {
	return &Command{
		Subs: subs,
	}
}
