package source

import (
	"fmt"
	"reflect"
	"strings"
)

const (
	indent        = "    "
	noDescription = "No description"
	anyType       = "Any"
)

// ParamNames returns names for every input of fnType, taking the given names first
// and filling the rest with arg0, arg1, ...
func ParamNames(fnType reflect.Type, names []string) []string {
	if fnType == nil || fnType.Kind() != reflect.Func {
		return nil
	}

	res := make([]string, fnType.NumIn())
	for i := range res {
		if i < len(names) && names[i] != "" {
			res[i] = names[i]

			continue
		}

		res[i] = fmt.Sprintf("arg%d", i)
	}

	return res
}

func typeName(fnType reflect.Type, idx int) string {
	in := fnType.In(idx)
	if fnType.IsVariadic() && idx == fnType.NumIn()-1 {
		return "..." + in.Elem().String()
	}

	return in.String()
}

// OutputType renders the results of fnType. A function without results is "Any".
func OutputType(fnType reflect.Type) string {
	if fnType == nil || fnType.Kind() != reflect.Func || fnType.NumOut() == 0 {
		return anyType
	}

	if fnType.NumOut() == 1 {
		return fnType.Out(0).String()
	}

	outs := make([]string, fnType.NumOut())
	for i := range outs {
		outs[i] = fnType.Out(i).String()
	}

	return "(" + strings.Join(outs, ", ") + ")"
}

// Docstring describes a function from its comment and signature. Every line is
// indented one level so it can sit under a def line.
func Docstring(fnType reflect.Type, names []string, comment string) string {
	if comment == "" {
		comment = noDescription
	}

	lines := []string{comment, "", "Input types:"}

	params := ParamNames(fnType, names)
	for i, name := range params {
		lines = append(lines, indent+name+": "+typeName(fnType, i))
	}

	lines = append(lines, "", "Output type: "+OutputType(fnType))

	for i, line := range lines {
		if line != "" {
			lines[i] = indent + line
		}
	}

	return strings.Join(lines, "\n")
}

// Stub synthesises a placeholder definition for a function registered without source.
func Stub(name string, fnType reflect.Type, names []string, comment string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "def %s(%s):\n", name, strings.Join(ParamNames(fnType, names), ", "))
	b.WriteString(indent + `"""` + "\n")
	b.WriteString(Docstring(fnType, names, comment))
	b.WriteString("\n" + indent + `"""` + "\n")
	b.WriteString(indent + "pass\n")

	return b.String()
}
