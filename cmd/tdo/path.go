package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/amonks/tdo/todo"
)

var errNoSubtasks = errors.New("todo has no subtasks")

// todoPath addresses a todo by 1-based positions, one per nesting level.
// It implements pflag.Value so it can back flags as well as arguments.
type todoPath []int

func parseTodoPath(value string) (todoPath, error) {
	var p todoPath
	if err := p.Set(value); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *todoPath) Set(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("invalid todo path %q", value)
	}
	parts := strings.Split(value, ".")
	parsed := make(todoPath, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid todo path %q", value)
		}
		parsed = append(parsed, n)
	}
	*p = parsed
	return nil
}

func (p todoPath) String() string {
	parts := make([]string, len(p))
	for i, n := range p {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

func (p *todoPath) Type() string {
	return "path"
}

// parent returns the path of the list holding the addressed todo.
func (p todoPath) parent() todoPath {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1]
}

// child returns the path of the todo at 0-based index within the list at p.
func (p todoPath) child(index int) todoPath {
	out := make(todoPath, len(p), len(p)+1)
	copy(out, p)
	return append(out, index+1)
}

// subList returns the list addressed by p: the root for an empty path,
// otherwise the dependency list of the addressed todo.
func subList(root *todo.List, p todoPath) (*todo.List, error) {
	list := root
	for depth, n := range p {
		t, err := list.At(n - 1)
		if err != nil {
			return nil, fmt.Errorf("todo %s: %w", p[:depth+1], err)
		}
		deps := t.Dependencies()
		if deps == nil {
			return nil, fmt.Errorf("todo %s: %w", p[:depth+1], errNoSubtasks)
		}
		list = deps
	}
	return list, nil
}

// target is a resolved todo together with the list and partition holding it.
type target struct {
	path  todoPath
	list  *todo.List
	arr   *todo.Array
	index int
	todo  *todo.Todo
}

func resolve(root *todo.List, p todoPath) (target, error) {
	if len(p) == 0 {
		return target{}, fmt.Errorf("empty todo path")
	}
	list, err := subList(root, p.parent())
	if err != nil {
		return target{}, err
	}
	arr, index, err := list.Locate(p[len(p)-1] - 1)
	if err != nil {
		return target{}, fmt.Errorf("todo %s: %w", p, err)
	}
	return target{
		path:  p,
		list:  list,
		arr:   arr,
		index: index,
		todo:  arr.At(index),
	}, nil
}

func resolveArg(root *todo.List, arg string) (target, error) {
	p, err := parseTodoPath(arg)
	if err != nil {
		return target{}, err
	}
	return resolve(root, p)
}

// currentPath returns where the target's todo sits now, after it may have
// been moved by a reorder or a partition fix.
func (t target) currentPath() todoPath {
	for i := 0; i < t.list.Len(); i++ {
		if item, _ := t.list.At(i); item == t.todo {
			return t.path.parent().child(i)
		}
	}
	return t.path
}
