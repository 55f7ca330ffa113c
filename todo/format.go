package todo

import (
	"strconv"
	"strings"
)

// String encodes the todo as its storage line.
func (t *Todo) String() string {
	var b strings.Builder
	b.WriteByte('[')
	if t.done {
		b.WriteByte('-')
	}
	b.WriteString(strconv.Itoa(t.priority))
	b.WriteByte(']')
	if t.attachment.kind != attachNone {
		b.WriteByte('>')
		b.WriteString(t.attachment.ref)
	}
	b.WriteByte(' ')
	b.WriteString(t.Message)
	return b.String()
}

// Parse decodes a storage line. Dependency lines yield a todo whose nested
// list is empty; Store.Parse loads it as well.
//
// The forms are tried in order: dependency, note, plain. A line matching
// none of them returns ErrReadFailed.
func Parse(line string) (*Todo, error) {
	token, rest, ok := cutBracket(line)
	if !ok {
		return nil, ErrReadFailed
	}

	priority, done, ok := parsePriorityToken(token)
	if !ok {
		return nil, ErrReadFailed
	}

	t := &Todo{priority: priority, done: done}

	if after, isRef := strings.CutPrefix(rest, ">"); isRef {
		ref, message, ok := strings.Cut(after, " ")
		if !ok || ref == "" {
			return nil, ErrReadFailed
		}
		t.Message = message
		if stem, isDep := strings.CutSuffix(ref, DependencySuffix); isDep && stem != "" {
			t.attachment = dependencyAttachment(ref, nil)
		} else {
			t.attachment = noteAttachment(ref)
		}
		return t, nil
	}

	message, ok := strings.CutPrefix(rest, " ")
	if !ok {
		return nil, ErrReadFailed
	}
	t.Message = message
	return t, nil
}

func cutBracket(line string) (token, rest string, ok bool) {
	after, ok := strings.CutPrefix(line, "[")
	if !ok {
		return "", "", false
	}
	return strings.Cut(after, "]")
}

// parsePriorityToken reads an optional '-' followed by digits. The sign marks
// the todo done; the stored priority is the magnitude. Values outside 0-9 are
// kept as written.
func parsePriorityToken(token string) (priority int, done bool, ok bool) {
	digits := strings.TrimPrefix(token, "-")
	if digits == "" {
		return 0, false, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false, false
		}
	}

	value, err := strconv.Atoi(token)
	if err != nil {
		return 0, false, false
	}

	done = token[0] == '-'
	if done {
		value = -value
	}
	return value, done, true
}
