package socketio_utils

import (
	"errors"
	"strings"
)

var ErrMissingArgument = errors.New("missing argument")

// Ack is the acknowledgement callback a client may pass as the last argument.
type Ack = func([]interface{}, error)

// SplitAck separates a trailing acknowledgement callback from the event args.
func SplitAck(args []interface{}) ([]interface{}, Ack) {
	if len(args) == 0 {
		return args, nil
	}
	if ack, ok := args[len(args)-1].(func([]interface{}, error)); ok {
		return args[:len(args)-1], ack
	}
	return args, nil
}

// StringArg reads args[i] as a non-empty string. An object argument is
// searched for key instead, so both emit("ev", id) and emit("ev", {key: id})
// work.
func StringArg(args []interface{}, i int, key string) (string, error) {
	if len(args) == 0 {
		return "", ErrMissingArgument
	}
	if obj, ok := args[0].(map[string]interface{}); ok {
		v, _ := obj[key].(string)
		if strings.TrimSpace(v) == "" {
			return "", ErrMissingArgument
		}
		return v, nil
	}
	if i >= len(args) {
		return "", ErrMissingArgument
	}
	v, _ := args[i].(string)
	if strings.TrimSpace(v) == "" {
		return "", ErrMissingArgument
	}
	return v, nil
}

// BoolArg reads args[i] (or key of an object first argument) as a bool.
// Absent values read as def.
func BoolArg(args []interface{}, i int, key string, def bool) bool {
	if len(args) == 0 {
		return def
	}
	if obj, ok := args[0].(map[string]interface{}); ok {
		if v, ok := obj[key].(bool); ok {
			return v
		}
		return def
	}
	if i >= len(args) {
		return def
	}
	if v, ok := args[i].(bool); ok {
		return v
	}
	return def
}
