package command

import (
	"reflect"
	"sync"
)

// targetNameCache caches reflection results for target type names.
// Key is reflect.Type, value is the derived name string.
var targetNameCache sync.Map

// targetName derives a diagnostic name from a target type, used to label
// watched asynchronous executions. For structs it is the struct name; for
// unnamed types it falls back to the type's string form.
func targetName(t reflect.Type) string {
	if name, ok := targetNameCache.Load(t); ok {
		return name.(string)
	}

	original := t
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	name := t.Name()
	if name == "" {
		name = t.String()
	}

	targetNameCache.Store(original, name)
	return name
}

// taskNameFor builds the watched-task name for a command over target type S.
func taskNameFor[S any]() string {
	return "command:" + targetName(reflect.TypeFor[S]())
}
