/*
Copyright 2026 The Sydney-Go Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

     http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package sydconfig defines a string-keyed parameter bag used to
// describe a FileIdentifier and an OpenOption. It follows the same
// accumulate-errors-then-Validate shape as jsonconfig, since both a
// FileIdentifier and an OpenOption are assembled key-by-key by a
// caller outside this subsystem before being handed to a driver.
package sydconfig

import (
	"fmt"
	"strings"
)

// Obj is a parameter bag: FileIdentifier keys (PageSize, Area.0,
// Mounted, ...) or OpenOption keys (OpenMode, ReadSubMode, ...).
type Obj map[string]interface{}

func (o Obj) RequiredString(key string) string { return o.str(key, nil) }
func (o Obj) OptionalString(key, def string) string {
	return o.str(key, &def)
}

func (o Obj) str(key string, def *string) string {
	o.noteKnownKey(key)
	v, ok := o[key]
	if !ok {
		if def != nil {
			return *def
		}
		o.appendError(fmt.Errorf("missing required key %q (string)", key))
		return ""
	}
	s, ok := v.(string)
	if !ok {
		o.appendError(fmt.Errorf("key %q must be a string, got %T", key, v))
		return ""
	}
	return s
}

func (o Obj) RequiredBool(key string) bool { return o.boolean(key, nil) }
func (o Obj) OptionalBool(key string, def bool) bool {
	return o.boolean(key, &def)
}

func (o Obj) boolean(key string, def *bool) bool {
	o.noteKnownKey(key)
	v, ok := o[key]
	if !ok {
		if def != nil {
			return *def
		}
		o.appendError(fmt.Errorf("missing required key %q (bool)", key))
		return false
	}
	b, ok := v.(bool)
	if !ok {
		o.appendError(fmt.Errorf("key %q must be a bool, got %T", key, v))
		return false
	}
	return b
}

func (o Obj) RequiredInt(key string) int { return o.intval(key, nil) }
func (o Obj) OptionalInt(key string, def int) int {
	return o.intval(key, &def)
}

func (o Obj) intval(key string, def *int) int {
	o.noteKnownKey(key)
	v, ok := o[key]
	if !ok {
		if def != nil {
			return *def
		}
		o.appendError(fmt.Errorf("missing required key %q (int)", key))
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		o.appendError(fmt.Errorf("key %q must be a number, got %T", key, v))
		return 0
	}
}

// Raw returns the unconverted value for key, marking it known so
// Validate doesn't flag it as unexpected. Used for values whose Go type
// isn't known ahead of time, such as a vector file's SearchValue.
func (o Obj) Raw(key string) (interface{}, bool) {
	o.noteKnownKey(key)
	v, ok := o[key]
	return v, ok
}

// Has reports whether key is present, without marking it required. It
// does not mark the key known either, so a key only ever checked with
// Has is still reported as unknown by Validate.
func (o Obj) Has(key string) bool {
	_, ok := o[key]
	return ok
}

func (o Obj) noteKnownKey(key string) {
	ei, ok := o["_knownkeys"]
	if !ok {
		ei = make(map[string]bool)
		o["_knownkeys"] = ei
	}
	ei.(map[string]bool)[key] = true
}

func (o Obj) appendError(err error) {
	ei, ok := o["_errors"]
	if ok {
		o["_errors"] = append(ei.([]error), err)
	} else {
		o["_errors"] = []error{err}
	}
}

func (o Obj) lookForUnknownKeys() {
	ei, ok := o["_knownkeys"]
	var known map[string]bool
	if ok {
		known = ei.(map[string]bool)
	}
	for k := range o {
		if ok && known[k] {
			continue
		}
		if strings.HasPrefix(k, "_") {
			continue
		}
		o.appendError(fmt.Errorf("unknown key %q", k))
	}
}

// Validate reports accumulated errors, including any key never read by
// a RequiredX/OptionalX accessor (mirrors jsonconfig.Obj.Validate).
func (o Obj) Validate() error {
	o.lookForUnknownKeys()
	ei, ok := o["_errors"]
	if !ok {
		return nil
	}
	errs := ei.([]error)
	if len(errs) == 1 {
		return errs[0]
	}
	strs := make([]string, 0, len(errs))
	for _, e := range errs {
		strs = append(strs, e.Error())
	}
	return fmt.Errorf("multiple errors: %s", strings.Join(strs, ", "))
}
