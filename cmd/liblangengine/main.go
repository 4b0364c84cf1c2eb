// Command liblangengine builds the C shared library loaded by the host
// application:
//
//	go build -buildmode=c-shared -o liblangengine.so ./cmd/liblangengine
package main

/*
#include <stdlib.h>
*/
import "C"

import (
	"context"
	"log/slog"
	"os"

	"langengine/internal/bridge"
)

var (
	active    = bridge.New()
	libLogger = stderrLogger(nil)
	interned  = newInternTable(func(s string) *C.char { return C.CString(s) },
		func() *slog.Logger { return libLogger })
)

func init() {
	l := loader{bridge: active, getenv: os.Getenv, newLogger: stderrLogger}
	libLogger, _ = l.load(context.Background())
}

//export get_current_language
func get_current_language() *C.char {
	return interned.get(active.Get())
}

//export set_current_language
func set_current_language(code *C.char) C.int {
	if code == nil {
		return C.int(setLanguage(active, nil))
	}
	value := C.GoString(code)
	return C.int(setLanguage(active, &value))
}

//export language_engine_available
func language_engine_available() C.int {
	return C.int(engineAvailable(active))
}

func main() {}
