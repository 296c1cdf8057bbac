package debug

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
)

type debug struct {
	Parse   bool
	Eval    bool
	Builtin bool
	Store   bool
}

var (
	d   *debug
	mu  sync.Mutex
	out io.Writer = os.Stderr
)

func init() {
	d = &debug{}
	d.Parse = boolEnv("FRAG_DEBUG_PARSE")
	d.Eval = boolEnv("FRAG_DEBUG_EVAL")
	d.Builtin = boolEnv("FRAG_DEBUG_BUILTIN")
	d.Store = boolEnv("FRAG_DEBUG_STORE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Eval() bool {
	return d.Eval
}
func Builtin() bool {
	return d.Builtin
}
func Store() bool {
	return d.Store
}

// EnableAll turns every debug flag on, as `frag run -debug` does.
func EnableAll() {
	d.Parse, d.Eval, d.Builtin, d.Store = true, true, true, true
}

// SetOutput redirects debug output, returning the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

func Logf(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(out, format, args...)
}
