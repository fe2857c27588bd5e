package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Apply     bool
	XOp       bool
	Validate  bool
	Reconcile bool
}

var d *debug

func init() {
	d = &debug{}
	d.Apply = boolEnv("JP_DEBUG_APPLY")
	d.XOp = boolEnv("JP_DEBUG_XOP")
	d.Validate = boolEnv("JP_DEBUG_VALIDATE")
	d.Reconcile = boolEnv("JP_DEBUG_RECONCILE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Apply() bool {
	return d.Apply
}
func XOp() bool {
	return d.XOp
}
func Validate() bool {
	return d.Validate
}
func Reconcile() bool {
	return d.Reconcile
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}
