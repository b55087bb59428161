//go:build !debug

package pool

import "github.com/amarbel-llc/xpatch/src/_/interfaces"

func wrapRepoolDebug(repool interfaces.FuncRepool) interfaces.FuncRepool {
	return repool
}
