//go:build indirection_debug

package indirection

const debugging = true

func assert(cond bool, message string) {
	if !cond {
		panic(message)
	}
}
