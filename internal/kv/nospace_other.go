//go:build !unix

package kv

func isNoSpace(err error) bool {
	return false
}
