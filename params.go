package main

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// paramUint parses a numeric path parameter. Returns 0 when absent or
// malformed; callers treat 0 as not-found since ids start at 1.
func paramUint(c *gin.Context, name string) uint {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}
