package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// queryInt64 reads a positive integer filter; anything else means "no filter"
func queryInt64(c *gin.Context, key string) int64 {
	v, err := strconv.ParseInt(c.Query(key), 10, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func queryInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v < 0 {
		return 0
	}
	return v
}
