package utils

import "github.com/gin-gonic/gin"

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

// JSONError writes the failure envelope. data may be nil.
func JSONError(c *gin.Context, code int, errCode, message string, data map[string]interface{}) {
	body := gin.H{"code": errCode, "message": message}
	if len(data) > 0 {
		body["data"] = data
	}
	c.JSON(code, gin.H{"success": false, "error": body})
}
