package server

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Scan decodes barcodes from an uploaded image. The response echoes the
// first decoded code under "code" for single-scan clients and the full list
// under "codes".
func (s *Server) Scan(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		AbortWithError(c, newValidationError("file", "invalid_file", "file is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		AbortWithError(c, newValidationError("file", "invalid_file", "file could not be read"))
		return
	}

	codes, err := s.decoder.Decode(data)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var first interface{}
	if len(codes) > 0 {
		first = codes[0]
	}
	if codes == nil {
		codes = []string{}
	}

	c.JSON(http.StatusOK, gin.H{"code": first, "codes": codes})
}
