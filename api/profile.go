package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dumpwatch/dumpwatch-api/store"
)

// profileDetail returns the profile and score of the requester
func (s *Server) profileDetail(c *gin.Context) {
	profile, err := s.mongoStore.GetProfile(c.GetString("requester"))
	if err != nil {
		if err == store.ErrProfileNotFound {
			abortWithEncoding(c, http.StatusNotFound, errorProfileNotFound)
			return
		}
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": profile,
	})
}
