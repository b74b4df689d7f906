package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// metricOpenReports returns how many reported sites are still waiting to be cleaned
func (s *Server) metricOpenReports(c *gin.Context) {
	count, err := s.mongoStore.CountReports()
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError,
			localizedError(c, errorLoadReports, "status.reports.load_error",
				map[string]interface{}{"Error": err.Error()}, nil), err)
		return
	}

	s.metrics.Gauge("reports.open").Update(float64(count))

	c.JSON(http.StatusOK, gin.H{
		"result": gin.H{
			"open_reports": count,
		},
	})
}
