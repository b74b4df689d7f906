package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dumpwatch/dumpwatch-api/geo"
	"github.com/dumpwatch/dumpwatch-api/schema"
)

// recordConsent saves whether the requester allows us to resolve their location
func (s *Server) recordConsent(c *gin.Context) {
	var params struct {
		Consented *bool `json:"consented"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	if params.Consented == nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	record := schema.ConsentRecord{
		ParticipantID: c.GetString("requester"),
		Consented:     *params.Consented,
		Timestamp:     time.Now().UTC(),
	}

	if err := s.mongoStore.RecordConsent(record); shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": record})
}

// currentLocation resolves a one-shot location of the requester's device
func (s *Server) currentLocation(c *gin.Context) {
	logger := log.WithField("api", "currentLocation")

	var params struct {
		Priority         string                `json:"priority"`
		ConsiderIP       bool                  `json:"consider_ip"`
		WiFiAccessPoints []geo.WiFiAccessPoint `json:"wifi_access_points"`
		CellTowers       []geo.CellTower       `json:"cell_towers"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	priority, err := geo.ParsePriority(params.Priority)
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	consented, err := s.mongoStore.HasConsented(c.GetString("requester"))
	if shouldInterupt(err, c) {
		return
	}

	if !consented {
		s.metrics.Counter("location.denied").Inc(1)
		abortWithEncoding(c, http.StatusForbidden,
			localizedError(c, errorLocationPermissionDenied, "status.location.permission_denied", nil, nil))
		return
	}

	fix, err := s.locator.CurrentLocation(geo.LocateRequest{
		Priority:         priority,
		ConsiderIP:       params.ConsiderIP,
		WiFiAccessPoints: params.WiFiAccessPoints,
		CellTowers:       params.CellTowers,
	})
	if err != nil {
		if err == geo.ErrNoLocationFix {
			abortWithEncoding(c, http.StatusUnprocessableEntity,
				localizedError(c, errorNoLocationFix, "status.location.no_fix", nil, nil))
			return
		}

		logger.WithError(err).Error("geolocate")
		abortWithEncoding(c, http.StatusBadGateway,
			localizedError(c, errorLocationProvider, "status.location.error",
				map[string]interface{}{"Error": err.Error()}, nil), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": fix})
}
