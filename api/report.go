package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dumpwatch/dumpwatch-api/consts"
	"github.com/dumpwatch/dumpwatch-api/schema"
	"github.com/dumpwatch/dumpwatch-api/store"
)

// reportLocation is the location of a submission. A coordinate left out is
// nil and the location counts as missing.
type reportLocation struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// submitReport saves a new dump site reported by the requester
func (s *Server) submitReport(c *gin.Context) {
	logger := log.WithField("api", "submitReport")

	var params struct {
		Description   string          `json:"description"`
		Accessibility string          `json:"accessibility"`
		Location      *reportLocation `json:"location"`
		PhotoURL      string          `json:"photo_url"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	description := strings.TrimSpace(params.Description)
	if description == "" {
		abortWithEncoding(c, http.StatusBadRequest,
			localizedError(c, errorDescriptionRequired, "status.report.description_required", nil, nil))
		return
	}

	if params.Location == nil || params.Location.Latitude == nil || params.Location.Longitude == nil {
		abortWithEncoding(c, http.StatusBadRequest,
			localizedError(c, errorLocationMissing, "status.report.location_missing", nil, nil))
		return
	}

	loc := schema.Location{
		Latitude:  *params.Location.Latitude,
		Longitude: *params.Location.Longitude,
	}
	if err := loc.Validate(); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	accessibility, err := schema.ParseAccessibilityLevel(params.Accessibility)
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	if resolved, err := s.resolver.GetPoliticalInfo(loc); err != nil {
		logger.WithError(err).WithField("location", loc).Warn("resolve address")
	} else {
		loc = resolved
	}

	report, err := s.mongoStore.AddReport(schema.Report{
		Description:   description,
		Accessibility: accessibility,
		Location:      schema.NewGeoJSONPoint(loc),
		Address:       loc.Address,
		Country:       loc.Country,
		State:         loc.State,
		County:        loc.County,
		PhotoURL:      strings.TrimSpace(params.PhotoURL),
		ReportedBy:    c.GetString("requester"),
		Timestamp:     time.Now().UnixNano() / int64(time.Millisecond),
	})
	if err != nil {
		logger.WithError(err).Error("add report")
		abortWithEncoding(c, http.StatusInternalServerError,
			localizedError(c, errorSaveReport, "status.report.error",
				map[string]interface{}{"Error": err.Error()}, nil), err)
		return
	}

	s.metrics.Counter("reports.submitted").Inc(1)

	c.JSON(http.StatusOK, gin.H{
		"result":  report,
		"message": localize(c, "status.report.success", nil),
	})
}

// listReports returns every reported site with a location, newest first.
// With `lat` and `lng` the list is limited to `dist` meters around that point.
func (s *Server) listReports(c *gin.Context) {
	var params struct {
		Lat  string `form:"lat"`
		Lng  string `form:"lng"`
		Dist string `form:"dist"`
	}

	if err := c.BindQuery(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	var (
		reports []schema.Report
		err     error
	)

	if params.Lat == "" && params.Lng == "" {
		reports, err = s.mongoStore.ListReports()
	} else {
		loc, dist, ok := parseViewport(params.Lat, params.Lng, params.Dist)
		if !ok {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
			return
		}
		reports, err = s.mongoStore.NearbyReports(dist, loc)
	}

	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError,
			localizedError(c, errorLoadReports, "status.reports.load_error",
				map[string]interface{}{"Error": err.Error()}, nil), err)
		return
	}

	if reports == nil {
		reports = []schema.Report{}
	}

	c.JSON(http.StatusOK, gin.H{
		"result": reports,
	})
}

func parseViewport(lat, lng, dist string) (schema.Location, int, bool) {
	latitude, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return schema.Location{}, 0, false
	}

	longitude, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return schema.Location{}, 0, false
	}

	loc := schema.Location{Latitude: latitude, Longitude: longitude}
	if loc.Validate() != nil {
		return schema.Location{}, 0, false
	}

	distance := consts.DefaultNearbyDistance
	if dist != "" {
		distance, err = strconv.Atoi(dist)
		if err != nil || distance <= 0 {
			return schema.Location{}, 0, false
		}
		if distance > consts.MaxNearbyDistance {
			distance = consts.MaxNearbyDistance
		}
	}

	return loc, distance, true
}

// getReport returns a single reported site
func (s *Server) getReport(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("reportID"))
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidReportID, err)
		return
	}

	report, err := s.mongoStore.GetReport(id)
	if err != nil {
		if err == store.ErrReportNotFound {
			abortWithEncoding(c, http.StatusNotFound, errorReportNotFound)
			return
		}
		abortWithEncoding(c, http.StatusInternalServerError,
			localizedError(c, errorLoadReports, "status.reports.load_error",
				map[string]interface{}{"Error": err.Error()}, nil), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": report,
	})
}

// cleanReport removes a cleaned site and credits the requester. The delete
// and the score increment are two separate writes.
func (s *Server) cleanReport(c *gin.Context) {
	logger := log.WithField("api", "cleanReport")
	requester := c.GetString("requester")

	id, err := primitive.ObjectIDFromHex(c.Param("reportID"))
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest,
			localizedError(c, errorInvalidReportID, "status.clean.invalid_id", nil, nil), err)
		return
	}

	if err := s.mongoStore.DeleteReport(id); err != nil {
		if err == store.ErrReportNotFound {
			abortWithEncoding(c, http.StatusNotFound, errorReportNotFound)
			return
		}
		logger.WithError(err).WithField("report", id.Hex()).Error("delete report")
		abortWithEncoding(c, http.StatusInternalServerError,
			localizedError(c, errorCleanReport, "status.clean.error",
				map[string]interface{}{"Error": err.Error()}, nil), err)
		return
	}

	score, err := s.mongoStore.IncrementScore(requester, consts.PointsPerCleanedSite)
	if err != nil {
		logger.WithError(err).WithField("uid", requester).WithField("report", id.Hex()).
			Error("report deleted but score is not credited")
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		abortWithEncoding(c, http.StatusInternalServerError,
			localizedError(c, errorUpdateScore, "status.clean.error",
				map[string]interface{}{"Error": err.Error()}, nil), err)
		return
	}

	s.metrics.Counter("reports.cleaned").Inc(1)

	c.JSON(http.StatusOK, gin.H{
		"result": gin.H{
			"score": score,
		},
		"message": localize(c, "status.clean.success", map[string]interface{}{
			"Points": consts.PointsPerCleanedSite,
		}),
	})
}
