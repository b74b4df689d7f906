package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dumpwatch/dumpwatch-api/consts"
	"github.com/dumpwatch/dumpwatch-api/schema"
	"github.com/dumpwatch/dumpwatch-api/store"
)

const testRequester = "4d1e8a52-6c52-4a8f-9d42-93d0f0d0b0a1"

func reportRouter(s testServer) *gin.Engine {
	router := gin.New()
	router.Use(withRequester(testRequester))
	router.GET("/reports", s.listReports)
	router.POST("/reports", s.submitReport)
	router.GET("/reports/:reportID", s.getReport)
	router.POST("/reports/:reportID/clean", s.cleanReport)
	return router
}

func TestSubmitReport(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	s := newTestServer(t, ctl)

	loc := schema.Location{Latitude: 48.1486, Longitude: 17.1077}
	resolved := loc
	resolved.Address = "Hlavné námestie, Bratislava"
	resolved.Country = "Slovakia"
	resolved.State = "Bratislava Region"
	resolved.County = "Bratislava"

	s.resolver.EXPECT().GetPoliticalInfo(loc).Return(resolved, nil).Times(1)
	s.mongo.EXPECT().AddReport(gomock.Any()).DoAndReturn(func(r schema.Report) (*schema.Report, error) {
		assert.Equal(t, "Old tyres by the river", r.Description)
		assert.Equal(t, schema.AccessibilityHard, r.Accessibility)
		assert.Equal(t, []float64{17.1077, 48.1486}, r.Location.Coordinates)
		assert.Equal(t, resolved.Address, r.Address)
		assert.Equal(t, "Slovakia", r.Country)
		assert.Equal(t, "Bratislava Region", r.State)
		assert.Equal(t, "Bratislava", r.County)
		assert.Equal(t, testRequester, r.ReportedBy)
		assert.NotZero(t, r.Timestamp)
		r.ID = primitive.NewObjectID()
		return &r, nil
	}).Times(1)

	w := performJSON(reportRouter(s), "POST", "/reports", map[string]interface{}{
		"description":   "  Old tyres by the river ",
		"accessibility": "hard",
		"location":      map[string]float64{"latitude": 48.1486, "longitude": 17.1077},
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Result  schema.Report `json:"result"`
		Message string        `json:"message"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Dump site has been reported!", resp.Message)
	assert.False(t, resp.Result.ID.IsZero())
	assert.Equal(t, "Old tyres by the river", resp.Result.Description)
}

func TestSubmitReportDefaultsAndGeocodingFailure(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	s := newTestServer(t, ctl)

	s.resolver.EXPECT().GetPoliticalInfo(gomock.Any()).
		Return(schema.Location{}, fmt.Errorf("quota exceeded")).Times(1)
	s.mongo.EXPECT().AddReport(gomock.Any()).DoAndReturn(func(r schema.Report) (*schema.Report, error) {
		assert.Equal(t, schema.AccessibilityEasy, r.Accessibility)
		assert.Equal(t, []float64{2, 1}, r.Location.Coordinates)
		assert.Empty(t, r.Address)
		return &r, nil
	}).Times(1)

	w := performJSON(reportRouter(s), "POST", "/reports", map[string]interface{}{
		"description": "Fridge",
		"location":    map[string]float64{"latitude": 1, "longitude": 2},
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSubmitReportRejected(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	s := newTestServer(t, ctl)

	s.mongo.EXPECT().AddReport(gomock.Any()).Times(0)
	router := reportRouter(s)

	w := performJSON(router, "POST", "/reports", map[string]interface{}{
		"description": "   ",
		"location":    map[string]float64{"latitude": 1, "longitude": 2},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, errorDescriptionRequired.Code, resp.Code)
	assert.Equal(t, "The description of the landfill is mandatory.", resp.Message)

	w = performJSON(router, "POST", "/reports", map[string]interface{}{
		"description": "Fridge",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp = decodeError(t, w)
	assert.Equal(t, errorLocationMissing.Code, resp.Code)
	assert.Equal(t, "Location is not available. Please obtain the current location before submitting.", resp.Message)

	for _, loc := range []map[string]interface{}{
		{},
		{"latitude": nil, "longitude": 2},
		{"latitude": 1},
		{"longitude": 2},
	} {
		w = performJSON(router, "POST", "/reports", map[string]interface{}{
			"description": "Fridge",
			"location":    loc,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code, "%v", loc)
		assert.Equal(t, errorLocationMissing.Code, decodeError(t, w).Code, "%v", loc)
	}

	w = performJSON(router, "POST", "/reports", map[string]interface{}{
		"description": "Fridge",
		"location":    map[string]float64{"latitude": 91, "longitude": 2},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, errorInvalidParameters.Code, decodeError(t, w).Code)

	w = performJSON(router, "POST", "/reports", map[string]interface{}{
		"description":   "Fridge",
		"accessibility": "IMPOSSIBLE",
		"location":      map[string]float64{"latitude": 1, "longitude": 2},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, errorInvalidParameters.Code, decodeError(t, w).Code)
}

func TestSubmitReportStoreFailure(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	s := newTestServer(t, ctl)

	s.resolver.EXPECT().GetPoliticalInfo(gomock.Any()).Return(schema.Location{Address: "x"}, nil)
	s.mongo.EXPECT().AddReport(gomock.Any()).Return(nil, fmt.Errorf("server selection timeout"))

	w := performJSON(reportRouter(s), "POST", "/reports", map[string]interface{}{
		"description": "Fridge",
		"location":    map[string]float64{"latitude": 1, "longitude": 2},
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	resp := decodeError(t, w)
	assert.Equal(t, errorSaveReport.Code, resp.Code)
	assert.Equal(t, "Error : server selection timeout", resp.Message)
}

func TestListReports(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	s := newTestServer(t, ctl)

	reports := []schema.Report{
		{ID: primitive.NewObjectID(), Description: "newer", Timestamp: 2},
		{ID: primitive.NewObjectID(), Description: "older", Timestamp: 1},
	}
	s.mongo.EXPECT().ListReports().Return(reports, nil).Times(1)
	s.mongo.EXPECT().ListReports().Return(nil, nil).Times(1)

	router := reportRouter(s)

	w := performJSON(router, "GET", "/reports", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Result []schema.Report `json:"result"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Result, 2)
	assert.Equal(t, "newer", resp.Result[0].Description)

	w = performJSON(router, "GET", "/reports", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"result":[]}`, w.Body.String())
}

func TestListNearbyReports(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	s := newTestServer(t, ctl)

	loc := schema.Location{Latitude: 48.1, Longitude: 17.1}
	s.mongo.EXPECT().NearbyReports(2000, loc).Return([]schema.Report{}, nil).Times(1)
	s.mongo.EXPECT().NearbyReports(consts.DefaultNearbyDistance, loc).Return([]schema.Report{}, nil).Times(1)
	s.mongo.EXPECT().NearbyReports(consts.MaxNearbyDistance, loc).Return([]schema.Report{}, nil).Times(1)

	router := reportRouter(s)
	assert.Equal(t, http.StatusOK, performJSON(router, "GET", "/reports?lat=48.1&lng=17.1&dist=2000", nil).Code)
	assert.Equal(t, http.StatusOK, performJSON(router, "GET", "/reports?lat=48.1&lng=17.1", nil).Code)
	assert.Equal(t, http.StatusOK, performJSON(router, "GET", "/reports?lat=48.1&lng=17.1&dist=9999999", nil).Code)

	for _, q := range []string{"lat=48.1", "lat=abc&lng=17.1", "lat=48.1&lng=181", "lat=48.1&lng=17.1&dist=-5"} {
		w := performJSON(router, "GET", "/reports?"+q, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestListReportsFailure(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	s := newTestServer(t, ctl)

	s.mongo.EXPECT().ListReports().Return(nil, fmt.Errorf("cursor closed"))

	w := performJSON(reportRouter(s), "GET", "/reports", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	resp := decodeError(t, w)
	assert.Equal(t, errorLoadReports.Code, resp.Code)
	assert.Equal(t, "Error loading data: cursor closed", resp.Message)
}

func TestGetReport(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	s := newTestServer(t, ctl)

	id := primitive.NewObjectID()
	missing := primitive.NewObjectID()
	s.mongo.EXPECT().GetReport(id).Return(&schema.Report{ID: id, Description: "Fridge"}, nil)
	s.mongo.EXPECT().GetReport(missing).Return(nil, store.ErrReportNotFound)

	router := reportRouter(s)

	w := performJSON(router, "GET", "/reports/"+id.Hex(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Fridge")

	w = performJSON(router, "GET", "/reports/"+missing.Hex(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, errorReportNotFound.Code, decodeError(t, w).Code)

	w = performJSON(router, "GET", "/reports/nope", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, errorInvalidReportID.Code, decodeError(t, w).Code)
}

func TestCleanReport(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	s := newTestServer(t, ctl)

	id := primitive.NewObjectID()
	gomock.InOrder(
		s.mongo.EXPECT().DeleteReport(id).Return(nil).Times(1),
		s.mongo.EXPECT().IncrementScore(testRequester, int64(consts.PointsPerCleanedSite)).Return(int64(30), nil).Times(1),
	)

	w := performJSON(reportRouter(s), "POST", "/reports/"+id.Hex()+"/clean", nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Result struct {
			Score int64 `json:"score"`
		} `json:"result"`
		Message string `json:"message"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(30), resp.Result.Score)
	assert.Equal(t, "The dump site has been cleaned. You earned 10 points!", resp.Message)
}

func TestCleanReportNotCredited(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	s := newTestServer(t, ctl)

	router := reportRouter(s)
	s.mongo.EXPECT().IncrementScore(gomock.Any(), gomock.Any()).Times(0)

	w := performJSON(router, "POST", "/reports/not-an-id/clean", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, errorInvalidReportID.Code, resp.Code)
	assert.Equal(t, "The dump site to delete has no valid ID.", resp.Message)

	missing := primitive.NewObjectID()
	s.mongo.EXPECT().DeleteReport(missing).Return(store.ErrReportNotFound).Times(1)
	w = performJSON(router, "POST", "/reports/"+missing.Hex()+"/clean", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	broken := primitive.NewObjectID()
	s.mongo.EXPECT().DeleteReport(broken).Return(fmt.Errorf("write concern")).Times(1)
	w = performJSON(router, "POST", "/reports/"+broken.Hex()+"/clean", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, errorCleanReport.Code, decodeError(t, w).Code)
}

func TestCleanReportScoreFailure(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	s := newTestServer(t, ctl)

	id := primitive.NewObjectID()
	s.mongo.EXPECT().DeleteReport(id).Return(nil).Times(1)
	s.mongo.EXPECT().IncrementScore(testRequester, gomock.Any()).
		Return(int64(0), store.ErrProfileNotFound).Times(1)

	w := performJSON(reportRouter(s), "POST", "/reports/"+id.Hex()+"/clean", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, errorUpdateScore.Code, decodeError(t, w).Code)
}
