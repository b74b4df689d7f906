package api

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/uber-go/tally"

	"github.com/dumpwatch/dumpwatch-api/api/mocks"
	geomocks "github.com/dumpwatch/dumpwatch-api/geo/mocks"
)

var (
	testKey     *rsa.PrivateKey
	testKeyOnce sync.Once
)

func testPrivateKey(t *testing.T) *rsa.PrivateKey {
	testKeyOnce.Do(func() {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			t.Fatal(err)
		}
		testKey = key
	})
	return testKey
}

type testServer struct {
	*Server
	identity *mocks.MockIdentityCore
	mongo    *mocks.MockMongoStore
	locator  *geomocks.MockLocator
	resolver *geomocks.MockLocationResolver
}

func newTestServer(t *testing.T, ctl *gomock.Controller) testServer {
	gin.SetMode(gin.TestMode)

	ts := testServer{
		identity: mocks.NewMockIdentityCore(ctl),
		mongo:    mocks.NewMockMongoStore(ctl),
		locator:  geomocks.NewMockLocator(ctl),
		resolver: geomocks.NewMockLocationResolver(ctl),
	}

	ts.Server = &Server{
		store:         ts.identity,
		mongoStore:    ts.mongo,
		jwtPrivateKey: testPrivateKey(t),
		jwtExpire:     time.Hour,
		locator:       ts.locator,
		resolver:      ts.resolver,
		metrics:       tally.NoopScope,
	}

	return ts
}

// withRequester stands in for the auth middleware
func withRequester(id string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("requester", id)
		c.Next()
	}
}

func performJSON(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error response %q: %s", w.Body.String(), err)
	}
	return resp
}

func jsonBody(t *testing.T, body interface{}) *bytes.Buffer {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		t.Fatal(err)
	}
	return &buf
}
