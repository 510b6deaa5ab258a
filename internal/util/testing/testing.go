package test_utils

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func MakeAPIRequest(
	router *gin.Engine,
	method, url, authToken string,
	body any,
) *httptest.ResponseRecorder {
	var requestBody *bytes.Buffer
	if body != nil {
		bodyJSON, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		requestBody = bytes.NewBuffer(bodyJSON)
	} else {
		requestBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, requestBody)
	if err != nil {
		panic(err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authToken != "" {
		req.Header.Set("Authorization", authToken)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func MakeGetRequest(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	expectedStatus int,
) *httptest.ResponseRecorder {
	w := MakeAPIRequest(router, "GET", url, authToken, nil)
	assert.Equal(t, expectedStatus, w.Code, "unexpected status for GET %s: %s", url, w.Body.String())
	return w
}

func MakeGetRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	expectedStatus int,
	out any,
) {
	w := MakeGetRequest(t, router, url, authToken, expectedStatus)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func MakePostRequest(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
) *httptest.ResponseRecorder {
	w := MakeAPIRequest(router, "POST", url, authToken, body)
	assert.Equal(t, expectedStatus, w.Code, "unexpected status for POST %s: %s", url, w.Body.String())
	return w
}

func MakePostRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
	out any,
) {
	w := MakePostRequest(t, router, url, authToken, body, expectedStatus)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func MakePutRequest(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
) *httptest.ResponseRecorder {
	w := MakeAPIRequest(router, "PUT", url, authToken, body)
	assert.Equal(t, expectedStatus, w.Code, "unexpected status for PUT %s: %s", url, w.Body.String())
	return w
}

func MakeDeleteRequest(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	expectedStatus int,
) *httptest.ResponseRecorder {
	w := MakeAPIRequest(router, "DELETE", url, authToken, nil)
	assert.Equal(
		t,
		expectedStatus,
		w.Code,
		"unexpected status for DELETE %s: %s",
		url,
		w.Body.String(),
	)
	return w
}
