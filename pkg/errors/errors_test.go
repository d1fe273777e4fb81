package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/haierkeys/note-keeper-service/pkg/app"
	"github.com/haierkeys/note-keeper-service/pkg/code"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set(app.TraceIDKey, "trace-1")
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestErrorResponse_Code(t *testing.T) {
	c, w := newContext()
	c.Set(app.LangKey, "zh_cn")

	ErrorResponse(c, pkgerrors.Wrap(code.ErrorNoteNotFound, "get note"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(431), body["code"])
	assert.Equal(t, "笔记不存在", body["message"])
	assert.Equal(t, "trace-1", body["traceId"])
	assert.NotEmpty(t, body["timestamp"])
	assert.True(t, c.IsAborted())
}

func TestErrorResponse_AppError(t *testing.T) {
	c, w := newContext()

	ErrorResponse(c, NewAppError(code.ErrorInvalidParams.WithDetails("title is required"), nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(501), body["code"])
	assert.Equal(t, []interface{}{"title is required"}, body["details"])
	assert.Equal(t, "trace-1", body["traceId"])
}

func TestErrorResponse_Unknown(t *testing.T) {
	c, w := newContext()

	ErrorResponse(c, stderrors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(500), body["code"])
	assert.Equal(t, "Internal Server Error", body["message"])
}

func TestAppErrorHelpers(t *testing.T) {
	cause := stderrors.New("cause")
	e := NewAppErrorWithMessage(999, http.StatusTeapot, "custom", cause).WithTraceID("t").WithDetails("d")

	assert.Equal(t, http.StatusTeapot, e.StatusCode())
	assert.Equal(t, "custom", e.Error())
	assert.ErrorIs(t, e, cause)
	assert.Equal(t, "t", e.TraceID)
	assert.Equal(t, []string{"d"}, e.Details)

	wrapped := pkgerrors.Wrap(e, "outer")
	assert.True(t, IsAppError(wrapped))
	assert.Same(t, e, GetAppError(wrapped))
	assert.Nil(t, GetAppError(cause))

	assert.Equal(t, http.StatusInternalServerError, (&AppError{}).StatusCode())
}
