package binder

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Title  string `json:"title" mod:"trim" validate:"max=20"`
	Status string `json:"status,omitempty" validate:"omitempty,oneof=Active Inactive"`
}

type query struct {
	Limit  int `query:"limit" json:"limit" default:"24" validate:"min=1,max=100"`
	Offset int `query:"offset" json:"offset" validate:"min=0"`
}

func TestBind(t *testing.T) {
	t.Parallel()
	b, err := New()
	require.NoError(t, err)
	require.NotNil(t, b)

	t.Run("rejects unsupported content types", func(t *testing.T) {
		c := newContext(`{"title":"x"}`, echo.MIMEApplicationXML)
		p := payload{}
		err := b.Bind(&p, c)
		assert.Contains(t, err.Error(), "Unsupported Media Type")
	})

	t.Run("disallows unknown fields", func(t *testing.T) {
		c := newContext(`{"title":"x","bogus":"y"}`, echo.MIMEApplicationJSON)
		p := payload{}
		err := b.Bind(&p, c)
		assert.Contains(t, err.Error(), `Unknown Parameter "bogus"`)
	})

	t.Run("reports type errors by field", func(t *testing.T) {
		c := newContext(`{"title":123}`, echo.MIMEApplicationJSON)
		p := payload{}
		err := b.Bind(&p, c)
		assert.Contains(t, err.Error(), `"title" should be of type string`)
	})

	t.Run("applies mod tags", func(t *testing.T) {
		c := newContext(`{"title":"  The Snowy Day  "}`, echo.MIMEApplicationJSON)
		p := payload{}
		require.NoError(t, b.Bind(&p, c))
		assert.Equal(t, "The Snowy Day", p.Title)
	})

	t.Run("validates fields", func(t *testing.T) {
		c := newContext(`{"title":"A title that is much too long"}`, echo.MIMEApplicationJSON)
		p := payload{}
		err := b.Bind(&p, c)
		assert.Contains(t, err.Error(), "length must be less than or equal to 20 characters")
	})

	t.Run("validates oneof", func(t *testing.T) {
		c := newContext(`{"title":"x","status":"Archived"}`, echo.MIMEApplicationJSON)
		p := payload{}
		err := b.Bind(&p, c)
		assert.Contains(t, err.Error(), `"status" must be one of the following`)
	})

	t.Run("binds query params with defaults", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(echo.GET, "/?offset=5", nil)
		c := e.NewContext(req, httptest.NewRecorder())

		q := query{}
		require.NoError(t, b.Bind(&q, c))
		assert.Equal(t, 24, q.Limit)
		assert.Equal(t, 5, q.Offset)
	})

	t.Run("rejects unknown query params", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(echo.GET, "/?bogus=1", nil)
		c := e.NewContext(req, httptest.NewRecorder())

		q := query{}
		err := b.Bind(&q, c)
		assert.Contains(t, err.Error(), `Unknown Parameter "bogus"`)
	})
}

func newContext(body, mime string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(echo.POST, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, mime)
	rr := httptest.NewRecorder()
	return e.NewContext(req, rr)
}
