package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndPop(t *testing.T) {
	rec := httptest.NewRecorder()
	Set(rec, "Evento creado exitosamente.", "ñandú 🟢")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)

	req := httptest.NewRequest(http.MethodGet, "/eventos/", nil)
	req.AddCookie(cookies[0])
	next := httptest.NewRecorder()

	msgs := Pop(next, req)
	assert.Equal(t, []string{"Evento creado exitosamente.", "ñandú 🟢"}, msgs)

	cleared := next.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)
}

func TestSet_NoMessages(t *testing.T) {
	rec := httptest.NewRecorder()
	Set(rec)
	assert.Empty(t, rec.Result().Cookies())
}

func TestPop(t *testing.T) {
	tests := []struct {
		name   string
		cookie *http.Cookie
	}{
		{name: "no cookie"},
		{name: "bad base64", cookie: &http.Cookie{Name: CookieName, Value: "%%%"}},
		{name: "bad json", cookie: &http.Cookie{Name: CookieName, Value: "bm90LWpzb24"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			assert.Nil(t, Pop(httptest.NewRecorder(), req))
		})
	}
}
