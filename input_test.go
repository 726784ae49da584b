package gogrid

import (
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_ReadInput(t *testing.T) {
	r := httptest.NewRequest("GET", "/items?page=3&per_page=50&sort=name+desc&ajax=1&foo=bar", nil)

	in := ReadInput(r, DefaultConfig())

	require.Equal(t, "/items", in.Path)
	require.Equal(t, "3", in.Page)
	require.Equal(t, "50", in.PerPage)
	require.Equal(t, "name desc", in.Sort)
	require.True(t, in.IsAjax())
	require.Equal(t, url.Values{
		"page":     {"3"},
		"per_page": {"50"},
		"sort":     {"name desc"},
		"foo":      {"bar"},
	}, in.LinkQuery())
}

func Test_ReadInput_Missing(t *testing.T) {
	in := ReadInput(httptest.NewRequest("GET", "/items", nil), DefaultConfig())

	require.Empty(t, in.Page)
	require.Empty(t, in.PerPage)
	require.Empty(t, in.Sort)
	require.False(t, in.IsAjax())
	require.Empty(t, in.LinkQuery())
}

func Test_ReadInput_CustomParams(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PageParam = "p"
	cfg.AjaxParam = "json"

	in := ReadInput(httptest.NewRequest("GET", "/items?p=2&page=9&json=true", nil), cfg)

	require.Equal(t, "2", in.Page)
	require.True(t, in.IsAjax())
	require.Equal(t, url.Values{"p": {"2"}, "page": {"9"}}, in.LinkQuery())
}

func Test_Input_IsAjax(t *testing.T) {
	tests := []struct {
		ajax string
		want bool
	}{
		{"", false},
		{"0", false},
		{"false", false},
		{"FALSE", false},
		{"1", true},
		{"true", true},
		{"yes", true},
	}

	for _, tt := range tests {
		t.Run(tt.ajax, func(t *testing.T) {
			require.Equal(t, tt.want, Input{Ajax: tt.ajax}.IsAjax())
		})
	}
}

func Test_NewInput_CopiesQuery(t *testing.T) {
	query := url.Values{"page": {"2"}}
	in := NewInput("/items", query, DefaultConfig())
	query.Set("page", "5")

	require.Equal(t, "2", in.Query.Get("page"))
}
