package terms_test

import (
	"context"
	"encoding/json"
	"envirocar-tools/ectools/terms"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMarshal(t *testing.T) {
	require := require.New(t)

	contents := "You agree to share your anonymized track data."
	data, err := json.Marshal(terms.TermsOfUse{
		ID:         "5cd2e3c1f4b7d3a3c8c9e1aa",
		IssuedDate: "2019-05-08",
		Contents:   &contents,
	})
	require.NoError(err)
	require.JSONEq(`{"id":"5cd2e3c1f4b7d3a3c8c9e1aa","issuedDate":"2019-05-08"}`, string(data))
}

func TestUnmarshal(t *testing.T) {
	require := require.New(t)

	tests := map[string]struct {
		input        string
		wantID       string
		wantContents *string
	}{
		"without_contents": {
			input:  `{"id":"a1","issuedDate":"2019-05-08"}`,
			wantID: "a1",
		},
		"with_contents": {
			input:        `{"id":"a1","issuedDate":"2019-05-08","contents":"Terms"}`,
			wantID:       "a1",
			wantContents: str("Terms"),
		},
		"extra_members": {
			input:  `{"id":"a1","issuedDate":"2019-05-08","href":"https://envirocar.org/api/stable/termsOfUse/a1"}`,
			wantID: "a1",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var tou terms.TermsOfUse
			require.NoError(json.Unmarshal([]byte(tc.input), &tou))
			require.Equal(tc.wantID, tou.ID)
			require.Equal("2019-05-08", tou.IssuedDate)
			require.Equal(tc.wantContents, tou.Contents)
		})
	}
}

func TestUnmarshalErrors(t *testing.T) {
	require := require.New(t)

	tests := map[string]struct {
		input       string
		wantMissing bool
	}{
		"missing_id":     {input: `{"issuedDate":"2019-05-08"}`, wantMissing: true},
		"missing_issued": {input: `{"id":"a1"}`, wantMissing: true},
		"null_id":        {input: `{"id":null,"issuedDate":"2019-05-08"}`, wantMissing: true},
		"numeric_id":     {input: `{"id":12,"issuedDate":"2019-05-08"}`},
		"array":          {input: `[]`},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var tou terms.TermsOfUse
			err := json.Unmarshal([]byte(tc.input), &tou)
			require.Error(err)
			require.Equal(tc.wantMissing, errors.Is(err, terms.ErrMissingField))
		})
	}
}

func TestListLatest(t *testing.T) {
	require := require.New(t)

	var l terms.List
	require.NoError(json.Unmarshal([]byte(`{"termsOfUse":[
		{"id":"a1","issuedDate":"2014-02-14"},
		{"id":"c3","issuedDate":"2019-05-08"},
		{"id":"b2","issuedDate":"2016-11-29"}
	]}`), &l))

	latest, ok := l.Latest()
	require.True(ok)
	require.Equal("c3", latest.ID)

	_, ok = terms.List{}.Latest()
	require.False(ok)
}

func TestClientLatest(t *testing.T) {
	require := require.New(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/termsOfUse", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"termsOfUse":[{"id":"a1","issuedDate":"2014-02-14"},{"id":"c3","issuedDate":"2019-05-08"}]}`))
	})
	mux.HandleFunc("/termsOfUse/c3", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"c3","issuedDate":"2019-05-08","contents":"Latest terms"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := terms.NewClient(srv.URL + "/")
	tou, err := c.Latest(context.Background())
	require.NoError(err)
	require.Equal("c3", tou.ID)
	require.NotNil(tou.Contents)
	require.Equal("Latest terms", *tou.Contents)
}

func TestClientErrors(t *testing.T) {
	require := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/termsOfUse" {
			w.Write([]byte(`{"termsOfUse":[]}`))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := terms.NewClient(srv.URL)

	_, err := c.Latest(context.Background())
	require.Error(err)

	_, err = c.Get(context.Background(), "unknown")
	require.Error(err)
	require.Contains(err.Error(), "404")
}

func TestNewClientDefault(t *testing.T) {
	require.Equal(t, terms.DefaultBaseURL, terms.NewClient("").BaseURL)
}

func str(s string) *string {
	return &s
}
