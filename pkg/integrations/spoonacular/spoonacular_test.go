package spoonacular_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"plateful.dev/Plateful/configs"
	"plateful.dev/Plateful/pkg/integrations/spoonacular"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *spoonacular.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	conf := &configs.Config{Spoonacular: configs.Spoonacular{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Timeout: 2,
	}}

	return spoonacular.New(conf, zaptest.NewLogger(t))
}

func TestRandom(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipes/random", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))
		assert.Equal(t, "16", r.URL.Query().Get("number"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"recipes":[{"id":7,"title":"Garlic Soup","image":"https://img/7.jpg"}]}`))
	})

	recipes, err := client.Random(context.Background(), 16)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, int64(7), recipes[0].ID)
	assert.Equal(t, "Garlic Soup", recipes[0].Title)
	assert.Equal(t, "https://img/7.jpg", recipes[0].ImageURL)
}

func TestSearch_PassesQueryParameters(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipes/complexSearch", r.URL.Path)
		assert.Equal(t, "tomato,basil", r.URL.Query().Get("includeIngredients"))
		assert.Equal(t, "peanuts, tree, nuts", r.URL.Query().Get("excludeIngredients"))
		assert.Equal(t, "vegan", r.URL.Query().Get("diet"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"id":12,"title":"Caprese","image":""}]}`))
	})

	recipes, err := client.Search(context.Background(), spoonacular.SearchQuery{
		IncludeIngredients: "tomato,basil",
		ExcludeIngredients: "peanuts, tree, nuts",
		Diet:               "vegan",
		Number:             8,
	})
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, int64(12), recipes[0].ID)
}

func TestInformation_StripsMarkup(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipes/42/information", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":42,"title":"Pad Thai","sourceUrl":"https://example.com/pad-thai",
			"readyInMinutes":25,"summary":"A <b>quick</b> noodle dish","instructions":"<ol><li>Soak noodles</li></ol>",
			"extendedIngredients":[{"original":"200g rice noodles"},{"original":"2 eggs"}]}`))
	})

	information, err := client.Information(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "Pad Thai", information.Title)
	assert.Equal(t, 25, information.ReadyInMinutes)
	assert.Equal(t, "A quick noodle dish", information.Summary)
	assert.Equal(t, "Soak noodles", information.Instructions)
	assert.Equal(t, []string{"200g rice noodles", "2 eggs"}, information.Ingredients)
}

func TestInformationBulk_JoinsIDs(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipes/informationBulk", r.URL.Path)
		assert.Equal(t, "1,2,3", r.URL.Query().Get("ids"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"title":"One"},{"id":2,"title":"Two"},{"id":3,"title":"Three"}]`))
	})

	information, err := client.InformationBulk(context.Background(), []int64{1, 2, 3})
	require.NoError(t, err)
	require.Len(t, information, 3)
	assert.Equal(t, "Two", information[1].Title)
}

func TestInformationBulk_EmptyInput(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for empty id list")
	})

	information, err := client.InformationBulk(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, information)
}

func TestErrorStatusSurfacesAsUpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	})

	_, err := client.Random(context.Background(), 1)
	require.ErrorIs(t, err, spoonacular.ErrUpstream)
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "plain", spoonacular.StripTags("plain"))
	assert.Equal(t, "bold move", spoonacular.StripTags(`<a href="x">bold</a> <i>move</i>`))
}
