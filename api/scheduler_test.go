package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/labor-engine/factory"
	"github.com/warp/labor-engine/generic"
)

func TestReloadScheduler_PicksUpStoredDocuments(t *testing.T) {
	// GIVEN: a document saved to the shared store by another instance
	srv := newTestServer(t)
	require.NoError(t, srv.store.SaveRuleSet(context.Background(), generic.RuleSetRecord{
		Year:     2026,
		Format:   generic.FormatYAML,
		Document: document2026(t),
	}))
	assert.Equal(t, []int{2024, 2025}, srv.handler.Registry.Years())

	// WHEN: the scheduler reloads
	rs := NewReloadScheduler(srv.handler)
	require.NoError(t, rs.Reload(context.Background()))

	// THEN: the year is served and counted
	assert.Equal(t, []int{2024, 2025, 2026}, srv.handler.Registry.Years())
	rec := srv.do(t, http.MethodGet, "/metrics", "")
	assert.Contains(t, rec.Body.String(), "labor_rule_books_loaded 3")
}

func TestReloadScheduler_FollowsRemovalOnAnotherInstance(t *testing.T) {
	ctx := context.Background()

	// GIVEN: this instance publishes 2026 through the API
	srv := newTestServer(t)
	rec := srv.do(t, http.MethodPut, "/api/rulebooks/2026?format=yaml", document2026(t))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// WHEN: a second instance on the same store removes it
	other := factory.NewRegistry(factory.WithStore(srv.store))
	require.NoError(t, other.LoadEmbedded())
	require.NoError(t, other.LoadStore(ctx))
	require.NoError(t, other.Remove(ctx, 2026))

	// AND: this instance reloads
	require.NoError(t, NewReloadScheduler(srv.handler).Reload(ctx))

	// THEN: the year is no longer served
	assert.Equal(t, []int{2024, 2025}, srv.handler.Registry.Years())
	assert.Equal(t, http.StatusNotFound, srv.do(t, http.MethodGet, "/api/rulebooks/2026", "").Code)
	assert.Contains(t, srv.do(t, http.MethodGet, "/metrics", "").Body.String(), "labor_rule_books_loaded 2")
}

func TestReloadScheduler_BadDocumentKeepsBooks(t *testing.T) {
	srv := newTestServer(t)
	require.NoError(t, srv.store.SaveRuleSet(context.Background(), generic.RuleSetRecord{
		Year:     2030,
		Format:   generic.FormatJSON,
		Document: `{"year": `,
	}))

	err := NewReloadScheduler(srv.handler).Reload(context.Background())
	assert.Error(t, err)
	assert.Equal(t, []int{2024, 2025}, srv.handler.Registry.Years())
}

func TestReloadScheduler_StartStop(t *testing.T) {
	srv := newTestServer(t)
	rs := NewReloadScheduler(srv.handler)
	rs.CheckInterval = 10 * time.Millisecond

	rs.Start()
	rs.Start() // no second goroutine
	time.Sleep(30 * time.Millisecond)
	rs.Stop()
	rs.Stop()

	disabled := NewReloadScheduler(srv.handler)
	disabled.Enabled = false
	disabled.Start()
	disabled.Stop()
}
