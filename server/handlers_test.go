package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/gologme/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/skison/dijkstramap"
	"github.com/skison/dijkstramap/core"
	"github.com/skison/dijkstramap/postgres"
)

// ── Test scaffolding ──────────────────────────────────────────────────

func newTestApp(store dijkstramap.Store) *fiber.App {
	srv := &server{
		registry: newRegistry(),
		store:    store,
		log:      log.New(io.Discard, "", 0),
	}
	app := fiber.New()
	srv.routes(app)

	return app
}

func doReq(t *testing.T, app *fiber.App, method, target, body string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp
}

func decodeJSON(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()

	out := map[string]interface{}{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	return out
}

func mustCreateMap(t *testing.T, app *fiber.App, name string) {
	t.Helper()

	resp := doReq(t, app, "POST", "/maps", fmt.Sprintf(`{"name":%q}`, name))
	require.Equal(t, 201, resp.StatusCode)
}

// mustBuildLine adds points 0..n-1 to the named map and connects them in
// a row with unit bidirectional connections.
func mustBuildLine(t *testing.T, app *fiber.App, name string, n int) {
	t.Helper()

	for id := 0; id < n; id++ {
		resp := doReq(t, app, "POST", fmt.Sprintf("/maps/%s/points", name),
			fmt.Sprintf(`{"id":%d}`, id))
		require.Equal(t, 201, resp.StatusCode)
	}
	for id := 1; id < n; id++ {
		resp := doReq(t, app, "POST", fmt.Sprintf("/maps/%s/connections", name),
			fmt.Sprintf(`{"source":%d,"target":%d}`, id-1, id))
		require.Equal(t, 204, resp.StatusCode)
	}
}

// fakeStore keeps snapshots in memory, standing in for the PostgreSQL
// store in handler tests.
type fakeStore struct {
	mu     sync.Mutex
	graphs map[uuid.UUID]*core.Graph
	names  map[uuid.UUID]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		graphs: map[uuid.UUID]*core.Graph{},
		names:  map[uuid.UUID]string{},
	}
}

func (f *fakeStore) CreateSchema(ctx context.Context) error { return nil }

func (f *fakeStore) DropSchema(ctx context.Context) error { return nil }

func (f *fakeStore) SaveGraph(ctx context.Context, name string, g *core.Graph) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := uuid.New()
	f.graphs[id] = g.Clone()
	f.names[id] = name

	return id, nil
}

func (f *fakeStore) LoadGraph(ctx context.Context, id uuid.UUID) (*core.Graph, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	g, ok := f.graphs[id]
	if !ok {
		return nil, postgres.ErrSnapshotNotFound
	}

	return g.Clone(), nil
}

func (f *fakeStore) ListGraphs(ctx context.Context) ([]dijkstramap.GraphInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	infos := []dijkstramap.GraphInfo{}
	for id, g := range f.graphs {
		infos = append(infos, dijkstramap.GraphInfo{
			ID:          id,
			Name:        f.names[id],
			Points:      g.PointCount(),
			Connections: g.ConnectionCount(),
		})
	}

	return infos, nil
}

func (f *fakeStore) DeleteGraph(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.graphs[id]; !ok {
		return postgres.ErrSnapshotNotFound
	}
	delete(f.graphs, id)
	delete(f.names, id)

	return nil
}

// ── Maps ──────────────────────────────────────────────────────────────

func TestServer_MapLifecycle(t *testing.T) {
	app := newTestApp(nil)

	resp := doReq(t, app, "POST", "/maps", `{"name":"overworld"}`)
	require.Equal(t, 201, resp.StatusCode)
	require.Equal(t, "overworld", decodeJSON(t, resp)["name"])

	resp = doReq(t, app, "POST", "/maps", `{"name":"overworld"}`)
	require.Equal(t, 409, resp.StatusCode)

	resp = doReq(t, app, "POST", "/maps", `{}`)
	require.Equal(t, 422, resp.StatusCode)

	resp = doReq(t, app, "POST", "/maps", `{broken`)
	require.Equal(t, 400, resp.StatusCode)

	mustCreateMap(t, app, "caves")
	resp = doReq(t, app, "GET", "/maps", "")
	require.Equal(t, 200, resp.StatusCode)
	require.Equal(t, []interface{}{"caves", "overworld"}, decodeJSON(t, resp)["maps"])

	resp = doReq(t, app, "DELETE", "/maps/caves", "")
	require.Equal(t, 204, resp.StatusCode)

	resp = doReq(t, app, "DELETE", "/maps/caves", "")
	require.Equal(t, 404, resp.StatusCode)
}

func TestServer_CopyMap(t *testing.T) {
	app := newTestApp(nil)
	mustCreateMap(t, app, "template")
	mustBuildLine(t, app, "template", 2)

	resp := doReq(t, app, "POST", "/maps/template/recalculate", `{"origins":[0]}`)
	require.Equal(t, 200, resp.StatusCode)

	resp = doReq(t, app, "POST", "/maps/worker/copy", `{"from":"template"}`)
	require.Equal(t, 201, resp.StatusCode)

	// The copy carries the template's latest result.
	resp = doReq(t, app, "GET", "/maps/worker/costs?ids=1", "")
	require.Equal(t, []interface{}{float64(1)}, decodeJSON(t, resp)["costs"])

	// Diverging the copy leaves the original untouched.
	resp = doReq(t, app, "POST", "/maps/worker/recalculate", `{"origins":[1]}`)
	require.Equal(t, 200, resp.StatusCode)
	resp = doReq(t, app, "GET", "/maps/worker/costs?ids=1", "")
	require.Equal(t, []interface{}{float64(0)}, decodeJSON(t, resp)["costs"])
	resp = doReq(t, app, "GET", "/maps/template/costs?ids=1", "")
	require.Equal(t, []interface{}{float64(1)}, decodeJSON(t, resp)["costs"])

	resp = doReq(t, app, "POST", "/maps/template/copy", `{"from":"worker"}`)
	require.Equal(t, 409, resp.StatusCode)
	resp = doReq(t, app, "POST", "/maps/other/copy", `{"from":"missing"}`)
	require.Equal(t, 404, resp.StatusCode)
	resp = doReq(t, app, "POST", "/maps/other/copy", `{}`)
	require.Equal(t, 422, resp.StatusCode)
}

// ── Points and connections ────────────────────────────────────────────

func TestServer_PointRoutes(t *testing.T) {
	app := newTestApp(nil)
	mustCreateMap(t, app, "m")

	// Omitted id picks the lowest free one.
	resp := doReq(t, app, "POST", "/maps/m/points", `{}`)
	require.Equal(t, 201, resp.StatusCode)
	require.Equal(t, float64(0), decodeJSON(t, resp)["id"])

	resp = doReq(t, app, "POST", "/maps/m/points", `{"id":5,"terrain":2}`)
	require.Equal(t, 201, resp.StatusCode)
	require.Equal(t, float64(5), decodeJSON(t, resp)["id"])

	resp = doReq(t, app, "POST", "/maps/m/points", `{"id":5}`)
	require.Equal(t, 409, resp.StatusCode)
	resp = doReq(t, app, "POST", "/maps/m/points", `{"id":-2}`)
	require.Equal(t, 422, resp.StatusCode)
	resp = doReq(t, app, "POST", "/maps/missing/points", `{}`)
	require.Equal(t, 404, resp.StatusCode)

	resp = doReq(t, app, "PATCH", "/maps/m/points/5", `{"terrain":7,"disabled":true}`)
	require.Equal(t, 204, resp.StatusCode)

	resp = doReq(t, app, "PATCH", "/maps/m/points/99", `{}`)
	require.Equal(t, 404, resp.StatusCode)
	resp = doReq(t, app, "PATCH", "/maps/m/points/abc", `{}`)
	require.Equal(t, 400, resp.StatusCode)

	resp = doReq(t, app, "DELETE", "/maps/m/points/5", "")
	require.Equal(t, 204, resp.StatusCode)
	resp = doReq(t, app, "DELETE", "/maps/m/points/5", "")
	require.Equal(t, 404, resp.StatusCode)
}

func TestServer_ConnectionRoutes(t *testing.T) {
	app := newTestApp(nil)
	mustCreateMap(t, app, "m")
	for id := 0; id < 2; id++ {
		resp := doReq(t, app, "POST", "/maps/m/points", fmt.Sprintf(`{"id":%d}`, id))
		require.Equal(t, 201, resp.StatusCode)
	}

	resp := doReq(t, app, "POST", "/maps/m/connections", `{"source":0,"target":1}`)
	require.Equal(t, 204, resp.StatusCode)

	resp = doReq(t, app, "POST", "/maps/m/connections", `{"source":0,"target":9}`)
	require.Equal(t, 404, resp.StatusCode)
	resp = doReq(t, app, "POST", "/maps/m/connections", `{"source":0,"target":1,"weight":-1}`)
	require.Equal(t, 422, resp.StatusCode)

	resp = doReq(t, app, "DELETE", "/maps/m/connections", `{"source":0,"target":1}`)
	require.Equal(t, 204, resp.StatusCode)
	// Removing an absent connection between stored points is a no-op.
	resp = doReq(t, app, "DELETE", "/maps/m/connections", `{"source":0,"target":1}`)
	require.Equal(t, 204, resp.StatusCode)
	resp = doReq(t, app, "DELETE", "/maps/m/connections", `{"source":0,"target":9}`)
	require.Equal(t, 404, resp.StatusCode)
}

// ── Computation and queries ───────────────────────────────────────────

func TestServer_RecalculateAndQueries(t *testing.T) {
	app := newTestApp(nil)
	mustCreateMap(t, app, "m")
	for id := 0; id < 3; id++ {
		resp := doReq(t, app, "POST", "/maps/m/points", fmt.Sprintf(`{"id":%d}`, id))
		require.Equal(t, 201, resp.StatusCode)
	}
	resp := doReq(t, app, "POST", "/maps/m/connections", `{"source":0,"target":1}`)
	require.Equal(t, 204, resp.StatusCode)
	resp = doReq(t, app, "POST", "/maps/m/connections", `{"source":1,"target":2,"weight":2}`)
	require.Equal(t, 204, resp.StatusCode)

	resp = doReq(t, app, "POST", "/maps/m/recalculate", `{"origins":[0]}`)
	require.Equal(t, 200, resp.StatusCode)
	require.Equal(t, float64(3), decodeJSON(t, resp)["settled"])

	// Batch costs; unknown points come back as null.
	resp = doReq(t, app, "GET", "/maps/m/costs?ids=0,1,2,9", "")
	require.Equal(t, 200, resp.StatusCode)
	require.Equal(t,
		[]interface{}{float64(0), float64(1), float64(3), nil},
		decodeJSON(t, resp)["costs"])

	resp = doReq(t, app, "GET", "/maps/m/costs", "")
	require.Equal(t,
		map[string]interface{}{"0": float64(0), "1": float64(1), "2": float64(3)},
		decodeJSON(t, resp)["costs"])

	resp = doReq(t, app, "GET", "/maps/m/directions?ids=2,0,9", "")
	require.Equal(t,
		[]interface{}{float64(1), float64(-1), float64(-1)},
		decodeJSON(t, resp)["directions"])

	resp = doReq(t, app, "GET", "/maps/m/points/2/path", "")
	require.Equal(t, []interface{}{float64(1), float64(0)}, decodeJSON(t, resp)["path"])
	resp = doReq(t, app, "GET", "/maps/m/points/9/path", "")
	require.Equal(t, []interface{}{}, decodeJSON(t, resp)["path"])

	resp = doReq(t, app, "GET", "/maps/m/points?min_cost=1&max_cost=3", "")
	require.Equal(t, []interface{}{float64(1), float64(2)}, decodeJSON(t, resp)["points"])

	resp = doReq(t, app, "GET", "/maps/m/costs?ids=a,b", "")
	require.Equal(t, 400, resp.StatusCode)
	resp = doReq(t, app, "GET", "/maps/m/points?min_cost=x", "")
	require.Equal(t, 400, resp.StatusCode)

	resp = doReq(t, app, "POST", "/maps/m/recalculate", `{"origins":[]}`)
	require.Equal(t, 422, resp.StatusCode)
	resp = doReq(t, app, "POST", "/maps/m/recalculate", `{"origins":[9]}`)
	require.Equal(t, 404, resp.StatusCode)
}

func TestServer_RecalculateOptions(t *testing.T) {
	app := newTestApp(nil)
	mustCreateMap(t, app, "m")
	mustBuildLine(t, app, "m", 4)

	resp := doReq(t, app, "POST", "/maps/m/recalculate",
		`{"origins":[3],"options":{"maximum_cost":1,"mystery":true}}`)
	require.Equal(t, 200, resp.StatusCode)
	require.Equal(t, float64(2), decodeJSON(t, resp)["settled"])

	resp = doReq(t, app, "GET", "/maps/m/costs?ids=0", "")
	require.Equal(t, []interface{}{nil}, decodeJSON(t, resp)["costs"])

	// Terrain tags arrive as JSON object keys and coerce into ints.
	resp = doReq(t, app, "PATCH", "/maps/m/points/1", `{"terrain":5}`)
	require.Equal(t, 204, resp.StatusCode)
	resp = doReq(t, app, "POST", "/maps/m/recalculate",
		`{"origins":[0],"options":{"terrain_weights":{"5":3,"-1":1}}}`)
	require.Equal(t, 200, resp.StatusCode)
	resp = doReq(t, app, "GET", "/maps/m/costs?ids=0,1,2", "")
	require.Equal(t,
		[]interface{}{float64(0), float64(2), float64(4)},
		decodeJSON(t, resp)["costs"])

	resp = doReq(t, app, "POST", "/maps/m/recalculate",
		`{"origins":[0],"options":{"maximum_cost":-2}}`)
	require.Equal(t, 422, resp.StatusCode)
	resp = doReq(t, app, "POST", "/maps/m/recalculate",
		`{"origins":[0],"options":{"maximum_cost":"abc"}}`)
	require.Equal(t, 422, resp.StatusCode)
}

// ── Grids ─────────────────────────────────────────────────────────────

func TestServer_GridRoutes(t *testing.T) {
	app := newTestApp(nil)
	mustCreateMap(t, app, "m")

	resp := doReq(t, app, "POST", "/maps/m/grids/square",
		`{"x":0,"y":0,"width":2,"height":2}`)
	require.Equal(t, 201, resp.StatusCode)
	points := decodeJSON(t, resp)["points"].(map[string]interface{})
	require.Len(t, points, 4)
	require.Contains(t, points, "0,0")
	require.Contains(t, points, "1,1")

	resp = doReq(t, app, "POST", "/maps/m/recalculate", `{"origins":[0]}`)
	require.Equal(t, 200, resp.StatusCode)
	require.Equal(t, float64(4), decodeJSON(t, resp)["settled"])
	far := fmt.Sprintf("/maps/m/costs?ids=%d", int(points["1,1"].(float64)))
	resp = doReq(t, app, "GET", far, "")
	require.Equal(t, []interface{}{float64(2)}, decodeJSON(t, resp)["costs"])

	// A hexagonal patch lands on fresh ids alongside the square one.
	resp = doReq(t, app, "POST", "/maps/m/grids/hexagonal",
		`{"x":10,"y":0,"width":2,"height":2,"weight":2}`)
	require.Equal(t, 201, resp.StatusCode)
	hexPoints := decodeJSON(t, resp)["points"].(map[string]interface{})
	require.Len(t, hexPoints, 4)
	require.Contains(t, hexPoints, "10,0")

	resp = doReq(t, app, "POST", "/maps/m/grids/square",
		`{"x":0,"y":0,"width":0,"height":2}`)
	require.Equal(t, 422, resp.StatusCode)
	resp = doReq(t, app, "POST", "/maps/m/grids/square",
		`{"x":5,"y":5,"width":2,"height":2,"orthogonal_cost":-1}`)
	require.Equal(t, 422, resp.StatusCode)
}

// ── Snapshots ─────────────────────────────────────────────────────────

func TestServer_SnapshotsNotConfigured(t *testing.T) {
	app := newTestApp(nil)
	mustCreateMap(t, app, "m")

	resp := doReq(t, app, "POST", "/maps/m/snapshots", "")
	require.Equal(t, 503, resp.StatusCode)
	resp = doReq(t, app, "GET", "/snapshots", "")
	require.Equal(t, 503, resp.StatusCode)
	resp = doReq(t, app, "DELETE", "/snapshots/"+uuid.NewString(), "")
	require.Equal(t, 503, resp.StatusCode)
	resp = doReq(t, app, "POST", "/maps/m/snapshots/"+uuid.NewString()+"/restore", "")
	require.Equal(t, 503, resp.StatusCode)
}

func TestServer_Snapshots(t *testing.T) {
	app := newTestApp(newFakeStore())
	mustCreateMap(t, app, "m")
	mustBuildLine(t, app, "m", 2)
	resp := doReq(t, app, "POST", "/maps/m/recalculate", `{"origins":[0]}`)
	require.Equal(t, 200, resp.StatusCode)

	resp = doReq(t, app, "POST", "/maps/m/snapshots", "")
	require.Equal(t, 201, resp.StatusCode)
	id := decodeJSON(t, resp)["id"].(string)
	require.NotEmpty(t, id)

	resp = doReq(t, app, "GET", "/snapshots", "")
	require.Equal(t, 200, resp.StatusCode)
	snaps := decodeJSON(t, resp)["snapshots"].([]interface{})
	require.Len(t, snaps, 1)
	require.Equal(t, "m", snaps[0].(map[string]interface{})["name"])

	// Wreck the map, then restore the snapshot over it.
	resp = doReq(t, app, "DELETE", "/maps/m/points/1", "")
	require.Equal(t, 204, resp.StatusCode)
	resp = doReq(t, app, "POST", "/maps/m/snapshots/"+id+"/restore", "")
	require.Equal(t, 204, resp.StatusCode)

	// The graph is back; the result is not part of a snapshot.
	resp = doReq(t, app, "GET", "/maps/m/costs", "")
	require.Empty(t, decodeJSON(t, resp)["costs"])
	resp = doReq(t, app, "POST", "/maps/m/recalculate", `{"origins":[0]}`)
	require.Equal(t, 200, resp.StatusCode)
	require.Equal(t, float64(2), decodeJSON(t, resp)["settled"])

	// Restoring into a fresh name creates the map.
	resp = doReq(t, app, "POST", "/maps/rebuilt/snapshots/"+id+"/restore", "")
	require.Equal(t, 204, resp.StatusCode)
	resp = doReq(t, app, "GET", "/maps", "")
	require.Equal(t, []interface{}{"m", "rebuilt"}, decodeJSON(t, resp)["maps"])

	resp = doReq(t, app, "POST", "/maps/m/snapshots/not-a-uuid/restore", "")
	require.Equal(t, 400, resp.StatusCode)
	resp = doReq(t, app, "POST", "/maps/m/snapshots/"+uuid.NewString()+"/restore", "")
	require.Equal(t, 404, resp.StatusCode)

	resp = doReq(t, app, "DELETE", "/snapshots/"+id, "")
	require.Equal(t, 204, resp.StatusCode)
	resp = doReq(t, app, "DELETE", "/snapshots/"+id, "")
	require.Equal(t, 404, resp.StatusCode)
	resp = doReq(t, app, "DELETE", "/snapshots/not-a-uuid", "")
	require.Equal(t, 400, resp.StatusCode)
}
