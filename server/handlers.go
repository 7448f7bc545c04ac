package main

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gologme/log"
	"github.com/google/uuid"

	"github.com/skison/dijkstramap"
	"github.com/skison/dijkstramap/core"
	"github.com/skison/dijkstramap/dijkstra"
	"github.com/skison/dijkstramap/grid"
	"github.com/skison/dijkstramap/postgres"
)

// server bundles the shared state behind the HTTP handlers: the hosted
// maps, the optional snapshot store and the logger.
type server struct {
	registry *registry
	store    dijkstramap.Store
	log      *log.Logger
}

// routes registers every endpoint on app.
func (s *server) routes(app *fiber.App) {
	// ── Maps ──────────────────────────────────────────────────────────
	app.Post("/maps", s.createMap)
	app.Get("/maps", s.listMaps)
	app.Delete("/maps/:name", s.deleteMap)
	app.Post("/maps/:name/copy", s.copyMap)

	// ── Points ────────────────────────────────────────────────────────
	app.Post("/maps/:name/points", s.addPoint)
	app.Get("/maps/:name/points", s.pointsInRange)
	app.Patch("/maps/:name/points/:id", s.updatePoint)
	app.Delete("/maps/:name/points/:id", s.removePoint)
	app.Get("/maps/:name/points/:id/path", s.pathFrom)

	// ── Connections ───────────────────────────────────────────────────
	app.Post("/maps/:name/connections", s.connect)
	app.Delete("/maps/:name/connections", s.disconnect)

	// ── Grids ─────────────────────────────────────────────────────────
	app.Post("/maps/:name/grids/square", s.addSquareGrid)
	app.Post("/maps/:name/grids/hexagonal", s.addHexagonalGrid)

	// ── Computation ───────────────────────────────────────────────────
	app.Post("/maps/:name/recalculate", s.recalculate)
	app.Get("/maps/:name/costs", s.costs)
	app.Get("/maps/:name/directions", s.directions)

	// ── Snapshots ─────────────────────────────────────────────────────
	app.Post("/maps/:name/snapshots", s.saveSnapshot)
	app.Post("/maps/:name/snapshots/:id/restore", s.restoreSnapshot)
	app.Get("/snapshots", s.listSnapshots)
	app.Delete("/snapshots/:id", s.deleteSnapshot)
}

// fail maps domain errors onto HTTP statuses: unknown names and points are
// 404, duplicates 409, values that fail validation 422, the rest 500.
func (s *server) fail(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errMapNotFound),
		errors.Is(err, core.ErrPointNotFound),
		errors.Is(err, dijkstra.ErrPointNotFound),
		errors.Is(err, postgres.ErrSnapshotNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, errMapExists),
		errors.Is(err, core.ErrDuplicatePoint):
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, core.ErrNegativeID),
		errors.Is(err, core.ErrBadWeight),
		errors.Is(err, dijkstra.ErrNoOrigins),
		errors.Is(err, dijkstra.ErrBadMaximumCost),
		errors.Is(err, dijkstra.ErrBadInitialCost),
		errors.Is(err, dijkstra.ErrBadTerrainWeight),
		errors.Is(err, grid.ErrEmptyBounds),
		errors.Is(err, grid.ErrBadCost):
		return c.Status(422).JSON(fiber.Map{"error": err.Error()})
	default:
		s.log.Errorf("internal error: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
}

// ── Maps ──────────────────────────────────────────────────────────────

func (s *server) createMap(c fiber.Ctx) error {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}
	if body.Name == "" {
		return c.Status(422).JSON(fiber.Map{"error": "name is required"})
	}

	if err := s.registry.create(body.Name, dijkstramap.New()); err != nil {
		return s.fail(c, err)
	}
	s.log.Infof("created map %q", body.Name)

	return c.Status(201).JSON(fiber.Map{"name": body.Name})
}

func (s *server) listMaps(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"maps": s.registry.names()})
}

func (s *server) deleteMap(c fiber.Ctx) error {
	name := c.Params("name")
	if err := s.registry.remove(name); err != nil {
		return s.fail(c, err)
	}
	s.log.Infof("deleted map %q", name)

	return c.SendStatus(204)
}

func (s *server) copyMap(c fiber.Ctx) error {
	var body struct {
		From string `json:"from"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}
	if body.From == "" {
		return c.Status(422).JSON(fiber.Map{"error": "from is required"})
	}

	src, err := s.registry.get(body.From)
	if err != nil {
		return s.fail(c, err)
	}

	src.mu.Lock()
	clone := src.m.Clone()
	src.mu.Unlock()

	name := c.Params("name")
	if err := s.registry.create(name, clone); err != nil {
		return s.fail(c, err)
	}
	s.log.Infof("copied map %q to %q", body.From, name)

	return c.Status(201).JSON(fiber.Map{"name": name})
}

// ── Points ────────────────────────────────────────────────────────────

func (s *server) addPoint(c fiber.Ctx) error {
	e, err := s.registry.get(c.Params("name"))
	if err != nil {
		return s.fail(c, err)
	}

	var body struct {
		ID      *int `json:"id"`
		Terrain *int `json:"terrain"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}

	terrain := core.DefaultTerrain
	if body.Terrain != nil {
		terrain = *body.Terrain
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.m.AvailablePointID()
	if body.ID != nil {
		id = *body.ID
	}
	if err := e.m.AddPointWithTerrain(id, terrain); err != nil {
		return s.fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"id": id})
}

func (s *server) updatePoint(c fiber.Ctx) error {
	e, err := s.registry.get(c.Params("name"))
	if err != nil {
		return s.fail(c, err)
	}
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid point id"})
	}

	var body struct {
		Terrain  *int  `json:"terrain"`
		Disabled *bool `json:"disabled"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.m.HasPoint(id) {
		return c.Status(404).JSON(fiber.Map{"error": "point not found"})
	}
	if body.Terrain != nil {
		if err := e.m.SetTerrain(id, *body.Terrain); err != nil {
			return s.fail(c, err)
		}
	}
	if body.Disabled != nil {
		if *body.Disabled {
			err = e.m.DisablePoint(id)
		} else {
			err = e.m.EnablePoint(id)
		}
		if err != nil {
			return s.fail(c, err)
		}
	}

	return c.SendStatus(204)
}

func (s *server) removePoint(c fiber.Ctx) error {
	e, err := s.registry.get(c.Params("name"))
	if err != nil {
		return s.fail(c, err)
	}
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid point id"})
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.m.RemovePoint(id); err != nil {
		return s.fail(c, err)
	}

	return c.SendStatus(204)
}

func (s *server) pointsInRange(c fiber.Ctx) error {
	e, err := s.registry.get(c.Params("name"))
	if err != nil {
		return s.fail(c, err)
	}

	minCost, maxCost := 0.0, math.Inf(1)
	if q := c.Query("min_cost"); q != "" {
		v, err := strconv.ParseFloat(q, 64)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid min_cost"})
		}
		minCost = v
	}
	if q := c.Query("max_cost"); q != "" {
		v, err := strconv.ParseFloat(q, 64)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid max_cost"})
		}
		maxCost = v
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	points := e.m.PointsWithCostBetween(minCost, maxCost)
	if points == nil {
		points = []int{}
	}

	return c.JSON(fiber.Map{"points": points})
}

func (s *server) pathFrom(c fiber.Ctx) error {
	e, err := s.registry.get(c.Params("name"))
	if err != nil {
		return s.fail(c, err)
	}
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid point id"})
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	path := e.m.ShortestPathFrom(id)
	if path == nil {
		path = []int{}
	}

	return c.JSON(fiber.Map{"path": path})
}

// ── Connections ───────────────────────────────────────────────────────

func (s *server) connect(c fiber.Ctx) error {
	e, err := s.registry.get(c.Params("name"))
	if err != nil {
		return s.fail(c, err)
	}

	var body struct {
		Source        int      `json:"source"`
		Target        int      `json:"target"`
		Weight        *float64 `json:"weight"`
		Bidirectional *bool    `json:"bidirectional"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}

	weight := 1.0
	if body.Weight != nil {
		weight = *body.Weight
	}
	bidirectional := true
	if body.Bidirectional != nil {
		bidirectional = *body.Bidirectional
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.m.ConnectPoints(body.Source, body.Target, weight, bidirectional); err != nil {
		return s.fail(c, err)
	}

	return c.SendStatus(204)
}

func (s *server) disconnect(c fiber.Ctx) error {
	e, err := s.registry.get(c.Params("name"))
	if err != nil {
		return s.fail(c, err)
	}

	var body struct {
		Source        int   `json:"source"`
		Target        int   `json:"target"`
		Bidirectional *bool `json:"bidirectional"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}

	bidirectional := true
	if body.Bidirectional != nil {
		bidirectional = *body.Bidirectional
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.m.RemoveConnection(body.Source, body.Target, bidirectional); err != nil {
		return s.fail(c, err)
	}

	return c.SendStatus(204)
}

// ── Grids ─────────────────────────────────────────────────────────────

func (s *server) addSquareGrid(c fiber.Ctx) error {
	e, err := s.registry.get(c.Params("name"))
	if err != nil {
		return s.fail(c, err)
	}

	var body struct {
		X              int      `json:"x"`
		Y              int      `json:"y"`
		Width          int      `json:"width"`
		Height         int      `json:"height"`
		Terrain        *int     `json:"terrain"`
		OrthogonalCost *float64 `json:"orthogonal_cost"`
		DiagonalCost   *float64 `json:"diagonal_cost"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}

	opts := grid.DefaultSquareOptions()
	if body.Terrain != nil {
		opts.Terrain = *body.Terrain
	}
	if body.OrthogonalCost != nil {
		opts.OrthogonalCost = *body.OrthogonalCost
	}
	if body.DiagonalCost != nil {
		opts.DiagonalCost = *body.DiagonalCost
	}
	bounds := grid.Rect{X: body.X, Y: body.Y, Width: body.Width, Height: body.Height}

	e.mu.Lock()
	defer e.mu.Unlock()

	points, err := e.m.AddSquareGrid(bounds, opts)
	if err != nil {
		return s.fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"points": coordIDs(points)})
}

func (s *server) addHexagonalGrid(c fiber.Ctx) error {
	e, err := s.registry.get(c.Params("name"))
	if err != nil {
		return s.fail(c, err)
	}

	var body struct {
		X       int      `json:"x"`
		Y       int      `json:"y"`
		Width   int      `json:"width"`
		Height  int      `json:"height"`
		Terrain *int     `json:"terrain"`
		Weight  *float64 `json:"weight"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}

	opts := grid.DefaultHexOptions()
	if body.Terrain != nil {
		opts.Terrain = *body.Terrain
	}
	if body.Weight != nil {
		opts.Weight = *body.Weight
	}
	bounds := grid.Rect{X: body.X, Y: body.Y, Width: body.Width, Height: body.Height}

	e.mu.Lock()
	defer e.mu.Unlock()

	points, err := e.m.AddHexagonalGrid(bounds, opts)
	if err != nil {
		return s.fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"points": coordIDs(points)})
}

// ── Computation ───────────────────────────────────────────────────────

func (s *server) recalculate(c fiber.Ctx) error {
	e, err := s.registry.get(c.Params("name"))
	if err != nil {
		return s.fail(c, err)
	}

	var body struct {
		Origins []int                  `json:"origins"`
		Options map[string]interface{} `json:"options"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}

	opts, err := decodeOptions(body.Options)
	if err != nil {
		return c.Status(422).JSON(fiber.Map{"error": err.Error()})
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.m.Recalculate(body.Origins, dijkstra.WithOptions(opts)); err != nil {
		return s.fail(c, err)
	}
	settled := e.m.SettledCount()
	s.log.Debugf("map %q recalculated: %d points settled", c.Params("name"), settled)

	return c.JSON(fiber.Map{"settled": settled})
}

func (s *server) costs(c fiber.Ctx) error {
	e, err := s.registry.get(c.Params("name"))
	if err != nil {
		return s.fail(c, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if q := c.Query("ids"); q != "" {
		ids, err := parseIDList(q)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid ids"})
		}
		out := make([]interface{}, len(ids))
		for i, cost := range e.m.CostsAt(ids) {
			out[i] = jsonCost(cost)
		}
		return c.JSON(fiber.Map{"costs": out})
	}

	all := e.m.CostMap()
	out := make(map[int]interface{}, len(all))
	for id, cost := range all {
		out[id] = jsonCost(cost)
	}

	return c.JSON(fiber.Map{"costs": out})
}

func (s *server) directions(c fiber.Ctx) error {
	e, err := s.registry.get(c.Params("name"))
	if err != nil {
		return s.fail(c, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if q := c.Query("ids"); q != "" {
		ids, err := parseIDList(q)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid ids"})
		}
		return c.JSON(fiber.Map{"directions": e.m.DirectionsAt(ids)})
	}

	return c.JSON(fiber.Map{"directions": e.m.DirectionMap()})
}

// ── Snapshots ─────────────────────────────────────────────────────────

func (s *server) saveSnapshot(c fiber.Ctx) error {
	if s.store == nil {
		return c.Status(503).JSON(fiber.Map{"error": "snapshots are not configured"})
	}

	name := c.Params("name")
	e, err := s.registry.get(name)
	if err != nil {
		return s.fail(c, err)
	}

	e.mu.Lock()
	id, err := s.store.SaveGraph(c.Context(), name, e.m.Graph())
	e.mu.Unlock()
	if err != nil {
		return s.fail(c, err)
	}
	s.log.Infof("saved snapshot %s of map %q", id, name)

	return c.Status(201).JSON(fiber.Map{"id": id, "name": name})
}

func (s *server) restoreSnapshot(c fiber.Ctx) error {
	if s.store == nil {
		return c.Status(503).JSON(fiber.Map{"error": "snapshots are not configured"})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid snapshot id"})
	}

	g, err := s.store.LoadGraph(c.Context(), id)
	if err != nil {
		return s.fail(c, err)
	}
	m, err := dijkstramap.FromGraph(g)
	if err != nil {
		return s.fail(c, err)
	}

	// Replace the named map, or create it when it does not exist yet.
	name := c.Params("name")
	if e, err := s.registry.get(name); err == nil {
		e.mu.Lock()
		e.m = m
		e.mu.Unlock()
	} else if err := s.registry.create(name, m); err != nil {
		return s.fail(c, err)
	}
	s.log.Infof("restored snapshot %s into map %q", id, name)

	return c.SendStatus(204)
}

func (s *server) listSnapshots(c fiber.Ctx) error {
	if s.store == nil {
		return c.Status(503).JSON(fiber.Map{"error": "snapshots are not configured"})
	}

	infos, err := s.store.ListGraphs(c.Context())
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(fiber.Map{"snapshots": infos})
}

func (s *server) deleteSnapshot(c fiber.Ctx) error {
	if s.store == nil {
		return c.Status(503).JSON(fiber.Map{"error": "snapshots are not configured"})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid snapshot id"})
	}

	if err := s.store.DeleteGraph(c.Context(), id); err != nil {
		return s.fail(c, err)
	}
	s.log.Infof("deleted snapshot %s", id)

	return c.SendStatus(204)
}

// ── Helpers ───────────────────────────────────────────────────────────

// jsonCost converts one cost to a JSON-safe value; non-finite costs
// (unreachable points) become null.
func jsonCost(cost float64) interface{} {
	if math.IsInf(cost, 0) || math.IsNaN(cost) {
		return nil
	}

	return cost
}

// coordIDs flattens a coordinate table into JSON-friendly "x,y" keys.
func coordIDs(points map[grid.Coord]int) map[string]int {
	out := make(map[string]int, len(points))
	for at, id := range points {
		out[fmt.Sprintf("%d,%d", at.X, at.Y)] = id
	}

	return out
}

// parseIDList parses a comma-separated list of point ids.
func parseIDList(q string) ([]int, error) {
	parts := strings.Split(q, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("server: bad point id %q: %w", part, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}
