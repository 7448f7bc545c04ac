// Package grid stamps square and hexagonal grids of points and
// connections into a core.Graph, ready for recalculation.
//
// What:
//
//   - AddSquareGrid fills a Rect with one point per cell and connects
//     orthogonal and diagonal neighbors as two separately priced classes.
//   - AddHexagonalGrid fills a Rect with pointy-top hexes in odd-r offset
//     layout (rows with odd y shift right) and connects the 6 neighbors of
//     each cell at a uniform weight.
//   - Both return the absolute cell coordinate → point id mapping, so hosts
//     can address cells spatially afterwards.
//
// Why:
//
//   - Game maps: tile worlds become graphs with one call, then flow fields,
//     influence zones and unit movement come from recalculation.
//   - Negative bounds: regions may start anywhere, so chunked maps can
//     stamp around the origin without coordinate gymnastics.
//
// Complexity:
//
//   - AddSquareGrid:     O(W×H) points, O(W×H) connections.
//   - AddHexagonalGrid:  O(W×H) points, O(W×H) connections.
//
// Options:
//
//   - SquareOptions.Terrain, OrthogonalCost, DiagonalCost. A NaN or +Inf
//     class cost stamps no connections of that class; by default diagonals
//     are off (DiagonalCost = +Inf).
//   - HexOptions.Terrain, Weight.
//
// Errors:
//
//   - ErrNilGraph: the destination graph is nil.
//   - ErrEmptyBounds: the Rect spans no cells.
//   - ErrBadCost: a connection cost is negative.
//
// Builders only populate the graph; they perform no pathfinding.
package grid
