// Package simcore defines the message surface shared across the maze
// defence engine: coordinate and identifier value types, the Command/Event
// tagged unions that connect the world to its systems, and the read-only
// view types systems consume. Nothing in this package mutates state.
package simcore

// WelcomeBanner is the canonical banner shown when the experience boots.
const WelcomeBanner = "Welcome to Maze Defence."

// BugId uniquely identifies a bug for the lifetime of a world instance.
// Identifiers are monotonically allocated and never reused.
type BugId uint32

// TowerId uniquely identifies a tower for the lifetime of a world instance.
type TowerId uint32

// ProjectileId uniquely identifies a projectile fired by a tower.
type ProjectileId uint32

// TileCoord is an index within the tile grid measured in whole tiles rather
// than cells.
type TileCoord uint32
