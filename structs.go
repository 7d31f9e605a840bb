package roadgraph

import (
	"encoding/json"
	"io/ioutil"
	"time"

	"github.com/google/uuid"
	"github.com/unixpickle/model3d/model2d"
)

// EntryPoint is a spot on a settlement's perimeter where a road may
// attach, with the outward angle (radians) it faces.
type EntryPoint struct {
	Pos   model2d.Coord
	Angle float64
}

// Settlement is a named location roads connect. Created by an external
// settlement placer before generation runs; the generator only appends
// to Roads.
type Settlement struct {
	ID             int
	Name           string `json:",omitempty"`
	Pos            model2d.Coord
	SafeZoneRadius float64
	EntryPoints    []EntryPoint `json:",omitempty"`

	// Roads holds the ids of generated roads touching this settlement.
	Roads []int `json:",omitempty"`
}

// PathPoint is one point of a road's path: a horizontal position plus the
// sampled terrain height. Order along the path is significant.
type PathPoint struct {
	Pos    model2d.Coord
	Height float64
}

// Road is a generated route between two settlements. Roads are owned by
// the network & never mutated after creation.
type Road struct {
	ID       int
	From, To int // settlement ids
	Width    float64
	Surface  string
	Length   float64
	Path     []PathPoint

	// Fallback is true when pathfinding failed & the path is a direct
	// interpolated line. Such points skipped the water-passability
	// check & may sit below the water level.
	Fallback bool `json:",omitempty"`
}

// Network is the externally visible snapshot of a generated road network,
// rebuilt at the end of every Generate. Roadgraph.Network() returns it by
// reference, not as a copy.
type Network struct {
	Generation  uuid.UUID
	Seed        int64
	Built       time.Time
	Settlements []*Settlement
	Roads       []*Road
}

// JSON returns the network as json.
func (n *Network) JSON() ([]byte, error) {
	return json.Marshal(n)
}

// SaveJSON writes a json file to the given path.
func (n *Network) SaveJSON(fpath string) error {
	data, err := n.JSON()
	if err != nil {
		return err
	}
	return ioutil.WriteFile(fpath, data, 0644)
}

// TileSegment is the part of one road crossing a single world tile, with
// endpoints local to the tile's origin. Intended for renderers that draw
// road geometry tile by tile.
type TileSegment struct {
	RoadID int
	Width  float64
	A, B   model2d.Coord
}
