// Package geometry places neurons in a lattice and defines locality for
// synapse sprouting. BoxEcp is the only concrete geometry: a cubic box of
// plastic neurons with a face of actuator receivers and a virtual plane of
// sensory neurons floating just outside it.
package geometry

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/hd220/encephalon/common"
)

// ReceiverKind tags whether a receiver-enumeration position holds a plastic
// neuron or one reclassified as an actuator.
type ReceiverKind int

const (
	Plastic ReceiverKind = iota
	Actuator
)

// Geometry is a bijection between integer lattice coordinates and opaque
// position hashes, with enumeration of receiver and sensory positions and a
// locality query used by synapse sprouting.
type Geometry interface {
	NumPlastic() int
	NumActuator() int
	NumSensory() int

	// FirstRxLoc and NextRxLoc enumerate every receiver position (plastic
	// and actuator, interleaved by geometry), tagging each with its kind.
	// NextRxLoc's second return is false once the enumeration is exhausted.
	FirstRxLoc() (common.Position, ReceiverKind)
	NextRxLoc(curr common.Position) (common.Position, ReceiverKind, bool)

	// FirstSensoryLoc and NextSensoryLoc enumerate every sensory position.
	FirstSensoryLoc() common.Position
	NextSensoryLoc(curr common.Position) (common.Position, bool)

	// LocalRandom returns a uniform-random receiver position inside the
	// nearby cube around loc, clamped to stay inside the lattice. It
	// reports false if the geometry has no valid nearby region (nearby
	// side length below 1).
	LocalRandom(loc common.Position, rng *rand.Rand) (common.Position, bool)
}

type loc3 struct {
	x, y, z int
}

func (l loc3) hash() common.Position {
	return common.Position(fmt.Sprintf("%d,%d,%d", l.x, l.y, l.z))
}

func parseLoc(p common.Position) (loc3, error) {
	var l loc3
	n, err := fmt.Sscanf(string(p), "%d,%d,%d", &l.x, &l.y, &l.z)
	if err != nil || n != 3 {
		return loc3{}, fmt.Errorf("geometry: malformed position hash %q", p)
	}
	return l, nil
}

// BoxEcp is a cubic lattice of plastic neurons of side L, where L is the
// largest integer with L^3 <= desiredNumPlastic. numActuator cells on the
// far face (z = L-1, row-major by (y,x)) are reclassified as actuator
// receivers. Sensory neurons occupy a virtual plane z = -1.
type BoxEcp struct {
	numPlastic       int
	numActuator      int
	numSensory       int
	sideLength       int
	nearbySideLength int
}

// NewBoxEcp constructs a BoxEcp geometry. It fails if numActuator or
// numSensory exceed the area of one face of the box, or if the nearby cube
// (rounded down to the largest odd cube <= nearbyCount) would exceed the
// box's total volume.
func NewBoxEcp(desiredNumPlastic, numSensory, numActuator, nearbyCount int) (*BoxEcp, error) {
	if desiredNumPlastic < 1 {
		return nil, fmt.Errorf("geometry: desiredNumPlastic must be positive, got %d", desiredNumPlastic)
	}

	sideLength := int(math.Floor(math.Cbrt(float64(desiredNumPlastic))))
	if sideLength < 1 {
		return nil, fmt.Errorf("geometry: desiredNumPlastic %d is too small to form a box", desiredNumPlastic)
	}

	area := sideLength * sideLength
	volume := sideLength * sideLength * sideLength

	if numActuator > area {
		return nil, fmt.Errorf("geometry: numActuator %d exceeds face area %d (side %d); decrease actuators or increase the box", numActuator, area, sideLength)
	}
	if numSensory > area {
		return nil, fmt.Errorf("geometry: numSensory %d exceeds face area %d (side %d); decrease sensory neurons or increase the box", numSensory, area, sideLength)
	}

	nearbySideLength := int(math.Floor(math.Cbrt(float64(nearbyCount))))
	if nearbySideLength%2 == 0 {
		nearbySideLength--
	}
	if nearbySideLength > 0 && nearbySideLength*nearbySideLength*nearbySideLength > volume {
		return nil, fmt.Errorf("geometry: nearby cube of side %d exceeds box volume %d; decrease nearbyCount or increase the box", nearbySideLength, volume)
	}

	return &BoxEcp{
		numPlastic:       volume,
		numActuator:      numActuator,
		numSensory:       numSensory,
		sideLength:       sideLength,
		nearbySideLength: nearbySideLength,
	}, nil
}

func (b *BoxEcp) NumPlastic() int  { return b.numPlastic }
func (b *BoxEcp) NumActuator() int { return b.numActuator }
func (b *BoxEcp) NumSensory() int  { return b.numSensory }

// classify reports whether loc is on the box's far face and, if so, whether
// its row-major (y,x) position falls within the reclassified actuator count.
func (b *BoxEcp) classify(l loc3) ReceiverKind {
	if l.z == b.sideLength-1 {
		planePosition := l.y*b.sideLength + l.x + 1
		if planePosition <= b.numActuator {
			return Actuator
		}
	}
	return Plastic
}

func (b *BoxEcp) FirstRxLoc() (common.Position, ReceiverKind) {
	l := loc3{0, 0, 0}
	return l.hash(), b.classify(l)
}

// NextRxLoc enumerates row-major: x fastest, then y, then z.
func (b *BoxEcp) NextRxLoc(curr common.Position) (common.Position, ReceiverKind, bool) {
	l, err := parseLoc(curr)
	if err != nil {
		return "", Plastic, false
	}
	last := b.sideLength - 1

	switch {
	case l.x != last:
		l.x++
	case l.y != last:
		l.x = 0
		l.y++
	case l.z != last:
		l.x, l.y = 0, 0
		l.z++
	default:
		return "", Plastic, false
	}

	return l.hash(), b.classify(l), true
}

func (b *BoxEcp) FirstSensoryLoc() common.Position {
	return loc3{0, 0, -1}.hash()
}

func (b *BoxEcp) NextSensoryLoc(curr common.Position) (common.Position, bool) {
	l, err := parseLoc(curr)
	if err != nil {
		return "", false
	}
	last := b.sideLength - 1

	switch {
	case l.x != last:
		l.x++
	case l.y != last:
		l.x = 0
		l.y++
	default:
		return "", false
	}

	return l.hash(), true
}

func (b *BoxEcp) LocHash(x, y, z int) common.Position {
	return loc3{x, y, z}.hash()
}

// LocalRandom picks uniform-random coordinates in the N^3 cube (N =
// nearbySideLength) centered on loc, clamped into [0, sideLength-1] along
// each axis.
func (b *BoxEcp) LocalRandom(loc common.Position, rng *rand.Rand) (common.Position, bool) {
	if b.nearbySideLength < 1 {
		return "", false
	}
	l, err := parseLoc(loc)
	if err != nil {
		return "", false
	}

	last := b.sideLength - 1
	distFromCenter := (b.nearbySideLength - 1) / 2

	bottomX := clampBottom(l.x-distFromCenter, b.nearbySideLength, last)
	bottomY := clampBottom(l.y-distFromCenter, b.nearbySideLength, last)
	bottomZ := clampBottom(l.z-distFromCenter, b.nearbySideLength, last)

	result := loc3{
		x: bottomX + rng.Intn(b.nearbySideLength),
		y: bottomY + rng.Intn(b.nearbySideLength),
		z: bottomZ + rng.Intn(b.nearbySideLength),
	}
	return result.hash(), true
}

func clampBottom(bottom, nearbySideLength, last int) int {
	if bottom < 0 {
		return 0
	}
	if bottom+(nearbySideLength-1) > last {
		return last - (nearbySideLength - 1)
	}
	return bottom
}
